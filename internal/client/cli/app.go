package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/client/auth"
	"github.com/dmitrijs2005/happiestbaby/internal/client/journal"
	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
	"github.com/dmitrijs2005/happiestbaby/internal/client/services"
	"github.com/dmitrijs2005/happiestbaby/internal/logging"
)

// Session is the part of the session facade the CLI drives.
type Session interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context)
	State() auth.State

	GetAccount(ctx context.Context) (models.Account, error)
	UpdateDeviceInfo(ctx context.Context) error
	Snapshot() (services.Snapshot, bool)
	GetSessionStatsAvg(ctx context.Context, babyID string, start time.Time, days bool, interval string) (models.SessionStats, error)

	CreateDiaperEntry(ctx context.Context, in journal.DiaperInput) (models.JournalEntry, error)
	CreateBottleFeedingEntry(ctx context.Context, in journal.BottleFeedingInput) (models.JournalEntry, error)
	CreateBreastFeedingEntry(ctx context.Context, in journal.BreastFeedingInput) (models.JournalEntry, error)
	CreateWeightEntry(ctx context.Context, in journal.WeightInput) (models.JournalEntry, error)
	GetJournalTracking(ctx context.Context, babyID string, from, to time.Time, t models.JournalType) ([]models.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, id string) error
}

type App struct {
	session  Session
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	userName string
	interval time.Duration
	now      func() time.Time
}

// NewApp builds the REPL around s. Commands read from in and print to out;
// interval drives the background device watcher.
func NewApp(s Session, in io.Reader, out io.Writer, interval time.Duration, log logging.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		session:  s,
		log:      log,
		reader:   bufio.NewReader(in),
		out:      out,
		interval: interval,
		now:      time.Now,
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == auth.StateAuthenticated || a.session.State() == auth.StateRefreshing
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return a.session.State().String()
	}
	return a.userName + " " + a.session.State().String()
}

// Run logs in with username (prompting when empty), then serves commands
// until EOF or exit.
func (a *App) Run(ctx context.Context, username string) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printf(a.out, "Welcome to the Happiest Baby CLI (type 'help' for commands)\n")

	if err := a.login(ctx, username); err != nil {
		printf(a.out, "Login unsuccessful: %v\n", err)
	}

	go a.StartDeviceWatcher(ctx, a.interval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// StartDeviceWatcher refreshes the device snapshot every interval while
// logged in. It returns when ctx is done.
func (a *App) StartDeviceWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.isLoggedIn() {
				continue
			}
			if err := a.session.UpdateDeviceInfo(ctx); err != nil {
				a.log.Warn(ctx, "device refresh failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func printJSON(w io.Writer, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		printf(w, "%v\n", v)
		return
	}
	printf(w, "%s\n", b)
}

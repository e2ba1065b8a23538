package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/client/auth"
	"github.com/dmitrijs2005/happiestbaby/internal/client/journal"
	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
	"github.com/dmitrijs2005/happiestbaby/internal/client/services"
	"github.com/dmitrijs2005/happiestbaby/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	state    auth.State
	loginErr error
	user     string
	password string

	updates atomic.Int32
	snap    *services.Snapshot

	created []journal.Input
	from    time.Time
	to      time.Time
	jt      models.JournalType
	deleted string
}

func (f *fakeSession) Login(_ context.Context, username, password string) error {
	f.user, f.password = username, password
	if f.loginErr != nil {
		f.state = auth.StateFailed
		return f.loginErr
	}
	f.state = auth.StateAuthenticated
	return nil
}
func (f *fakeSession) Logout(context.Context) { f.state = auth.StateUnauthenticated; f.snap = nil }
func (f *fakeSession) State() auth.State      { return f.state }
func (f *fakeSession) GetAccount(context.Context) (models.Account, error) {
	return models.Account{UserID: "user-1", Email: "ann@example.com"}, nil
}
func (f *fakeSession) UpdateDeviceInfo(context.Context) error {
	f.updates.Add(1)
	return nil
}
func (f *fakeSession) Snapshot() (services.Snapshot, bool) {
	if f.snap == nil {
		return services.Snapshot{}, false
	}
	return *f.snap, true
}
func (f *fakeSession) GetSessionStatsAvg(_ context.Context, babyID string, _ time.Time, _ bool, interval string) (models.SessionStats, error) {
	return models.SessionStats(fmt.Sprintf(`{"baby":%q,"interval":%q}`, babyID, interval)), nil
}
func (f *fakeSession) create(in journal.Input) (models.JournalEntry, error) {
	f.created = append(f.created, in)
	if err := journal.Validate(in); err != nil {
		return models.JournalEntry{}, err
	}
	journal.SetUserID(in, "user-1")
	return journal.Build(in)
}
func (f *fakeSession) CreateDiaperEntry(_ context.Context, in journal.DiaperInput) (models.JournalEntry, error) {
	return f.create(&in)
}
func (f *fakeSession) CreateBottleFeedingEntry(_ context.Context, in journal.BottleFeedingInput) (models.JournalEntry, error) {
	return f.create(&in)
}
func (f *fakeSession) CreateBreastFeedingEntry(_ context.Context, in journal.BreastFeedingInput) (models.JournalEntry, error) {
	return f.create(&in)
}
func (f *fakeSession) CreateWeightEntry(_ context.Context, in journal.WeightInput) (models.JournalEntry, error) {
	return f.create(&in)
}
func (f *fakeSession) GetJournalTracking(_ context.Context, _ string, from, to time.Time, t models.JournalType) ([]models.JournalEntry, error) {
	f.from, f.to, f.jt = from, to, t
	return []models.JournalEntry{{ID: "e1", Type: t, StartTime: from, Data: models.DiaperData{Types: []models.DiaperType{models.DiaperPee}}}}, nil
}
func (f *fakeSession) DeleteJournalEntry(_ context.Context, id string) error {
	f.deleted = id
	return nil
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, input string) (*App, *fakeSession, *bytes.Buffer) {
	t.Helper()
	s := &fakeSession{
		state: auth.StateAuthenticated,
		snap:  &services.Snapshot{Baby: &models.Baby{ID: "baby-1", Name: "Bo"}, Devices: map[string]models.Device{}},
	}
	var out bytes.Buffer
	a := NewApp(s, strings.NewReader(input), &out, 0, nil)
	a.now = func() time.Time { return testNow }
	return a, s, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func TestLogin_Success(t *testing.T) {
	stubPassword(t, "secret")
	a, s, out := newTestApp(t, "ann@example.com\n")
	s.state = auth.StateUnauthenticated

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "ann@example.com", s.user)
	assert.Equal(t, "secret", s.password)
	assert.Equal(t, int32(1), s.updates.Load())
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "ann@example.com authenticated", a.getStatus())
	assert.Contains(t, out.String(), "Login successful")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	stubPassword(t, "wrong")
	a, s, _ := newTestApp(t, "ann@example.com\n")
	s.loginErr = fmt.Errorf("%w: nope", common.ErrInvalidCredentials)

	err := a.Login(context.Background())
	assert.EqualError(t, err, "invalid email or password")
	assert.Zero(t, s.updates.Load())
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.userName)
}

func TestLogout(t *testing.T) {
	a, s, _ := newTestApp(t, "")
	a.userName = "ann@example.com"

	require.NoError(t, a.Logout(context.Background()))
	assert.Equal(t, auth.StateUnauthenticated, s.state)
	assert.Empty(t, a.userName)
	assert.Equal(t, "unauthenticated", a.getStatus())
}

func TestAccountAndDevices(t *testing.T) {
	a, s, out := newTestApp(t, "")
	s.snap.Devices = map[string]models.Device{
		"SN2": {SerialNumber: "SN2", Name: "Travel"},
		"SN1": {SerialNumber: "SN1", Name: "Nursery", FirmwareVersion: "v1"},
	}
	s.snap.LastSession = &models.SleepSession{CurrentStatus: "asleep", StartTime: testNow}

	require.NoError(t, a.Account(context.Background()))
	require.NoError(t, a.Devices(context.Background()))

	text := out.String()
	assert.Contains(t, text, "ann@example.com (user-1)")
	assert.Contains(t, text, "Bo (baby-1)")
	assert.Less(t, strings.Index(text, "SN1"), strings.Index(text, "SN2"))
	assert.Contains(t, text, "firmware=v1")
	assert.Contains(t, text, "Last session: asleep")
	assert.Equal(t, int32(1), s.updates.Load())
}

func TestStats(t *testing.T) {
	a, _, out := newTestApp(t, "")
	require.NoError(t, a.Stats(context.Background()))
	assert.Contains(t, out.String(), `"interval": "week"`)
	assert.Contains(t, out.String(), `"baby": "baby-1"`)
}

func TestCommands_NoBaby(t *testing.T) {
	a, s, _ := newTestApp(t, "")
	s.snap = nil

	assert.ErrorIs(t, a.AddDiaper(context.Background()), errNoBaby)
	assert.ErrorIs(t, a.List(context.Background()), errNoBaby)
	assert.ErrorIs(t, a.Stats(context.Background()), errNoBaby)
}

func TestAddDiaper(t *testing.T) {
	a, s, out := newTestApp(t, "pee, poo\n")

	require.NoError(t, a.AddDiaper(context.Background()))
	require.Len(t, s.created, 1)
	in := s.created[0].(*journal.DiaperInput)
	assert.Equal(t, []models.DiaperType{models.DiaperPee, models.DiaperPoo}, in.Types)
	assert.Equal(t, "baby-1", in.BabyID)
	assert.True(t, in.StartTime.Equal(testNow))
	assert.Contains(t, out.String(), "diaper")
}

func TestAddBottle_MetricFallback(t *testing.T) {
	a, s, out := newTestApp(t, "formula\n\n120\n")

	require.NoError(t, a.AddBottle(context.Background()))
	in := s.created[0].(*journal.BottleFeedingInput)
	assert.Equal(t, models.MilkFormula, in.MilkType)
	assert.Nil(t, in.AmountImperial)
	require.NotNil(t, in.AmountMetric)
	assert.Equal(t, 120.0, *in.AmountMetric)
	assert.Contains(t, out.String(), `"amountMetric": 120`)
}

func TestAddBreast(t *testing.T) {
	a, s, out := newTestApp(t, "600\n600\nright\n")

	require.NoError(t, a.AddBreast(context.Background()))
	in := s.created[0].(*journal.BreastFeedingInput)
	require.NotNil(t, in.LeftDuration)
	require.NotNil(t, in.RightDuration)
	assert.Equal(t, models.BreastRight, in.LastUsedBreast)
	assert.Contains(t, out.String(), `"totalDuration": 1200`)
}

func TestAddBreast_InvalidSide(t *testing.T) {
	a, _, _ := newTestApp(t, "60\n\nmiddle\n")
	assert.ErrorIs(t, a.AddBreast(context.Background()), common.ErrInvalidEntry)
}

func TestAddWeight(t *testing.T) {
	a, s, out := newTestApp(t, "10.5\n")

	require.NoError(t, a.AddWeight(context.Background()))
	in := s.created[0].(*journal.WeightInput)
	require.NotNil(t, in.Imperial)
	assert.Nil(t, in.Metric)

	var data map[string]float64
	text := out.String()
	require.NoError(t, json.Unmarshal([]byte(text[strings.Index(text, "{"):]), &data))
	assert.InDelta(t, 10.5*28.3495, data["weightMetric"], 1e-9)
}

func TestList(t *testing.T) {
	a, s, out := newTestApp(t, "diaper\n")

	require.NoError(t, a.List(context.Background()))
	assert.Equal(t, models.JournalDiaper, s.jt)
	assert.Equal(t, 24*time.Hour, s.to.Sub(s.from))
	assert.Contains(t, out.String(), "e1")
}

func TestList_UnknownType(t *testing.T) {
	a, _, _ := newTestApp(t, "sleep\n")
	assert.ErrorContains(t, a.List(context.Background()), "unknown entry type")
}

func TestDelete(t *testing.T) {
	a, s, out := newTestApp(t, "e42\n")
	require.NoError(t, a.Delete(context.Background()))
	assert.Equal(t, "e42", s.deleted)
	assert.Contains(t, out.String(), "Deleted e42")
}

func TestStartDeviceWatcher(t *testing.T) {
	a, s, _ := newTestApp(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartDeviceWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return s.updates.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	<-done
}

func TestRun_LoginThenExit(t *testing.T) {
	stubPassword(t, "secret")
	s := &fakeSession{snap: &services.Snapshot{}}
	var out bytes.Buffer
	a := NewApp(s, strings.NewReader("help\nexit\n"), &out, 0, nil)

	a.Run(context.Background(), "ann@example.com")

	assert.Equal(t, "ann@example.com", s.user)
	assert.Contains(t, out.String(), "Welcome")
	assert.Contains(t, out.String(), "Bye!")
}

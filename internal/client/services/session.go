// Package services contains the session facade: the public operations of a
// signed-in Happiest Baby session built on the authenticator, the API client
// and the journal mapper.
package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/client/auth"
	"github.com/dmitrijs2005/happiestbaby/internal/client/client"
	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
	"github.com/dmitrijs2005/happiestbaby/internal/logging"
)

// DefaultDeviceUpdateInterval throttles full device refreshes.
const DefaultDeviceUpdateInterval = 120 * time.Second

// Authenticator is the part of *auth.Authenticator the session drives.
type Authenticator interface {
	Login(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context) error
	SetCredentials(username, password string)
	Logout()
	State() auth.State
}

type Options struct {
	DeviceUpdateInterval time.Duration
}

// Session is one signed-in client of the service. Its methods are safe for
// concurrent use; independent calls are not ordered with respect to each
// other.
type Session struct {
	auth Authenticator
	api  client.Client
	log  logging.Logger
	opts Options
	now  func() time.Time

	// updateMu serializes UpdateDeviceInfo.
	updateMu sync.Mutex
	snapshot atomic.Pointer[Snapshot]
	account  atomic.Pointer[models.Account]
}

func NewSession(authn Authenticator, api client.Client, opts Options, log logging.Logger) *Session {
	if opts.DeviceUpdateInterval <= 0 {
		opts.DeviceUpdateInterval = DefaultDeviceUpdateInterval
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Session{
		auth: authn,
		api:  api,
		log:  log,
		opts: opts,
		now:  time.Now,
	}
}

func (s *Session) Login(ctx context.Context, username, password string) error {
	if err := s.auth.Login(ctx, username, password); err != nil {
		s.log.Error(ctx, "login failed", "username", username, "error", err)
		return err
	}
	s.log.Info(ctx, "logged in", "username", username)
	return nil
}

// Authenticate re-runs the initial exchange with the configured credentials.
func (s *Session) Authenticate(ctx context.Context) error {
	return s.auth.Authenticate(ctx)
}

// SetCredentials stores new credentials. They are used by the next Login or
// Authenticate, not by the current session tokens.
func (s *Session) SetCredentials(username, password string) {
	s.auth.SetCredentials(username, password)
}

// Logout drops the tokens and every cached snapshot. It waits for a running
// UpdateDeviceInfo so that its result cannot outlive the logout.
func (s *Session) Logout(ctx context.Context) {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.auth.Logout()
	s.snapshot.Store(nil)
	s.account.Store(nil)
	s.log.Info(ctx, "logged out")
}

func (s *Session) State() auth.State {
	return s.auth.State()
}

// Package auth owns the session credentials: the token store, the login and
// refresh state machine, and the Cognito identity provider adapter.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
	"github.com/dmitrijs2005/happiestbaby/internal/common"
	"github.com/dmitrijs2005/happiestbaby/internal/logging"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultExchangeTimeout bounds one shared provider exchange.
	DefaultExchangeTimeout = 30 * time.Second

	// defaultTokenLifetime is assumed when the provider omits ExpiresIn and
	// the ID token has no exp claim.
	defaultTokenLifetime = time.Hour

	refreshKey = "refresh"
)

// Authenticator acquires and refreshes credentials and records them in a
// TokenStore. All methods are safe for concurrent use.
type Authenticator struct {
	provider IdentityProvider
	store    *TokenStore
	log      logging.Logger
	timeout  time.Duration
	now      func() time.Time

	group singleflight.Group

	mu       sync.Mutex
	state    State
	username string
	password string
	// rejected latches a provider refusal of the current credentials.
	rejected bool
	// generation changes on every login and logout so that a refresh started
	// before either cannot overwrite its result.
	generation uint64
}

func NewAuthenticator(provider IdentityProvider, store *TokenStore, log logging.Logger, timeout time.Duration) *Authenticator {
	if log == nil {
		log = logging.Discard()
	}
	if timeout <= 0 {
		timeout = DefaultExchangeTimeout
	}
	return &Authenticator{
		provider: provider,
		store:    store,
		log:      log,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Store exposes the token store the authenticator writes to.
func (a *Authenticator) Store() *TokenStore {
	return a.store
}

func (a *Authenticator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// SetCredentials replaces the username and password. They take effect on
// the next Login or Authenticate; refreshes never use them.
func (a *Authenticator) SetCredentials(username, password string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.username = username
	a.password = password
	a.rejected = false
}

func (a *Authenticator) Login(ctx context.Context, username, password string) error {
	a.SetCredentials(username, password)
	return a.Authenticate(ctx)
}

// Authenticate runs the initial exchange with the configured credentials.
func (a *Authenticator) Authenticate(ctx context.Context) error {
	a.mu.Lock()
	username, password, rejected := a.username, a.password, a.rejected
	a.mu.Unlock()

	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", common.ErrInvalidCredentials)
	}
	if rejected {
		return fmt.Errorf("%w: credentials were rejected, set new ones", common.ErrInvalidCredentials)
	}

	key := "auth\x00" + username + "\x00" + password
	_, err := a.shared(ctx, key, func(ctx context.Context) (any, error) {
		return nil, a.authenticate(ctx, username, password)
	})
	return err
}

func (a *Authenticator) authenticate(ctx context.Context, username, password string) error {
	a.setState(StateAuthenticating)
	a.log.Debug(ctx, "authenticating", "username", username)

	tokens, err := a.provider.InitiateAuth(ctx, username, password)
	if err != nil {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.state = StateFailed
		if errors.Is(err, ErrRejected) {
			if a.username == username && a.password == password {
				a.rejected = true
			}
			a.store.Clear()
			a.generation++
			a.log.Warn(ctx, "credentials rejected", "username", username)
			return fmt.Errorf("%w: %v", common.ErrInvalidCredentials, err)
		}
		a.log.Error(ctx, "authentication failed", "error", err)
		return fmt.Errorf("%w: %v", common.ErrAuthentication, err)
	}

	creds, err := a.credentials(tokens, "")
	if err != nil {
		a.setState(StateFailed)
		return err
	}

	a.mu.Lock()
	a.store.Set(creds)
	a.generation++
	a.state = StateAuthenticated
	a.mu.Unlock()

	a.log.Info(ctx, "authenticated", "username", username, "expires_at", creds.ExpiresAt)
	return nil
}

// Refresh exchanges the stored refresh token for new credentials and returns
// them. stale is the ID token the caller saw rejected; when the store already
// holds a different unexpired token it is returned as is. Concurrent callers
// share a single provider call.
func (a *Authenticator) Refresh(ctx context.Context, stale string) (models.CredentialSet, error) {
	cur, ok := a.store.Get()
	if !ok || cur.RefreshToken == "" {
		return models.CredentialSet{}, fmt.Errorf("%w: not logged in", common.ErrAuthentication)
	}
	if stale != "" && cur.IDToken != stale && !cur.ExpiredAt(a.now(), 0) {
		return cur, nil
	}

	v, err := a.shared(ctx, refreshKey, func(ctx context.Context) (any, error) {
		return a.refresh(ctx, stale)
	})
	if err != nil {
		return models.CredentialSet{}, err
	}
	return v.(models.CredentialSet), nil
}

func (a *Authenticator) refresh(ctx context.Context, stale string) (models.CredentialSet, error) {
	a.mu.Lock()
	cur, ok := a.store.Get()
	gen := a.generation
	if !ok || cur.RefreshToken == "" {
		a.mu.Unlock()
		return models.CredentialSet{}, fmt.Errorf("%w: not logged in", common.ErrAuthentication)
	}
	// An earlier flight may have replaced stale after the caller's check.
	if stale != "" && cur.IDToken != stale && !cur.ExpiredAt(a.now(), 0) {
		a.mu.Unlock()
		return cur, nil
	}
	a.state = StateRefreshing
	a.mu.Unlock()

	a.log.Debug(ctx, "refreshing credentials")

	tokens, err := a.provider.RefreshAuth(ctx, cur.RefreshToken)
	if err != nil {
		a.mu.Lock()
		defer a.mu.Unlock()
		if gen != a.generation {
			return a.current()
		}
		if errors.Is(err, ErrRejected) {
			a.store.Clear()
			a.generation++
			a.state = StateFailed
			a.log.Warn(ctx, "refresh token rejected")
		} else {
			a.state = StateAuthenticated
			a.log.Error(ctx, "refresh failed", "error", err)
		}
		return models.CredentialSet{}, fmt.Errorf("%w: refresh: %v", common.ErrAuthentication, err)
	}

	creds, err := a.credentials(tokens, cur.RefreshToken)
	if err != nil {
		a.mu.Lock()
		defer a.mu.Unlock()
		if gen == a.generation {
			a.state = StateAuthenticated
		}
		return models.CredentialSet{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation {
		// A login or logout happened meanwhile; its outcome stands.
		return a.current()
	}
	a.store.Set(creds)
	a.state = StateAuthenticated
	a.log.Info(ctx, "credentials refreshed", "expires_at", creds.ExpiresAt)
	return creds, nil
}

// current must be called with mu held.
func (a *Authenticator) current() (models.CredentialSet, error) {
	c, ok := a.store.Get()
	if !ok {
		return models.CredentialSet{}, fmt.Errorf("%w: logged out during refresh", common.ErrAuthentication)
	}
	return c, nil
}

// Logout drops the stored credentials. The username and password are kept
// so a later Authenticate can log in again.
func (a *Authenticator) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.store.Clear()
	a.generation++
	a.state = StateUnauthenticated
}

func (a *Authenticator) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// shared runs fn once per key for all concurrent callers. fn gets a context
// detached from the caller's cancellation and bounded by the exchange
// timeout; each caller still returns as soon as its own ctx is done.
func (a *Authenticator) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := a.group.DoChan(key, func() (any, error) {
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()
		return fn(dctx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (a *Authenticator) credentials(t Tokens, previousRefresh string) (models.CredentialSet, error) {
	if t.IDToken == "" {
		return models.CredentialSet{}, fmt.Errorf("%w: provider returned no id token", common.ErrAuthentication)
	}

	refresh := t.RefreshToken
	if refresh == "" {
		refresh = previousRefresh
	}

	now := a.now()
	expires := now.Add(defaultTokenLifetime)
	if t.ExpiresIn > 0 {
		expires = now.Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	if exp, ok := idTokenExpiry(t.IDToken); ok && (t.ExpiresIn <= 0 || exp.Before(expires)) {
		expires = exp
	}

	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = common.DefaultTokenType
	}

	return models.CredentialSet{
		AccessToken:  t.AccessToken,
		RefreshToken: refresh,
		IDToken:      t.IDToken,
		TokenType:    tokenType,
		ExpiresAt:    expires,
	}, nil
}

// Identity returns the sub and email claims of the current ID token.
func (a *Authenticator) Identity() (sub, email string) {
	c, ok := a.store.Get()
	if !ok {
		return "", ""
	}
	return idTokenSubject(c.IDToken)
}

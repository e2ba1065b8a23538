package auth

import (
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/client/models"
)

// TokenStore holds the session's current CredentialSet. Every update swaps
// in a fresh immutable copy, so readers never observe a partial write.
type TokenStore struct {
	current atomic.Pointer[models.CredentialSet]
	now     func() time.Time
}

func NewTokenStore() *TokenStore {
	return &TokenStore{now: time.Now}
}

// Get returns a copy of the current credentials; ok is false when empty.
func (s *TokenStore) Get() (models.CredentialSet, bool) {
	p := s.current.Load()
	if p == nil {
		return models.CredentialSet{}, false
	}
	return *p, true
}

func (s *TokenStore) Set(c models.CredentialSet) {
	s.current.Store(&c)
}

func (s *TokenStore) Clear() {
	s.current.Store(nil)
}

// IsExpired reports whether now+skew has reached the expiry. An empty store
// counts as expired.
func (s *TokenStore) IsExpired(skew time.Duration) bool {
	c, ok := s.Get()
	if !ok {
		return true
	}
	return c.ExpiredAt(s.now(), skew)
}

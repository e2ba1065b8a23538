package auth

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type fakeProvider struct {
	mu sync.Mutex

	initiateCalls atomic.Int32
	refreshCalls  atomic.Int32

	initiate func(ctx context.Context, username, password string) (Tokens, error)
	refresh  func(ctx context.Context, refreshToken string) (Tokens, error)
}

func (f *fakeProvider) InitiateAuth(ctx context.Context, username, password string) (Tokens, error) {
	f.initiateCalls.Add(1)
	f.mu.Lock()
	fn := f.initiate
	f.mu.Unlock()
	return fn(ctx, username, password)
}

func (f *fakeProvider) RefreshAuth(ctx context.Context, refreshToken string) (Tokens, error) {
	f.refreshCalls.Add(1)
	f.mu.Lock()
	fn := f.refresh
	f.mu.Unlock()
	return fn(ctx, refreshToken)
}

func okTokens(id string) Tokens {
	return Tokens{AccessToken: "acc-" + id, RefreshToken: "ref-" + id, IDToken: id, TokenType: "Bearer", ExpiresIn: 3600}
}

func signedIDToken(t *testing.T, exp time.Time, sub string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp":   exp.Unix(),
		"sub":   sub,
		"email": sub + "@example.com",
	}).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestAuthenticator(p IdentityProvider) *Authenticator {
	store := NewTokenStore()
	store.now = func() time.Time { return testNow }
	a := NewAuthenticator(p, store, nil, time.Second)
	a.now = func() time.Time { return testNow }
	return a
}

package auth

import (
	"context"
	"errors"
)

// Tokens is what the identity provider returns for a successful exchange.
// RefreshToken may be empty on refresh, in which case the old one stays valid.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	TokenType    string
	ExpiresIn    int32
}

// IdentityProvider performs the two exchanges the session needs.
//
// InitiateAuth returns ErrRejected when the provider refuses the username or
// password. RefreshAuth returns ErrRejected when the refresh token itself is
// no longer accepted. Any other error is a protocol or network failure.
type IdentityProvider interface {
	InitiateAuth(ctx context.Context, username, password string) (Tokens, error)
	RefreshAuth(ctx context.Context, refreshToken string) (Tokens, error)
}

// ErrRejected marks an explicit refusal by the identity provider.
var ErrRejected = errors.New("rejected by identity provider")

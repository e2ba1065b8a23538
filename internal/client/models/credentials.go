package models

import (
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/common"
)

// CredentialSet is the token triple issued by the identity provider plus its
// expiry. ExpiresAt always belongs to the tokens it was issued with; the set
// is replaced as a whole, never field by field.
type CredentialSet struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	TokenType    string
	ExpiresAt    time.Time
}

// IsZero reports whether no token is held.
func (c CredentialSet) IsZero() bool {
	return c.IDToken == "" && c.AccessToken == ""
}

// Authorization returns the Authorization header value. The service
// authorizes API calls with the ID token, not the access token.
func (c CredentialSet) Authorization() string {
	tt := c.TokenType
	if tt == "" {
		tt = common.DefaultTokenType
	}
	return tt + " " + c.IDToken
}

// ExpiredAt reports whether the set is expired at now given a safety skew.
func (c CredentialSet) ExpiredAt(now time.Time, skew time.Duration) bool {
	if c.IsZero() || c.ExpiresAt.IsZero() {
		return true
	}
	return !now.Add(skew).Before(c.ExpiresAt)
}

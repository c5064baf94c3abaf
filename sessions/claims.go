package sessions

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/school-portal/internal/errors"
)

// AccessClaims are the claims the API puts in its access tokens: the user id
// as subject plus role and group names.
type AccessClaims struct {
	Role   RoleType `json:"role,omitempty"`
	Groups []string `json:"groups,omitempty"`
	jwt.RegisteredClaims
}

// ParseAccessClaims decodes the claims of an access token without checking
// its signature. The client has no key to verify with; the result is for
// display only and never decides whether a session is valid.
func ParseAccessClaims(accessToken string) (*AccessClaims, error) {
	if accessToken == "" {
		return nil, errors.ErrInvalidToken
	}
	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "parsing access token: %v", err)
	}
	return claims, nil
}

// ExpiresIn returns the time left before the token's exp claim, or false when
// the token carries none.
func (c *AccessClaims) ExpiresIn(now time.Time) (time.Duration, bool) {
	if c.ExpiresAt == nil {
		return 0, false
	}
	return c.ExpiresAt.Sub(now), true
}

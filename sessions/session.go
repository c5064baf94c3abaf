package sessions

import (
	"golang.org/x/oauth2"
)

// Session is the client-held authentication state for the current user.
// The JSON form matches the body the API returns from /auth/login.
type Session struct {
	AccessToken  string `json:"access_token"`            // Short-lived bearer credential
	RefreshToken string `json:"refresh_token,omitempty"` // Persisted, never exercised by this client
	User         User   `json:"user"`                    // Cached profile, replaced on profile update
}

// Authenticated reports whether the session carries an access token.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}

// Token returns the session credentials as an oauth2 token of type Bearer.
// Expiry is taken from the access token's exp claim when it can be read.
func (s Session) Token() *oauth2.Token {
	t := &oauth2.Token{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    "Bearer",
	}
	if claims, err := ParseAccessClaims(s.AccessToken); err == nil && claims.ExpiresAt != nil {
		t.Expiry = claims.ExpiresAt.Time
	}
	return t
}

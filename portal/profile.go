package portal

import (
	"context"
	"net/http"

	"github.com/jrsteele09/school-portal/internal/errors"
	"github.com/jrsteele09/school-portal/sessions"
)

const routeMe = "/auth/me"

// ProfileService reads and edits the logged-in user's own profile.
type ProfileService struct {
	c *Client
}

// Me fetches the current user from the server.
func (s *ProfileService) Me(ctx context.Context) (*sessions.User, error) {
	var out sessions.User
	if err := s.c.get(ctx, routeMe, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes email and/or password and replaces the cached user with the
// server's copy. Tokens are left as they are.
func (s *ProfileService) Update(ctx context.Context, in ProfileUpdate) (*sessions.User, error) {
	if in.Email == "" && in.Password == "" {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "nothing to update")
	}

	var out struct {
		User sessions.User `json:"user"`
	}
	if err := s.c.call(ctx, http.MethodPut, routeMe, &in, &out); err != nil {
		return nil, err
	}
	if err := s.c.gw.Sessions().SaveUser(ctx, out.User); err != nil {
		return nil, err
	}
	return &out.User, nil
}

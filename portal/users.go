package portal

import (
	"context"
	"net/http"

	"github.com/jrsteele09/school-portal/internal/errors"
	"github.com/jrsteele09/school-portal/sessions"
)

const (
	routeUsers    = "/users"
	routeRegister = "/auth/register"
)

// UserService backs the admin user screens, plus the children lookup parents
// use to filter homework and grades.
type UserService struct {
	c *Client
}

func (s *UserService) List(ctx context.Context) ([]sessions.User, error) {
	var out struct {
		Users []sessions.User `json:"users"`
	}
	if err := s.c.get(ctx, routeUsers, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*sessions.User, error) {
	if err := requireID(id, "user"); err != nil {
		return nil, err
	}
	var out sessions.User
	if err := s.c.get(ctx, routeUsers+"/"+itoa(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a user from the admin screen.
func (s *UserService) Create(ctx context.Context, in UserInput) (*sessions.User, error) {
	if in.Password == "" {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "password is a required field")
	}
	return s.save(ctx, http.MethodPost, routeUsers, in)
}

// Register creates a user through the auth endpoint (admin only).
func (s *UserService) Register(ctx context.Context, in UserInput) (*sessions.User, error) {
	if in.Password == "" {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "password is a required field")
	}
	return s.save(ctx, http.MethodPost, routeRegister, in)
}

// Update changes a user; an empty password leaves it unchanged.
func (s *UserService) Update(ctx context.Context, id int, in UserInput) (*sessions.User, error) {
	if err := requireID(id, "user"); err != nil {
		return nil, err
	}
	return s.save(ctx, http.MethodPut, routeUsers+"/"+itoa(id), in)
}

func (s *UserService) save(ctx context.Context, method, path string, in UserInput) (*sessions.User, error) {
	var out struct {
		User *sessions.User `json:"user"`
	}
	if err := s.c.call(ctx, method, path, &in, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "user"); err != nil {
		return err
	}
	return s.c.delete(ctx, routeUsers+"/"+itoa(id))
}

// SetGroups moves a user into target, computing the additions and removals
// against the user's current groups.
func (s *UserService) SetGroups(ctx context.Context, id int, target []int) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	change := diffGroups(user.Groups, target)
	if len(change.AddGroups) == 0 && len(change.RemoveGroups) == 0 {
		return nil
	}
	return s.c.call(ctx, http.MethodPut, routeUsers+"/"+itoa(id)+"/groups", &change, nil)
}

func diffGroups(current []sessions.GroupRef, target []int) GroupMembershipChange {
	have := make(map[int]bool, len(current))
	for _, g := range current {
		have[g.ID] = true
	}
	want := make(map[int]bool, len(target))
	change := GroupMembershipChange{AddGroups: []int{}, RemoveGroups: []int{}}
	for _, id := range target {
		if want[id] {
			continue
		}
		want[id] = true
		if !have[id] {
			change.AddGroups = append(change.AddGroups, id)
		}
	}
	for _, g := range current {
		if !want[g.ID] {
			change.RemoveGroups = append(change.RemoveGroups, g.ID)
		}
	}
	return change
}

// Children lists the students linked to a parent account.
func (s *UserService) Children(ctx context.Context, parentID int) ([]sessions.User, error) {
	if err := requireID(parentID, "user"); err != nil {
		return nil, err
	}
	var out struct {
		Children []sessions.User `json:"children"`
	}
	if err := s.c.get(ctx, routeUsers+"/"+itoa(parentID)+"/children", &out); err != nil {
		return nil, err
	}
	return out.Children, nil
}

package portal

import (
	"context"
	"net/http"
)

const routeGroups = "/groups"

type GroupService struct {
	c *Client
}

func (s *GroupService) List(ctx context.Context) ([]Group, error) {
	var out struct {
		Groups []Group `json:"groups"`
	}
	if err := s.c.get(ctx, routeGroups, &out); err != nil {
		return nil, err
	}
	return out.Groups, nil
}

func (s *GroupService) Get(ctx context.Context, id int) (*Group, error) {
	if err := requireID(id, "group"); err != nil {
		return nil, err
	}
	var out Group
	if err := s.c.get(ctx, routeGroups+"/"+itoa(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *GroupService) Create(ctx context.Context, in GroupInput) (*Group, error) {
	return s.save(ctx, http.MethodPost, routeGroups, in)
}

func (s *GroupService) Update(ctx context.Context, id int, in GroupInput) (*Group, error) {
	if err := requireID(id, "group"); err != nil {
		return nil, err
	}
	return s.save(ctx, http.MethodPut, routeGroups+"/"+itoa(id), in)
}

func (s *GroupService) save(ctx context.Context, method, path string, in GroupInput) (*Group, error) {
	var out struct {
		Group *Group `json:"group"`
	}
	if err := s.c.call(ctx, method, path, &in, &out); err != nil {
		return nil, err
	}
	return out.Group, nil
}

func (s *GroupService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "group"); err != nil {
		return err
	}
	return s.c.delete(ctx, routeGroups+"/"+itoa(id))
}

package portal

import (
	"context"
	"net/http"

	"github.com/jrsteele09/school-portal/gateway"
	"github.com/jrsteele09/school-portal/internal/errors"
)

const routeHomeworks = "/homeworks"

type HomeworkService struct {
	c *Client
}

// List returns homework visible to the current user, ordered by due date.
// The server applies Status only for students and parents.
func (s *HomeworkService) List(ctx context.Context, filter HomeworkFilter) ([]Homework, error) {
	opts := []gateway.RequestOption{gateway.WithQuery("status", string(filter.Status))}
	if filter.GroupID > 0 {
		opts = append(opts, gateway.WithQuery("group_id", itoa(filter.GroupID)))
	}
	if filter.ChildID > 0 {
		opts = append(opts, gateway.WithQuery("child_id", itoa(filter.ChildID)))
	}

	var out struct {
		Homeworks []Homework `json:"homeworks"`
	}
	if err := s.c.get(ctx, routeHomeworks, &out, opts...); err != nil {
		return nil, err
	}
	return out.Homeworks, nil
}

func (s *HomeworkService) Get(ctx context.Context, id int) (*Homework, error) {
	if err := requireID(id, "homework"); err != nil {
		return nil, err
	}
	var out struct {
		Homework Homework `json:"homework"`
	}
	if err := s.c.get(ctx, routeHomeworks+"/"+itoa(id), &out); err != nil {
		return nil, err
	}
	return &out.Homework, nil
}

func (s *HomeworkService) Create(ctx context.Context, in HomeworkInput) (*Homework, error) {
	if in.DueDate.IsZero() {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "due_date is a required field")
	}
	var out struct {
		Homework Homework `json:"homework"`
	}
	if err := s.c.call(ctx, http.MethodPost, routeHomeworks, &in, &out); err != nil {
		return nil, err
	}
	return &out.Homework, nil
}

func (s *HomeworkService) Update(ctx context.Context, id int, in HomeworkUpdate) (*Homework, error) {
	if err := requireID(id, "homework"); err != nil {
		return nil, err
	}
	var out struct {
		Homework Homework `json:"homework"`
	}
	if err := s.c.call(ctx, http.MethodPut, routeHomeworks+"/"+itoa(id), &in, &out); err != nil {
		return nil, err
	}
	return &out.Homework, nil
}

func (s *HomeworkService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "homework"); err != nil {
		return err
	}
	return s.c.delete(ctx, routeHomeworks+"/"+itoa(id))
}

// ToggleComplete flips the current student's done flag on a homework.
func (s *HomeworkService) ToggleComplete(ctx context.Context, id int) (*Completion, error) {
	if err := requireID(id, "homework"); err != nil {
		return nil, err
	}
	var out Completion
	if err := s.c.call(ctx, http.MethodPost, routeHomeworks+"/"+itoa(id)+"/complete", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

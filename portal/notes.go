package portal

import (
	"context"
	"net/http"

	"github.com/jrsteele09/school-portal/gateway"
)

const routeNotes = "/notes"

// NoteService manages grades. Teachers see the grades they gave, students
// their own, parents their children's.
type NoteService struct {
	c *Client
}

// Students lists the students a teacher (or admin) can grade.
func (s *NoteService) Students(ctx context.Context) ([]Student, error) {
	var out struct {
		Students []Student `json:"students"`
	}
	if err := s.c.get(ctx, routeNotes+"/students", &out); err != nil {
		return nil, err
	}
	return out.Students, nil
}

// List returns grades; childID narrows a parent's view to one child and is
// ignored when zero.
func (s *NoteService) List(ctx context.Context, childID int) ([]Note, error) {
	var opts []gateway.RequestOption
	if childID > 0 {
		opts = append(opts, gateway.WithQuery("child_id", itoa(childID)))
	}
	var out struct {
		Notes []Note `json:"notes"`
	}
	if err := s.c.get(ctx, routeNotes, &out, opts...); err != nil {
		return nil, err
	}
	return out.Notes, nil
}

func (s *NoteService) Create(ctx context.Context, in NoteInput) (*Note, error) {
	var out struct {
		Note Note `json:"note"`
	}
	if err := s.c.call(ctx, http.MethodPost, routeNotes, &in, &out); err != nil {
		return nil, err
	}
	return &out.Note, nil
}

func (s *NoteService) Update(ctx context.Context, id int, in NoteUpdate) (*Note, error) {
	if err := requireID(id, "note"); err != nil {
		return nil, err
	}
	var out struct {
		Note Note `json:"note"`
	}
	if err := s.c.call(ctx, http.MethodPut, routeNotes+"/"+itoa(id), &in, &out); err != nil {
		return nil, err
	}
	return &out.Note, nil
}

func (s *NoteService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "note"); err != nil {
		return err
	}
	return s.c.delete(ctx, routeNotes+"/"+itoa(id))
}

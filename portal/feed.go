package portal

import (
	"context"
	"net/http"

	"github.com/jrsteele09/school-portal/gateway"
)

const routeFeed = "/feed"

// FeedService reads and publishes announcements. Publishing is admin only on
// the server side.
type FeedService struct {
	c *Client
}

// List returns one page of announcements. Zero page or perPage leaves the
// server default in place.
func (s *FeedService) List(ctx context.Context, page, perPage int) (*AnnouncementPage, error) {
	var opts []gateway.RequestOption
	if page > 0 {
		opts = append(opts, gateway.WithQuery("page", itoa(page)))
	}
	if perPage > 0 {
		opts = append(opts, gateway.WithQuery("per_page", itoa(perPage)))
	}

	var out AnnouncementPage
	if err := s.c.get(ctx, routeFeed, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FeedService) Create(ctx context.Context, in AnnouncementInput) (*Announcement, error) {
	var out struct {
		Announcement Announcement `json:"announcement"`
	}
	if err := s.c.call(ctx, http.MethodPost, routeFeed, &in, &out); err != nil {
		return nil, err
	}
	return &out.Announcement, nil
}

func (s *FeedService) Update(ctx context.Context, id int, in AnnouncementUpdate) (*Announcement, error) {
	if err := requireID(id, "announcement"); err != nil {
		return nil, err
	}
	var out struct {
		Announcement Announcement `json:"announcement"`
	}
	if err := s.c.call(ctx, http.MethodPut, routeFeed+"/"+itoa(id), &in, &out); err != nil {
		return nil, err
	}
	return &out.Announcement, nil
}

func (s *FeedService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "announcement"); err != nil {
		return err
	}
	return s.c.delete(ctx, routeFeed+"/"+itoa(id))
}

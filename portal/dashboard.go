package portal

import (
	"context"

	"github.com/jrsteele09/school-portal/internal/errors"
	"github.com/jrsteele09/school-portal/sessions"
	"golang.org/x/sync/errgroup"
)

// dashboardFeedSize is how many announcements the dashboard shows.
const dashboardFeedSize = 5

type Dashboard struct {
	User            sessions.User
	Announcements   []Announcement
	PendingHomework []Homework
}

// Dashboard loads the landing page: the cached user, the latest
// announcements and pending homework. The two API calls run concurrently;
// both finish before the first failure is returned.
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{}
	user, err := c.gw.Sessions().User(ctx)
	switch {
	case err == nil:
		d.User = *user
	case !errors.Is(err, errors.ErrNotFound):
		return nil, err
	}

	// A plain group: one failing call does not cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		page, err := c.Feed.List(ctx, 1, dashboardFeedSize)
		if err != nil {
			return err
		}
		d.Announcements = page.Announcements
		return nil
	})
	g.Go(func() error {
		homework, err := c.Homeworks.List(ctx, HomeworkFilter{Status: HomeworkPending})
		if err != nil {
			return err
		}
		d.PendingHomework = homework
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

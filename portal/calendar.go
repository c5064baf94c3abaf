package portal

import "context"

const routeCalendar = "/calendar"

type CalendarService struct {
	c *Client
}

// List returns the events of the current user's groups (all events for admins).
func (s *CalendarService) List(ctx context.Context) ([]CalendarEvent, error) {
	var out struct {
		Events []CalendarEvent `json:"events"`
	}
	if err := s.c.get(ctx, routeCalendar, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (s *CalendarService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "event"); err != nil {
		return err
	}
	return s.c.delete(ctx, routeCalendar+"/"+itoa(id))
}

package portal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/school-portal/gateway"
	"github.com/jrsteele09/school-portal/internal/errors"
)

// Client groups the resource clients over one gateway.
type Client struct {
	gw *gateway.Gateway

	Feed      *FeedService
	Homeworks *HomeworkService
	Notes     *NoteService
	Mail      *MailService
	Calendar  *CalendarService
	Users     *UserService
	Groups    *GroupService
	Profile   *ProfileService
}

func New(gw *gateway.Gateway) *Client {
	c := &Client{gw: gw}
	c.Feed = &FeedService{c: c}
	c.Homeworks = &HomeworkService{c: c}
	c.Notes = &NoteService{c: c}
	c.Mail = &MailService{c: c}
	c.Calendar = &CalendarService{c: c}
	c.Users = &UserService{c: c}
	c.Groups = &GroupService{c: c}
	c.Profile = &ProfileService{c: c}
	return c
}

// call validates body (when present), sends it and decodes the answer into out.
func (c *Client) call(ctx context.Context, method, path string, body, out any, opts ...gateway.RequestOption) error {
	if body != nil {
		if err := validate(body); err != nil {
			return err
		}
		opts = append(opts, gateway.WithJSON(body))
	}
	opts = append(opts, gateway.WithMethod(method))

	res, err := c.gw.Request(ctx, path, opts...)
	if err != nil {
		return err
	}
	return gateway.DecodeJSON(res, out)
}

func (c *Client) get(ctx context.Context, path string, out any, opts ...gateway.RequestOption) error {
	return c.call(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}

func itoa(id int) string {
	return fmt.Sprintf("%d", id)
}

func requireID(id int, what string) error {
	if id <= 0 {
		return errors.Wrapf(errors.ErrInvalidRequest, "%s id must be positive", what)
	}
	return nil
}

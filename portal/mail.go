package portal

import (
	"context"
	"net/http"
)

const routeMail = "/mail"

type MailService struct {
	c *Client
}

func (s *MailService) Inbox(ctx context.Context) ([]Message, error) {
	return s.list(ctx, routeMail+"/inbox")
}

func (s *MailService) Sent(ctx context.Context) ([]Message, error) {
	return s.list(ctx, routeMail+"/sent")
}

func (s *MailService) list(ctx context.Context, path string) ([]Message, error) {
	var out struct {
		Messages []Message `json:"messages"`
	}
	if err := s.c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// Get reads one message the current user sent or received. Reading a
// received message marks it read.
func (s *MailService) Get(ctx context.Context, id int) (*Message, error) {
	if err := requireID(id, "message"); err != nil {
		return nil, err
	}
	var out Message
	if err := s.c.get(ctx, routeMail+"/"+itoa(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Send delivers a message to at least one recipient user id.
func (s *MailService) Send(ctx context.Context, in MessageInput) (*Message, error) {
	var out struct {
		Mail Message `json:"mail"`
	}
	if err := s.c.call(ctx, http.MethodPost, routeMail+"/send", &in, &out); err != nil {
		return nil, err
	}
	return &out.Mail, nil
}

func (s *MailService) Delete(ctx context.Context, id int) error {
	if err := requireID(id, "message"); err != nil {
		return err
	}
	return s.c.delete(ctx, routeMail+"/"+itoa(id))
}

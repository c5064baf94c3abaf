package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default client. The default has no timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		g.httpClient = c
	}
}

// WithNavigator sets where the user is sent when the session ends.
func WithNavigator(n Navigator) Option {
	return func(g *Gateway) {
		g.navigator = n
	}
}

// request is the per-call state built by RequestOptions.
type request struct {
	method  string
	header  http.Header
	query   url.Values
	body    io.Reader
	jsonVal any
	hasJSON bool
}

// RequestOption merges caller-supplied settings into a call.
type RequestOption func(*request)

func WithMethod(method string) RequestOption {
	return func(r *request) {
		r.method = method
	}
}

// WithHeader sets a header. It may override Content-Type but never the
// Authorization header the gateway derives from the session.
func WithHeader(key, value string) RequestOption {
	return func(r *request) {
		r.header.Set(key, value)
	}
}

// WithQuery adds a query parameter. Empty values are skipped.
func WithQuery(key, value string) RequestOption {
	return func(r *request) {
		if value != "" {
			r.query.Add(key, value)
		}
	}
}

// WithJSON marshals v as the request body.
func WithJSON(v any) RequestOption {
	return func(r *request) {
		r.jsonVal = v
		r.hasJSON = true
		r.body = nil
	}
}

// WithBody sends b unchanged.
func WithBody(b []byte) RequestOption {
	return func(r *request) {
		r.body = bytes.NewReader(b)
		r.hasJSON = false
	}
}

func newRequest(opts []RequestOption) (*request, error) {
	r := &request{
		method: http.MethodGet,
		header: make(http.Header),
		query:  make(url.Values),
	}
	r.header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(r)
	}
	if r.hasJSON {
		b, err := json.Marshal(r.jsonVal)
		if err != nil {
			return nil, err
		}
		r.body = bytes.NewReader(b)
	}
	return r, nil
}

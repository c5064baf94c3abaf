package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/school-portal/internal/config"
	"github.com/jrsteele09/school-portal/internal/errors"
	"github.com/jrsteele09/school-portal/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	routeLogin      = "/auth/login"
	requestIDHeader = "X-Request-ID"
)

type Gateway struct {
	apiBase    string // base URL plus API prefix, no trailing slash
	loginRoute string
	httpClient *http.Client
	sessions   *sessions.Manager
	navigator  Navigator
}

func New(cfg config.GatewayConfig, manager *sessions.Manager, opts ...Option) *Gateway {
	g := &Gateway{
		apiBase:    cfg.GetBaseURL() + cfg.GetAPIPrefix(),
		loginRoute: cfg.GetLoginRoute(),
		httpClient: &http.Client{},
		sessions:   manager,
		navigator:  logNavigator{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Sessions returns the manager the gateway reads its token from.
func (g *Gateway) Sessions() *sessions.Manager {
	return g.sessions
}

// Request calls path (relative to the API base) with the stored access token.
// A 401 answer ends the session and yields a KindAuthExpired result; any
// other answer is returned untouched as KindOK and the caller must close it.
// Transport failures are returned as errors.
func (g *Gateway) Request(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	token, hasToken, err := g.sessions.Token(ctx)
	if err != nil {
		return nil, err
	}

	var auth *oauth2.Token
	if hasToken {
		auth = &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	}
	resp, err := g.do(ctx, path, auth, opts)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = (&Result{Response: resp}).Close()
		g.expire(ctx, token, hasToken)
		return &Result{Kind: KindAuthExpired}, nil
	}
	return &Result{Kind: KindOK, Response: resp}, nil
}

// CheckAuth guards a protected view: with no stored token it sends the user
// to login and returns false. The token is not checked against the server.
func (g *Gateway) CheckAuth(ctx context.Context) bool {
	_, ok, err := g.sessions.Token(ctx)
	if err != nil {
		log.Err(err).Msg("CheckAuth: failed to read session")
	}
	if !ok {
		g.navigator.Navigate(g.loginRoute)
		return false
	}
	return true
}

// Login exchanges credentials for a session and stores it. It bypasses the
// expiry handling of Request: a 401 here means bad credentials.
func (g *Gateway) Login(ctx context.Context, username, password string) (*sessions.Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, errors.ErrMissingCredentials
	}

	body := map[string]string{"username": username, "password": password}
	resp, err := g.do(ctx, routeLogin, nil, []RequestOption{WithMethod(http.MethodPost), WithJSON(body)})
	if err != nil {
		LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	var s sessions.Session
	if err := DecodeJSON(&Result{Kind: KindOK, Response: resp}, &s); err != nil {
		LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, errors.Wrapf(err, "[Gateway Login] %s", username)
	}
	if !s.Authenticated() {
		LoginsTotal.WithLabelValues("rejected").Inc()
		return nil, errors.Wrapf(errors.ErrInvalidToken, "[Gateway Login] response carried no access token")
	}
	if err := g.sessions.Save(ctx, s); err != nil {
		LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	LoginsTotal.WithLabelValues("ok").Inc()
	log.Info().Str("username", s.User.Username).Str("role", string(s.User.Role)).Msg("Logged in")
	return &s, nil
}

// Logout removes every session key and sends the user to login.
func (g *Gateway) Logout(ctx context.Context) error {
	if err := g.sessions.Clear(ctx); err != nil {
		return err
	}
	g.navigator.Navigate(g.loginRoute)
	return nil
}

// expire tears the session down after a 401. A call made with a token only
// navigates if it was the one that ended that session, so concurrent
// rejections produce a single redirect. A call made without a token clears
// whatever is left of the session and always navigates, as does a failed
// teardown.
func (g *Gateway) expire(ctx context.Context, token string, hadToken bool) {
	if !hadToken {
		if err := g.sessions.RemoveToken(ctx); err != nil {
			log.Err(err).Msg("Failed to clear session after authentication rejection")
		}
		g.navigator.Navigate(g.loginRoute)
		return
	}

	removed, err := g.sessions.TearDown(ctx, token)
	if err != nil {
		log.Err(err).Msg("Failed to clear session after authentication rejection")
		g.navigator.Navigate(g.loginRoute)
		return
	}
	if !removed {
		return
	}
	AuthExpiredTotal.Inc()
	log.Warn().Msg("Session expired")
	g.navigator.Navigate(g.loginRoute)
}

func (g *Gateway) do(ctx context.Context, path string, auth *oauth2.Token, opts []RequestOption) (*http.Response, error) {
	r, err := newRequest(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "[Gateway] encoding %s body", path)
	}

	target := g.apiBase + path
	if len(r.query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return nil, errors.Wrapf(err, "[Gateway] building %s %s", r.method, path)
	}
	req.Header = r.header
	if auth != nil {
		auth.SetAuthHeader(req)
	} else {
		req.Header.Del("Authorization")
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		RequestsTotal.WithLabelValues(r.method, "error").Inc()
		log.Debug().Err(err).Str("request_id", requestID).Str("method", r.method).Str("path", path).Msg("API request failed")
		return nil, fmt.Errorf("[Gateway] %s %s: %w", r.method, path, err)
	}

	RequestsTotal.WithLabelValues(r.method, strconv.Itoa(resp.StatusCode)).Inc()
	log.Debug().
		Str("request_id", requestID).
		Str("method", r.method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("API request")
	return resp, nil
}

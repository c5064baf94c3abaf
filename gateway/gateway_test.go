package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jrsteele09/school-portal/gateway"
	"github.com/jrsteele09/school-portal/internal/errors"
	"github.com/jrsteele09/school-portal/sessions"
	"github.com/jrsteele09/school-portal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const (
	testAccessToken  = "access-123"
	testRefreshToken = "refresh-456"
	testLoginRoute   = "/"
)

// testConfig points the gateway at a test server.
type testConfig struct {
	baseURL string
}

func (c testConfig) GetBaseURL() string    { return c.baseURL }
func (c testConfig) GetAPIPrefix() string  { return "/api/v1" }
func (c testConfig) GetLoginRoute() string { return testLoginRoute }

// recordingNavigator counts redirects.
type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *recordingNavigator) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.routes)
}

// capturedRequest is what the stub server saw.
type capturedRequest struct {
	Method    string
	Path      string
	RawQuery  string
	Header    http.Header
	Body      []byte
	HasHeader bool
}

type testFixture struct {
	server    *httptest.Server
	store     *storage.MemoryStore
	manager   *sessions.Manager
	navigator *recordingNavigator
	gateway   *gateway.Gateway

	mu       sync.Mutex
	requests []capturedRequest
}

func setupTestFixture(t *testing.T, handler http.HandlerFunc) *testFixture {
	t.Helper()

	f := &testFixture{
		store:     storage.NewMemoryStore(),
		navigator: &recordingNavigator{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_, hasAuth := r.Header["Authorization"]
		f.mu.Lock()
		f.requests = append(f.requests, capturedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			RawQuery:  r.URL.RawQuery,
			Header:    r.Header.Clone(),
			Body:      body,
			HasHeader: hasAuth,
		})
		f.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(f.server.Close)

	f.manager = sessions.NewManager(f.store)
	f.gateway = gateway.New(testConfig{baseURL: f.server.URL}, f.manager, gateway.WithNavigator(f.navigator))
	return f
}

func (f *testFixture) lastRequest(t *testing.T) capturedRequest {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func (f *testFixture) login(t *testing.T) {
	t.Helper()

	require.NoError(t, f.manager.Save(context.Background(), sessions.Session{
		AccessToken:  testAccessToken,
		RefreshToken: testRefreshToken,
		User:         sessions.User{ID: 1, Username: "alice", Role: sessions.RoleStudent},
	}))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func TestRequest_AttachesBearerToken(t *testing.T) {
	f := setupTestFixture(t, okHandler)
	f.login(t)

	res, err := f.gateway.Request(context.Background(), "/feed")
	require.NoError(t, err)
	defer res.Close()

	require.Equal(t, gateway.KindOK, res.Kind)
	require.True(t, res.Success())

	req := f.lastRequest(t)
	require.Equal(t, http.MethodGet, req.Method)
	require.Equal(t, "/api/v1/feed", req.Path)
	require.Equal(t, "Bearer "+testAccessToken, req.Header.Get("Authorization"))
	require.Equal(t, "application/json", req.Header.Get("Content-Type"))
	require.NotEmpty(t, req.Header.Get("X-Request-ID"))
}

func TestRequest_NoTokenNoAuthorization(t *testing.T) {
	f := setupTestFixture(t, okHandler)

	res, err := f.gateway.Request(context.Background(), "/feed",
		gateway.WithHeader("Authorization", "Bearer forged"))
	require.NoError(t, err)
	defer res.Close()

	req := f.lastRequest(t)
	require.False(t, req.HasHeader)
	require.Equal(t, "application/json", req.Header.Get("Content-Type"))
	require.Zero(t, f.navigator.count())
}

func TestRequest_MergesCallerOptions(t *testing.T) {
	f := setupTestFixture(t, okHandler)
	f.login(t)

	res, err := f.gateway.Request(context.Background(), "/homeworks",
		gateway.WithMethod(http.MethodPost),
		gateway.WithHeader("X-Trace", "abc"),
		gateway.WithHeader("Authorization", "Bearer forged"),
		gateway.WithQuery("status", "pending"),
		gateway.WithQuery("group_id", ""),
		gateway.WithJSON(map[string]any{"title": "Essay"}),
	)
	require.NoError(t, err)
	defer res.Close()

	req := f.lastRequest(t)
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "status=pending", req.RawQuery)
	require.Equal(t, "abc", req.Header.Get("X-Trace"))
	require.Equal(t, "Bearer "+testAccessToken, req.Header.Get("Authorization"))
	require.JSONEq(t, `{"title":"Essay"}`, string(req.Body))
}

func TestRequest_PassesThroughNon2xx(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Homework not found"})
	})
	f.login(t)

	res, err := f.gateway.Request(context.Background(), "/homeworks/9")
	require.NoError(t, err)
	require.Equal(t, gateway.KindOK, res.Kind)
	require.False(t, res.Success())
	require.Equal(t, http.StatusNotFound, res.Response.StatusCode)

	err = gateway.DecodeJSON(res, nil)
	var apiErr *errors.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "Homework not found", apiErr.Message)
	require.True(t, errors.Is(err, errors.ErrNotFound))

	token, ok, err := f.manager.Token(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testAccessToken, token)
}

func TestRequest_UnauthorizedTearsDownSession(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Token has expired"})
	})
	f.login(t)
	before := testutil.ToFloat64(gateway.AuthExpiredTotal)

	res, err := f.gateway.Request(context.Background(), "/feed")
	require.NoError(t, err)
	require.True(t, res.AuthExpired())
	require.Nil(t, res.Response)
	require.True(t, errors.Is(gateway.DecodeJSON(res, nil), errors.ErrAuthExpired))

	ctx := context.Background()
	_, ok, err := f.store.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = f.store.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	require.False(t, ok)

	require.Equal(t, 1, f.navigator.count())
	require.Equal(t, testLoginRoute, f.navigator.routes[0])
	require.Equal(t, before+1, testutil.ToFloat64(gateway.AuthExpiredTotal))
}

func TestRequest_ConcurrentUnauthorizedNavigatesOnce(t *testing.T) {
	const calls = 8

	// Hold every answer until all calls have reached the server, so each
	// one was sent with the token.
	var arrived sync.WaitGroup
	arrived.Add(calls)
	f := setupTestFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		arrived.Done()
		arrived.Wait()
		w.WriteHeader(http.StatusUnauthorized)
	})
	f.login(t)

	var (
		wg      sync.WaitGroup
		expired atomic.Int32
	)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.gateway.Request(context.Background(), "/feed")
			if err == nil && res.AuthExpired() {
				expired.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, calls, expired.Load())
	require.Equal(t, 1, f.navigator.count())
}

func TestRequest_UnauthorizedWithoutTokenNavigates(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	res, err := f.gateway.Request(context.Background(), "/feed")
	require.NoError(t, err)
	require.True(t, res.AuthExpired())
	require.Equal(t, 1, f.navigator.count())
}

func TestRequest_UnauthorizedWithEmptyTokenClearsUser(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	f.login(t)
	ctx := context.Background()
	require.NoError(t, f.manager.SaveToken(ctx, ""))

	res, err := f.gateway.Request(ctx, "/feed")
	require.NoError(t, err)
	require.True(t, res.AuthExpired())
	require.False(t, f.lastRequest(t).HasHeader)
	require.Equal(t, 1, f.navigator.count())

	for _, key := range []string{storage.KeyAccessToken, storage.KeyUser} {
		_, ok, err := f.store.Get(ctx, key)
		require.NoError(t, err)
		require.False(t, ok, key)
	}
	_, ok, err := f.store.Get(ctx, storage.KeyRefreshToken)
	require.NoError(t, err)
	require.True(t, ok)
}

// failingRemoveStore serves reads from a MemoryStore but cannot delete.
type failingRemoveStore struct {
	*storage.MemoryStore
}

func (failingRemoveStore) Remove(context.Context, ...string) error {
	return errors.ErrInternal
}

func TestRequest_UnauthorizedNavigatesWhenTeardownFails(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	manager := sessions.NewManager(failingRemoveStore{f.store})
	gw := gateway.New(testConfig{baseURL: f.server.URL}, manager, gateway.WithNavigator(f.navigator))
	f.login(t)

	res, err := gw.Request(context.Background(), "/feed")
	require.NoError(t, err)
	require.True(t, res.AuthExpired())
	require.Equal(t, 1, f.navigator.count())
}

func TestRequest_TransportFailure(t *testing.T) {
	f := setupTestFixture(t, okHandler)
	f.login(t)
	f.server.Close()

	_, err := f.gateway.Request(context.Background(), "/feed")
	require.Error(t, err)
	require.Zero(t, f.navigator.count())

	_, ok, err := f.manager.Token(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRequest_UnencodableBody(t *testing.T) {
	f := setupTestFixture(t, okHandler)

	_, err := f.gateway.Request(context.Background(), "/feed", gateway.WithJSON(make(chan int)))
	require.Error(t, err)
}

func TestCheckAuth(t *testing.T) {
	f := setupTestFixture(t, okHandler)
	ctx := context.Background()

	require.False(t, f.gateway.CheckAuth(ctx))
	require.Equal(t, 1, f.navigator.count())

	f.login(t)
	require.True(t, f.gateway.CheckAuth(ctx))
	require.Equal(t, 1, f.navigator.count())

	f.mu.Lock()
	require.Empty(t, f.requests)
	f.mu.Unlock()
}

func TestLogin_StoresSession(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if r.URL.Path != "/api/v1/auth/login" || body["username"] != "alice" || body["password"] != "s3cret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  testAccessToken,
			"refresh_token": testRefreshToken,
			"user":          map[string]any{"id": 1, "username": "alice", "email": "alice@school.example", "role": "eleve", "groups": []any{}},
		})
	})
	ctx := context.Background()

	s, err := f.gateway.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "alice", s.User.Username)
	require.False(t, f.lastRequest(t).HasHeader)

	access, ok, err := f.store.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testAccessToken, access)

	refresh, ok, err := f.store.Get(ctx, storage.KeyRefreshToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testRefreshToken, refresh)

	user, err := f.manager.User(ctx)
	require.NoError(t, err)
	require.Equal(t, sessions.RoleStudent, user.Role)
	require.Equal(t, "alice@school.example", user.Email)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	})

	_, err := f.gateway.Login(context.Background(), "alice", "wrong")
	require.True(t, errors.Is(err, errors.ErrInvalidCredentials))
	require.Contains(t, err.Error(), "Invalid credentials")
	require.Zero(t, f.navigator.count())

	_, ok, err := f.manager.Token(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLogin_MissingCredentials(t *testing.T) {
	f := setupTestFixture(t, okHandler)

	_, err := f.gateway.Login(context.Background(), " ", "pw")
	require.True(t, errors.Is(err, errors.ErrMissingCredentials))

	f.mu.Lock()
	require.Empty(t, f.requests)
	f.mu.Unlock()
}

func TestLogin_ResponseWithoutToken(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": 1}})
	})

	_, err := f.gateway.Login(context.Background(), "alice", "pw")
	require.True(t, errors.Is(err, errors.ErrInvalidToken))
}

func TestLogout(t *testing.T) {
	f := setupTestFixture(t, okHandler)
	f.login(t)
	ctx := context.Background()

	require.NoError(t, f.gateway.Logout(ctx))
	require.Equal(t, 1, f.navigator.count())

	for _, key := range []string{storage.KeyAccessToken, storage.KeyRefreshToken, storage.KeyUser} {
		_, ok, err := f.store.Get(ctx, key)
		require.NoError(t, err)
		require.False(t, ok, key)
	}
}

func TestRequestsTotal(t *testing.T) {
	f := setupTestFixture(t, okHandler)
	before := testutil.ToFloat64(gateway.RequestsTotal.WithLabelValues(http.MethodDelete, "200"))

	res, err := f.gateway.Request(context.Background(), "/feed/1", gateway.WithMethod(http.MethodDelete))
	require.NoError(t, err)
	require.NoError(t, res.Close())

	require.Equal(t, before+1, testutil.ToFloat64(gateway.RequestsTotal.WithLabelValues(http.MethodDelete, "200")))
}

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { gateway.RegisterCollectors(reg) })
	require.Panics(t, func() { gateway.RegisterCollectors(reg) })
}

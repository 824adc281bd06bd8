package gateway_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo/internal/domain"
	"lingo/internal/gateway"
	"lingo/internal/store"
)

type recordingNav struct {
	mu     sync.Mutex
	routes []domain.Route
}

func (n *recordingNav) Navigate(_ context.Context, r domain.Route) {
	n.mu.Lock()
	n.routes = append(n.routes, r)
	n.mu.Unlock()
}

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newClient(t *testing.T, h http.HandlerFunc, opts ...gateway.Option) (*gateway.Client, *store.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	st := store.NewMemoryStore()
	opts = append([]gateway.Option{gateway.WithLogger(quietLogger())}, opts...)
	return gateway.New(srv.URL+"/api", st, opts...), st
}

func TestClient_AttachesStoredToken(t *testing.T) {
	var got []string
	c, st := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "/api/users/profile", r.URL.Path)
		_, _ = io.WriteString(w, `{"username":"alice"}`)
	})

	var p domain.Profile
	require.NoError(t, c.Get(context.Background(), "/users/profile", &p))
	require.NoError(t, st.Set(domain.KeyToken, "tok-123"))
	require.NoError(t, c.Get(context.Background(), "/users/profile", &p))

	assert.Equal(t, []string{"", "Bearer tok-123"}, got)
	assert.Equal(t, "alice", p.Username)
}

func TestClient_PostSendsJSON(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"title":"Cafe","initialMessage":"Hola"}`, string(b))
		w.WriteHeader(http.StatusCreated)
	})

	err := c.Post(context.Background(), "/conversation", domain.NewConversation{Title: "Cafe", InitialMessage: "Hola"}, nil)
	require.NoError(t, err)
}

func TestClient_UnauthorizedResetsSessionOnce(t *testing.T) {
	nav := &recordingNav{}
	var requests []string
	c, st := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	}, gateway.WithNavigator(nav))

	require.NoError(t, st.Set(domain.KeyToken, "expired"))
	require.NoError(t, st.Set(domain.KeyUser, `{"username":"alice"}`))

	hookCalls := 0
	c.OnUnauthorized(func(context.Context) {
		hookCalls++
		// Storage is already cleared when hooks run.
		_, ok, _ := st.Get(domain.KeyToken)
		assert.False(t, ok)
		assert.Len(t, nav.routes, hookCalls-1, "hooks run before navigation")
	})

	err := c.Get(context.Background(), "/users/vocabulary", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Equal(t, 0, st.Len())
	assert.Equal(t, 1, hookCalls)
	assert.Equal(t, []domain.Route{domain.RouteLogin}, nav.routes)

	// The next request goes out without credentials.
	_ = c.Get(context.Background(), "/users/vocabulary", nil)
	assert.Equal(t, []string{"Bearer expired", ""}, requests)
}

func TestClient_ClassifiesStatuses(t *testing.T) {
	cases := []struct {
		status int
		want   domain.ErrorKind
		is     error
	}{
		{http.StatusBadRequest, domain.KindBadRequest, domain.ErrBadRequest},
		{http.StatusNotFound, domain.KindNotFound, domain.ErrNotFound},
		{http.StatusInternalServerError, domain.KindServerError, domain.ErrServerError},
		{http.StatusForbidden, domain.KindUnknown, domain.ErrUnknown},
		{http.StatusBadGateway, domain.KindUnknown, domain.ErrUnknown},
		{http.StatusServiceUnavailable, domain.KindUnknown, domain.ErrUnknown},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			nav := &recordingNav{}
			c, st := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", tc.status)
			}, gateway.WithNavigator(nav))
			require.NoError(t, st.Set(domain.KeyToken, "tok"))

			err := c.Get(context.Background(), "/quiz/7", nil)
			var ae *domain.APIError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tc.want, ae.Kind)
			assert.Equal(t, tc.status, ae.StatusCode)
			assert.Equal(t, "/quiz/7", ae.Path)
			assert.ErrorIs(t, err, tc.is)
			assert.NotErrorIs(t, err, domain.ErrUnauthorized)

			// Only 401 touches the session.
			assert.Equal(t, 1, st.Len())
			assert.Empty(t, nav.routes)
		})
	}
}

func TestClient_TransportFailureIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := gateway.New(base, store.NewMemoryStore(), gateway.WithLogger(quietLogger()))
	err := c.Get(context.Background(), "/users/profile", nil)

	var ae *domain.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, domain.KindUnknown, ae.Kind)
	assert.Zero(t, ae.StatusCode)
	assert.Error(t, ae.Err)
}

func TestClient_CanceledContext(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Get(ctx, "/users/profile", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.KindUnknown, domain.KindOf(err))
}

func TestClient_EmptyBodyWithOut(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	var g domain.Goal
	require.NoError(t, c.Delete(context.Background(), "/users/goals/3", &g))
}

func TestClient_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := gateway.NewCollector(reg)
	c, st := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/users/profile" {
			_, _ = io.WriteString(w, `{}`)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}, gateway.WithMetrics(col))
	require.NoError(t, st.Set(domain.KeyToken, "tok"))

	require.NoError(t, c.Get(context.Background(), "/users/profile", nil))
	require.Error(t, c.Get(context.Background(), "/users/badges", nil))

	count, err := testutil.GatherAndCount(reg, "lingo_gateway_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	expected := `
# HELP lingo_gateway_session_resets_total Sessions cleared after a 401 response.
# TYPE lingo_gateway_session_resets_total counter
lingo_gateway_session_resets_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "lingo_gateway_session_resets_total"))
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {},
		gateway.WithRateLimit(0.001, 1))

	require.NoError(t, c.Get(context.Background(), "/users/profile", nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Get(ctx, "/users/profile", nil)
	assert.Equal(t, domain.KindUnknown, domain.KindOf(err))
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/users"
	"github.com/agroboost/AgroBoost-RentalService/pkg/logger"
	"github.com/agroboost/AgroBoost-RentalService/pkg/metrics"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (domain.Actor, string, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Actor), args.String(1), args.Error(2)
}

func echoActor(w http.ResponseWriter, r *http.Request) {
	actor, ok := GetActor(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Header().Set("X-User", string(actor.Role))
	w.Header().Set("X-Token", GetTokenID(r.Context()))
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		auth := new(mockAuthenticator)
		auth.On("Authenticate", mock.Anything, "abc").
			Return(domain.Actor{UserID: 7, Role: domain.RoleProducteur}, "tok-1", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rec := httptest.NewRecorder()

		Auth(auth, logger.NewNop())(http.HandlerFunc(echoActor)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, string(domain.RoleProducteur), rec.Header().Get("X-User"))
		assert.Equal(t, "tok-1", rec.Header().Get("X-Token"))
		auth.AssertExpectations(t)
	})

	t.Run("missing header", func(t *testing.T) {
		auth := new(mockAuthenticator)
		rec := httptest.NewRecorder()

		Auth(auth, logger.NewNop())(http.HandlerFunc(echoActor)).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
		auth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("revoked token", func(t *testing.T) {
		auth := new(mockAuthenticator)
		auth.On("Authenticate", mock.Anything, "abc").
			Return(domain.Actor{}, "", users.ErrUnauthorized).Once()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer abc")
		rec := httptest.NewRecorder()

		Auth(auth, logger.NewNop())(http.HandlerFunc(echoActor)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("session store down", func(t *testing.T) {
		auth := new(mockAuthenticator)
		auth.On("Authenticate", mock.Anything, "abc").
			Return(domain.Actor{}, "", errors.New("redis down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rec := httptest.NewRecorder()

		Auth(auth, logger.NewNop())(http.HandlerFunc(echoActor)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	handler := RequireRoles(domain.RoleAdmin, domain.RoleProvider)(http.HandlerFunc(echoActor))

	tests := []struct {
		name   string
		ctx    context.Context
		status int
	}{
		{"admin", WithActor(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}, "t"), http.StatusOK},
		{"provider", WithActor(context.Background(), domain.Actor{UserID: 2, Role: domain.RoleProvider}, "t"), http.StatusOK},
		{"producteur", WithActor(context.Background(), domain.Actor{UserID: 3, Role: domain.RoleProducteur}, "t"), http.StatusForbidden},
		{"anonymous", context.Background(), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(tt.ctx)
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/bookings/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, path := range []string{"/bookings/1", "/bookings/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/bookings/{id}", "404")))
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(60, 2)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "buckets are per IP")

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"), "one token refills per second")

	now = now.Add(time.Hour)
	rl.Cleanup()
	rl.mu.Lock()
	assert.Empty(t, rl.visitors)
	rl.mu.Unlock()
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:4321"
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://app.agroboost.sn"})(next)

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
		req.Header.Set("Origin", "https://app.agroboost.sn")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://app.agroboost.sn", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

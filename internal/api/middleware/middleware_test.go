package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func echoUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r.Context())
	w.Header().Set("X-User", userID)
	w.Header().Set("X-Role", GetRole(r.Context()))
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	auth := NewAuthenticator(testSecret, "smc-identity")
	valid, err := auth.Issue("user-1", RoleStaff, time.Hour)
	require.NoError(t, err)

	expired, err := auth.Issue("user-1", RoleStaff, -time.Minute)
	require.NoError(t, err)

	otherIssuer, err := NewAuthenticator(testSecret, "someone-else").Issue("user-1", RoleStaff, time.Hour)
	require.NoError(t, err)

	wrongKey, err := NewAuthenticator("другой-ключ", "smc-identity").Issue("user-1", RoleStaff, time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "smc-identity",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	noneToken, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "no bearer prefix", header: valid, wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "wrong issuer", header: "Bearer " + otherIssuer, wantStatus: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + wrongKey, wantStatus: http.StatusUnauthorized},
		{name: "alg none", header: "Bearer " + noneToken, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			auth.Auth(http.HandlerFunc(echoUser)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "user-1", rec.Header().Get("X-User"))
				assert.Equal(t, RoleStaff, rec.Header().Get("X-Role"))
			}
		})
	}
}

func TestAuth_DefaultRoleIsCustomer(t *testing.T) {
	auth := NewAuthenticator(testSecret, "")
	token, err := auth.Issue("user-2", "", time.Hour)
	require.NoError(t, err)

	claims, err := auth.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-2", claims.Subject)
	assert.Equal(t, RoleCustomer, claims.Role)
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(RoleStaff, RoleAdmin)(http.HandlerFunc(echoUser))

	for role, want := range map[string]int{
		RoleStaff:    http.StatusOK,
		RoleAdmin:    http.StatusOK,
		RoleCustomer: http.StatusForbidden,
		"":           http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithUser(req.Context(), "u", role))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "role %q", role)
	}
}

func TestIsStaff(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, IsStaff(req.Context()))
	assert.True(t, IsStaff(WithUser(req.Context(), "u", RoleAdmin)))
	assert.False(t, IsStaff(WithUser(req.Context(), "u", RoleCustomer)))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))

	// другой клиент не затронут
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:1000"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1003"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("ip:10.0.0.1"))
	now = now.Add(11 * time.Minute)
	rl.Cleanup()

	rl.mu.Lock()
	assert.Empty(t, rl.visitors)
	rl.mu.Unlock()
}

type recordedRequest struct {
	method, route string
	status        int
}

type fakeHTTPMetrics struct {
	mu       sync.Mutex
	observed []recordedRequest
}

func (f *fakeHTTPMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observed = append(f.observed, recordedRequest{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/abc", nil))

	require.Len(t, m.observed, 1)
	assert.Equal(t, recordedRequest{http.MethodGet, "/bookings/{bookingId}", http.StatusNotFound}, m.observed[0])
}

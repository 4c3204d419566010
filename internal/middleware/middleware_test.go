package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestJWTAuthStoresClaims(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{
		"sub":  uint64(42),
		"role": "GUEST",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	c, _ := newContext(req)

	called := false
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		called = true
		if c.Get("user_id") == nil {
			t.Error("user_id not stored in context")
		}
		if role, _ := c.Get("role").(string); role != "GUEST" {
			t.Errorf("role = %v, want GUEST", c.Get("role"))
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Fatal("next handler not called for a valid token")
	}
}

func TestJWTAuthRejects(t *testing.T) {
	expired := signToken(t, jwt.MapClaims{
		"sub": uint64(42), "role": "GUEST", "exp": time.Now().Add(-time.Hour).Unix(),
	}, testSecret)
	wrongKey := signToken(t, jwt.MapClaims{
		"sub": uint64(42), "role": "GUEST", "exp": time.Now().Add(time.Hour).Unix(),
	}, "other-secret")

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired", "Bearer " + expired},
		{"wrong key", "Bearer " + wrongKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			c, rec := newContext(req)
			h := JWTAuth(testSecret)(func(c echo.Context) error {
				t.Error("next handler called for an invalid token")
				return nil
			})
			if err := h(c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		role    interface{}
		allowed []string
		want    int
	}{
		{"allowed", "ADMIN", []string{"ADMIN"}, http.StatusOK},
		{"one of several", "GUEST", []string{"GUEST", "ADMIN"}, http.StatusOK},
		{"wrong role", "GUEST", []string{"ADMIN"}, http.StatusForbidden},
		{"missing role", nil, []string{"ADMIN"}, http.StatusForbidden},
		{"non-string role", 7, []string{"ADMIN"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/rooms", nil)
			c, rec := newContext(req)
			if tc.role != nil {
				c.Set("role", tc.role)
			}
			h := RequireRole(tc.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := h(c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestUserIDClaimTypes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	c, _ := newContext(req)
	if got := userID(c); got != "guest" {
		t.Errorf("anonymous userID = %q, want guest", got)
	}

	// JWT subjects decode as float64; the rate limiter and cache keys
	// must still see distinct users.
	c, _ = newContext(req)
	c.Set("user_id", float64(42))
	if got := userID(c); got != "42" {
		t.Errorf("float64 userID = %q, want 42", got)
	}

	c, _ = newContext(req)
	c.Set("user_id", uint64(7))
	if got := userID(c); got != "7" {
		t.Errorf("uint64 userID = %q, want 7", got)
	}
}

func TestCacheKeySeparatesUsers(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "user_route_query"}

	keyFor := func(uid interface{}) string {
		req := httptest.NewRequest(http.MethodGet, "/v1/my-bookings", nil)
		c, _ := newContext(req)
		c.SetPath("/v1/my-bookings")
		if uid != nil {
			c.Set("user_id", uid)
		}
		return cacheKeyFrom(cfg, c)
	}

	a, b := keyFor(float64(10)), keyFor(float64(11))
	if a == b {
		t.Fatal("cache keys for different users collide")
	}
	if again := keyFor(float64(10)); again != a {
		t.Error("cache key for the same user is not stable")
	}
	if anon := keyFor(nil); anon == a {
		t.Error("anonymous cache key collides with a user's")
	}
}

func TestRateKeyStrategies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms/1/availability", nil)
	req.RemoteAddr = "203.0.113.9:4711"
	c, _ := newContext(req)
	c.SetPath("/v1/rooms/:id/availability")
	c.Set("user_id", float64(42))

	cases := []struct {
		strategy string
		want     string
	}{
		{"ip", "rl:ip:203.0.113.9"},
		{"user", "rl:user:42"},
		{"user_route", "rl:user:42:route:GET /v1/rooms/:id/availability"},
		{"ip_user_route", "rl:ip:203.0.113.9:user:42:route:GET /v1/rooms/:id/availability"},
	}
	for _, tc := range cases {
		t.Run(tc.strategy, func(t *testing.T) {
			cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: tc.strategy}
			if got := rateKeyFrom(cfg, c); got != tc.want {
				t.Errorf("key = %q, want %q", got, tc.want)
			}
		})
	}
}

package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"toolbox-backend/internal/config"
	"toolbox-backend/internal/service"
	"toolbox-backend/pkg/navigation"
)

func newTestApplication(t *testing.T, enableMetrics bool) *Application {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment:       "test",
		CORSOrigins:       []string{"*"},
		RateLimitRequests: 100,
		RateLimitWindow:   60,
		RateLimitBurst:    20,
		EnableMetrics:     enableMetrics,
		AdminUsername:     "admin",
	}
	menu := navigation.Default()

	app := &Application{cfg: cfg, options: Options{Menu: menu}}
	app.services = serviceContainer{
		Auth:       service.NewAuthService(nil, nil, "router-secret", time.Hour),
		User:       service.NewUserService(nil, nil, nil, cfg.AdminUsername),
		Navigation: service.NewNavigationService(menu, nil),
	}
	app.initHandlers()
	app.initRouter()

	t.Cleanup(func() { _ = app.rateLimiter.Shutdown() })
	return app
}

func TestRouterHealth(t *testing.T) {
	app := newTestApplication(t, false)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestRouterProtectsAPI(t *testing.T) {
	app := newTestApplication(t, false)

	for _, path := range []string{"/api/navigation", "/api/menu", "/api/users", "/api/check-auth"} {
		rec := httptest.NewRecorder()
		app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}

	for _, path := range []string{"/update-admin-password", "/delete-admin"} {
		rec := httptest.NewRecorder()
		app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestRouterDeleteAdminRejectsOtherUsers(t *testing.T) {
	app := newTestApplication(t, false)

	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte("router-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/delete-admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	app.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a non-admin token, got %d", rec.Code)
	}
}

func TestRouterMetricsToggle(t *testing.T) {
	disabled := newTestApplication(t, false)
	rec := httptest.NewRecorder()
	disabled.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected metrics to be hidden, got %d", rec.Code)
	}

	enabled := newTestApplication(t, true)
	rec = httptest.NewRecorder()
	enabled.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics endpoint, got %d", rec.Code)
	}
}

func TestAllowsAnyOrigin(t *testing.T) {
	if !allowsAnyOrigin([]string{"https://a.example", " * "}) {
		t.Fatalf("expected wildcard to be detected")
	}
	if allowsAnyOrigin([]string{"https://a.example"}) {
		t.Fatalf("expected explicit origins to allow credentials")
	}
}

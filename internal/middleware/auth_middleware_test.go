package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"toolbox-backend/internal/authorization"
	"toolbox-backend/internal/service"
)

type stubValidator struct {
	tokens map[string]string
}

func (s stubValidator) ValidateToken(token string) (*service.Claims, error) {
	username, ok := s.tokens[token]
	if !ok {
		return nil, service.ErrInvalidToken
	}
	return &service.Claims{Username: username}, nil
}

type stubAdminChecker struct {
	admins map[string]bool
	err    error
}

func (s stubAdminChecker) IsAdmin(username string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.admins[username], nil
}

func newAuthRouter(checker AdminChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	validator := stubValidator{tokens: map[string]string{"admin-token": "admin", "user-token": "alice"}}

	protected := router.Group("/api", AuthMiddleware(validator))
	protected.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUsername))
	})
	protected.GET("/menu", PermissionMiddleware(checker, authorization.PermissionViewFullMenu), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	protected.POST("/rotate", UsernameMiddleware("admin"), func(c *gin.Context) {
		c.String(http.StatusOK, "rotated")
	})
	return router
}

func serve(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	router := newAuthRouter(stubAdminChecker{})

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic user-token", status: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer user-token", status: http.StatusOK, body: "alice"},
		{name: "lowercase scheme", header: "bearer user-token", status: http.StatusOK, body: "alice"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(router, http.MethodGet, "/api/whoami", tc.header)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if tc.body != "" && rec.Body.String() != tc.body {
				t.Fatalf("expected body %q, got %q", tc.body, rec.Body.String())
			}
		})
	}
}

func TestPermissionMiddleware(t *testing.T) {
	router := newAuthRouter(stubAdminChecker{admins: map[string]bool{"admin": true}})

	if rec := serve(router, http.MethodGet, "/api/menu", "Bearer admin-token"); rec.Code != http.StatusOK {
		t.Fatalf("expected admin to pass, got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/api/menu", "Bearer user-token"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestPermissionMiddlewareLookupFailure(t *testing.T) {
	router := newAuthRouter(stubAdminChecker{err: errors.New("db down")})

	if rec := serve(router, http.MethodGet, "/api/menu", "Bearer admin-token"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestUsernameMiddleware(t *testing.T) {
	router := newAuthRouter(stubAdminChecker{})

	if rec := serve(router, http.MethodPost, "/api/rotate", "Bearer admin-token"); rec.Code != http.StatusOK {
		t.Fatalf("expected admin account to pass, got %d", rec.Code)
	}
	if rec := serve(router, http.MethodPost, "/api/rotate", "Bearer user-token"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

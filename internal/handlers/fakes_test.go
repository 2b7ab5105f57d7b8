package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"toolbox-backend/internal/middleware"
	"toolbox-backend/internal/models"
	"toolbox-backend/internal/service"
	"toolbox-backend/pkg/navigation"
	"toolbox-backend/pkg/validator"
)

type fakeAuthService struct {
	password string
	status   *models.AuthStatus
	err      error
}

func (f *fakeAuthService) Login(req models.LoginRequest) (string, *models.User, error) {
	if req.Password != f.password {
		return "", nil, service.ErrInvalidCredentials
	}
	return "token-" + req.Username, &models.User{Username: req.Username}, nil
}

func (f *fakeAuthService) RedirectAfterLogin() string { return "/dashboard" }

func (f *fakeAuthService) ValidateToken(token string) (*service.Claims, error) {
	return nil, service.ErrInvalidToken
}

func (f *fakeAuthService) CheckAuth(username string) (*models.AuthStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.status, nil
}

func (f *fakeAuthService) DashboardData(username string) (*models.DashboardData, error) {
	return &models.DashboardData{Status: "success", User: username, Authenticated: true}, nil
}

type fakeUserService struct {
	users     map[string]bool
	passwords map[string]string
	createErr error
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{users: map[string]bool{"admin": true, "alice": false}, passwords: map[string]string{}}
}

func (f *fakeUserService) List() ([]models.UserSummary, error) {
	return []models.UserSummary{{Username: "admin", IsAdmin: true}, {Username: "alice"}}, nil
}

func (f *fakeUserService) Create(req models.CreateUserRequest) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.users[req.Username]; ok {
		return nil, service.ErrUserExists
	}
	f.users[req.Username] = req.IsAdmin
	return &models.User{Username: req.Username}, nil
}

func (f *fakeUserService) Delete(username string) error {
	if username == "admin" {
		return service.ErrProtectedUser
	}
	delete(f.users, username)
	return nil
}

func (f *fakeUserService) UpdatePassword(username, password string) error {
	if _, ok := f.users[username]; !ok {
		return service.ErrUserNotFound
	}
	f.passwords[username] = password
	return nil
}

func (f *fakeUserService) IsAdmin(username string) (bool, error) { return f.users[username], nil }

func (f *fakeUserService) CreateAdmin(password string) (*models.User, error) {
	if password == "" {
		return nil, service.ErrAdminPasswordNotConfigured
	}
	if _, ok := f.users["admin"]; ok {
		return nil, service.ErrAdminExists
	}
	f.users["admin"] = true
	return &models.User{Username: "admin"}, nil
}

func (f *fakeUserService) UpdateAdminPassword(password string) error {
	if password == "" {
		return service.ErrAdminPasswordNotConfigured
	}
	f.passwords["admin"] = password
	return nil
}

func (f *fakeUserService) DeleteAdmin() error {
	delete(f.users, "admin")
	return nil
}

func (f *fakeUserService) AdminUsername() string { return "admin" }

type fakePermissionService struct {
	stored  map[string]models.PermissionSet
	updated map[string]interface{}
}

func (f *fakePermissionService) Get(username string) (models.PermissionSet, error) {
	if set, ok := f.stored[username]; ok {
		return set, nil
	}
	return models.PermissionSet{"dashboard": true, "snake-game": true}, nil
}

func (f *fakePermissionService) Update(username string, values map[string]interface{}) error {
	if username == "ghost" {
		return service.ErrUserNotFound
	}
	if _, ok := values["Bad Key"]; ok {
		return service.ErrInvalidModule
	}
	f.updated = values
	return nil
}

type fakeNavigationService struct {
	menu *navigation.Config
}

func (f fakeNavigationService) Menu() []navigation.Entry { return f.menu.Entries() }

func (f fakeNavigationService) ForViewer(viewer service.Viewer) ([]navigation.Entry, error) {
	return f.menu.VisibleTo(viewer.IsAdmin), nil
}

var (
	_ service.AuthUseCase       = (*fakeAuthService)(nil)
	_ service.UserUseCase       = (*fakeUserService)(nil)
	_ service.PermissionUseCase = (*fakePermissionService)(nil)
	_ service.NavigationUseCase = fakeNavigationService{}
)

// asUser stands in for AuthMiddleware in handler tests.
func asUser(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUsername, username)
		c.Next()
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	msg, _ := body["msg"].(string)
	return msg
}

func init() {
	gin.SetMode(gin.TestMode)
	validator.Init()
}


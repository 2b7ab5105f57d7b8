package service

import (
	"toolbox-backend/internal/models"
	"toolbox-backend/pkg/navigation"
)

type AuthUseCase interface {
	Login(models.LoginRequest) (string, *models.User, error)
	RedirectAfterLogin() string
	ValidateToken(string) (*Claims, error)
	CheckAuth(string) (*models.AuthStatus, error)
	DashboardData(string) (*models.DashboardData, error)
}

type UserUseCase interface {
	List() ([]models.UserSummary, error)
	Create(models.CreateUserRequest) (*models.User, error)
	Delete(string) error
	UpdatePassword(string, string) error
	IsAdmin(string) (bool, error)
	CreateAdmin(string) (*models.User, error)
	UpdateAdminPassword(string) error
	DeleteAdmin() error
	AdminUsername() string
}

type PermissionUseCase interface {
	Get(string) (models.PermissionSet, error)
	Update(string, map[string]interface{}) error
}

type NavigationUseCase interface {
	Menu() []navigation.Entry
	ForViewer(Viewer) ([]navigation.Entry, error)
}

var (
	_ AuthUseCase       = (*AuthService)(nil)
	_ UserUseCase       = (*UserService)(nil)
	_ PermissionUseCase = (*PermissionService)(nil)
	_ NavigationUseCase = (*NavigationService)(nil)
)

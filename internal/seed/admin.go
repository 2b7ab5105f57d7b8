package seed

import (
	"errors"

	"toolbox-backend/internal/models"
	"toolbox-backend/internal/service"
	"toolbox-backend/pkg/logger"
)

type AdminCreator interface {
	CreateAdmin(password string) (*models.User, error)
}

// EnsureAdmin creates the admin account on first start. It reports whether a
// new account was created.
func EnsureAdmin(users AdminCreator, password string) bool {
	if users == nil {
		return false
	}

	admin, err := users.CreateAdmin(password)
	switch {
	case err == nil:
		logger.Info("Created admin account", map[string]interface{}{"username": admin.Username})
		return true
	case errors.Is(err, service.ErrAdminExists):
		logger.Debug("Admin account already present", nil)
	case errors.Is(err, service.ErrAdminPasswordNotConfigured):
		logger.Warn("ADMIN_DEFAULT_PASSWORD is not set, skipping admin bootstrap", nil)
	default:
		logger.Error(err, "Failed to ensure admin account", nil)
	}
	return false
}

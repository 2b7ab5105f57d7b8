package service

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"toolbox-backend/internal/authorization"
	"toolbox-backend/internal/models"
	"toolbox-backend/internal/repository"
	"toolbox-backend/pkg/logger"
	"toolbox-backend/pkg/validator"
)

const defaultAdminUsername = "admin"

type UserService struct {
	repo          repository.UserRepository
	permissions   repository.PermissionRepository
	cache         PermissionCache
	adminUsername string
}

func NewUserService(repo repository.UserRepository, permissions repository.PermissionRepository, permissionCache PermissionCache, adminUsername string) *UserService {
	adminUsername = strings.TrimSpace(adminUsername)
	if adminUsername == "" {
		adminUsername = defaultAdminUsername
	}
	return &UserService{
		repo:          repo,
		permissions:   permissions,
		cache:         permissionCache,
		adminUsername: adminUsername,
	}
}

func (s *UserService) AdminUsername() string {
	return s.adminUsername
}

func (s *UserService) List() ([]models.UserSummary, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, models.UserSummary{
			Username: user.Username,
			IsAdmin:  user.IsAdmin.Bool(),
		})
	}
	return summaries, nil
}

func (s *UserService) Exists(username string) (bool, error) {
	_, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *UserService) IsAdmin(username string) (bool, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin.Bool(), nil
}

func (s *UserService) Create(req models.CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if !validator.ValidateUsername(username) {
		return nil, ErrInvalidUsername
	}
	if ok, msg := validator.ValidatePassword(req.Password); !ok {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, msg)
	}

	exists, err := s.Exists(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	return s.create(username, req.Password, req.IsAdmin)
}

func (s *UserService) create(username, password string, isAdmin bool) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
		IsAdmin:  authorization.AdminFlag(isAdmin),
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User created", map[string]interface{}{"username": username, "is_admin": isAdmin})
	return user, nil
}

func (s *UserService) Delete(username string) error {
	if username == s.adminUsername {
		return ErrProtectedUser
	}
	return s.delete(username)
}

func (s *UserService) delete(username string) error {
	if err := s.repo.DeleteByUsername(username); err != nil {
		return err
	}

	if s.permissions != nil {
		if err := s.permissions.DeleteByUsername(username); err != nil {
			logger.Error(err, "Failed to remove permissions of deleted user", map[string]interface{}{"username": username})
		}
	}
	if s.cache != nil {
		if err := s.cache.InvalidatePermissions(username); err != nil {
			logger.Warn("Failed to invalidate cached permissions", map[string]interface{}{"username": username, "error": err.Error()})
		}
	}

	return nil
}

func (s *UserService) UpdatePassword(username, password string) error {
	if ok, msg := validator.ValidatePassword(password); !ok {
		return fmt.Errorf("%w: %s", ErrWeakPassword, msg)
	}

	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashedPassword)
	return s.repo.Update(user)
}

// CreateAdmin creates the admin account with the configured password.
func (s *UserService) CreateAdmin(password string) (*models.User, error) {
	exists, err := s.Exists(s.adminUsername)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAdminExists
	}
	if password == "" {
		return nil, ErrAdminPasswordNotConfigured
	}

	return s.create(s.adminUsername, password, true)
}

func (s *UserService) UpdateAdminPassword(password string) error {
	if password == "" {
		return ErrAdminPasswordNotConfigured
	}
	return s.UpdatePassword(s.adminUsername, password)
}

func (s *UserService) DeleteAdmin() error {
	return s.delete(s.adminUsername)
}

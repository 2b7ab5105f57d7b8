package service

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"toolbox-backend/internal/authorization"
	"toolbox-backend/internal/models"
	"toolbox-backend/internal/repository"
	"toolbox-backend/pkg/cache"
	"toolbox-backend/pkg/logger"
	"toolbox-backend/pkg/navigation"
	"toolbox-backend/pkg/validator"
)

// PermissionCache is satisfied by *cache.Cache.
type PermissionCache interface {
	CachePermissions(username string, permissions interface{}) error
	GetCachedPermissions(username string, dest interface{}) error
	InvalidatePermissions(username string) error
}

type PermissionService struct {
	repo  repository.PermissionRepository
	users repository.UserRepository
	menu  *navigation.Config
	cache PermissionCache
}

func NewPermissionService(repo repository.PermissionRepository, users repository.UserRepository, menu *navigation.Config, permissionCache PermissionCache) *PermissionService {
	return &PermissionService{
		repo:  repo,
		users: users,
		menu:  menu,
		cache: permissionCache,
	}
}

// Defaults grants every module that is not reserved for administrators.
func (s *PermissionService) Defaults() models.PermissionSet {
	defaults := models.PermissionSet{}
	for _, entry := range s.menu.VisibleTo(false) {
		defaults[entry.ID] = true
	}
	return defaults
}

// Get returns the effective permissions of a user: stored flags layered over
// the defaults.
func (s *PermissionService) Get(username string) (models.PermissionSet, error) {
	if s.cache != nil {
		var cached models.PermissionSet
		err := s.cache.GetCachedPermissions(username, &cached)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) && !errors.Is(err, cache.ErrCacheDisabled) {
			logger.Warn("Failed to read cached permissions", map[string]interface{}{"username": username, "error": err.Error()})
		}
	}

	stored, err := s.Stored(username)
	if err != nil {
		return nil, err
	}

	permissions := s.Defaults()
	for module, allowed := range stored {
		permissions[module] = allowed
	}

	if s.cache != nil {
		if err := s.cache.CachePermissions(username, permissions); err != nil {
			logger.Warn("Failed to cache permissions", map[string]interface{}{"username": username, "error": err.Error()})
		}
	}

	return permissions, nil
}

// Stored returns only the flags persisted for the user.
func (s *PermissionService) Stored(username string) (models.PermissionSet, error) {
	rows, err := s.repo.ListByUsername(username)
	if err != nil {
		return nil, err
	}

	stored := make(models.PermissionSet, len(rows))
	for _, row := range rows {
		stored[authorization.ModuleID(row.Module)] = row.Allowed
	}
	return stored, nil
}

// Update stores the boolean flags from values. Keys may use either the module
// id form ("snake-game") or the column form ("snake_game") and must name a
// menu entry. Non-boolean values and the "username" key are ignored.
func (s *PermissionService) Update(username string, values map[string]interface{}) error {
	if s.users != nil {
		if _, err := s.users.GetByUsername(username); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
	}

	columns := make(map[string]bool, len(values))
	var invalid []string
	for key, value := range values {
		if key == "username" {
			continue
		}
		allowed, ok := value.(bool)
		if !ok {
			continue
		}
		moduleID := authorization.ModuleID(key)
		if !validator.ValidateModuleID(moduleID) {
			invalid = append(invalid, key)
			continue
		}
		if _, ok := s.menu.Lookup(moduleID); !ok {
			invalid = append(invalid, key)
			continue
		}
		columns[authorization.ModuleColumn(moduleID)] = allowed
	}

	if len(invalid) > 0 {
		sort.Strings(invalid)
		return fmt.Errorf("%w: %v", ErrInvalidModule, invalid)
	}

	logger.Debug("Updating permissions", map[string]interface{}{"username": username, "modules": len(columns)})

	if err := s.repo.Upsert(username, columns); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidatePermissions(username); err != nil {
			logger.Warn("Failed to invalidate cached permissions", map[string]interface{}{"username": username, "error": err.Error()})
		}
	}

	return nil
}

// Allowed treats modules without a flag as permitted.
func Allowed(permissions models.PermissionSet, moduleID string) bool {
	allowed, ok := permissions[moduleID]
	return !ok || allowed
}

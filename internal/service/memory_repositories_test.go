package service

import (
	"sort"

	"gorm.io/gorm"

	"toolbox-backend/internal/authorization"
	"toolbox-backend/internal/models"
	"toolbox-backend/internal/repository"
	"toolbox-backend/pkg/cache"
)

type memoryUserRepository struct {
	users  map[string]models.User
	nextID uint
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]models.User)}
}

func (m *memoryUserRepository) add(username string, isAdmin bool) {
	m.nextID++
	m.users[username] = models.User{ID: m.nextID, Username: username, IsAdmin: authorization.AdminFlag(isAdmin)}
}

func (m *memoryUserRepository) Create(user *models.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users[user.Username] = *user
	return nil
}

func (m *memoryUserRepository) GetByUsername(username string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (m *memoryUserRepository) GetAll() ([]models.User, error) {
	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memoryUserRepository) Update(user *models.User) error {
	m.users[user.Username] = *user
	return nil
}

func (m *memoryUserRepository) DeleteByUsername(username string) error {
	delete(m.users, username)
	return nil
}

var _ repository.UserRepository = (*memoryUserRepository)(nil)

type memoryPermissionRepository struct {
	rows map[string]map[string]bool
}

func newMemoryPermissionRepository() *memoryPermissionRepository {
	return &memoryPermissionRepository{rows: make(map[string]map[string]bool)}
}

func (m *memoryPermissionRepository) ListByUsername(username string) ([]models.UserPermission, error) {
	var result []models.UserPermission
	for module, allowed := range m.rows[username] {
		result = append(result, models.UserPermission{Username: username, Module: module, Allowed: allowed})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Module < result[j].Module })
	return result, nil
}

func (m *memoryPermissionRepository) Upsert(username string, values map[string]bool) error {
	if m.rows[username] == nil {
		m.rows[username] = make(map[string]bool)
	}
	for module, allowed := range values {
		m.rows[username][module] = allowed
	}
	return nil
}

func (m *memoryPermissionRepository) DeleteByUsername(username string) error {
	delete(m.rows, username)
	return nil
}

var _ repository.PermissionRepository = (*memoryPermissionRepository)(nil)

type memoryPermissionCache struct {
	store       map[string]models.PermissionSet
	invalidated []string
}

func newMemoryPermissionCache() *memoryPermissionCache {
	return &memoryPermissionCache{store: make(map[string]models.PermissionSet)}
}

func (m *memoryPermissionCache) CachePermissions(username string, permissions interface{}) error {
	set := permissions.(models.PermissionSet)
	copied := make(models.PermissionSet, len(set))
	for k, v := range set {
		copied[k] = v
	}
	m.store[username] = copied
	return nil
}

func (m *memoryPermissionCache) GetCachedPermissions(username string, dest interface{}) error {
	set, ok := m.store[username]
	if !ok {
		return cache.ErrCacheMiss
	}
	*dest.(*models.PermissionSet) = set
	return nil
}

func (m *memoryPermissionCache) InvalidatePermissions(username string) error {
	delete(m.store, username)
	m.invalidated = append(m.invalidated, username)
	return nil
}

var _ PermissionCache = (*memoryPermissionCache)(nil)

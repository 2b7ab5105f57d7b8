package repository

import (
	"sort"

	"toolbox-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PermissionRepository interface {
	ListByUsername(username string) ([]models.UserPermission, error)
	Upsert(username string, values map[string]bool) error
	DeleteByUsername(username string) error
}

type permissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) ListByUsername(username string) ([]models.UserPermission, error) {
	var permissions []models.UserPermission
	err := r.db.Where("username = ?", username).Order("module ASC").Find(&permissions).Error
	return permissions, err
}

// Upsert writes one row per module; values are keyed by column form.
func (r *permissionRepository) Upsert(username string, values map[string]bool) error {
	if len(values) == 0 {
		return nil
	}

	rows := permissionRows(username, values)
	return r.db.Transaction(func(tx *gorm.DB) error {
		return upsertPermissions(tx, &rows).Error
	})
}

func permissionRows(username string, values map[string]bool) []models.UserPermission {
	modules := make([]string, 0, len(values))
	for module := range values {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	rows := make([]models.UserPermission, 0, len(values))
	for _, module := range modules {
		rows = append(rows, models.UserPermission{
			Username: username,
			Module:   module,
			Allowed:  values[module],
		})
	}
	return rows
}

// upsertPermissions inserts rows, overwriting the flag of existing
// (username, module) pairs. A false flag must reach the database as false.
func upsertPermissions(tx *gorm.DB, rows *[]models.UserPermission) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}, {Name: "module"}},
		DoUpdates: clause.AssignmentColumns([]string{"allowed", "updated_at"}),
	}).Create(rows)
}

func (r *permissionRepository) DeleteByUsername(username string) error {
	return r.db.Where("username = ?", username).Delete(&models.UserPermission{}).Error
}

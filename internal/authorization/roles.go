package authorization

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

// RoleFor maps the stored admin flag onto a role.
func RoleFor(isAdmin bool) UserRole {
	if isAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// AdminFlag is the users.is_admin column. Older rows were written by tools
// that stored it as text or integers, so Scan accepts all of those.
type AdminFlag bool

func (f AdminFlag) Bool() bool {
	return bool(f)
}

func (f AdminFlag) Value() (driver.Value, error) {
	return bool(f), nil
}

func (f *AdminFlag) Scan(value interface{}) error {
	if value == nil {
		*f = false
		return nil
	}

	parsed, ok := ParseAdminFlag(value)
	if !ok {
		return fmt.Errorf("unsupported type for AdminFlag: %T", value)
	}
	*f = AdminFlag(parsed)
	return nil
}

// ParseAdminFlag interprets loosely typed admin values. Strings count as true
// only when they read "true"; numbers when non-zero.
func ParseAdminFlag(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case AdminFlag:
		return bool(v), true
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true"), true
	case []byte:
		return strings.EqualFold(strings.TrimSpace(string(v)), "true"), true
	case int:
		return v != 0, true
	case int32:
		return v != 0, true
	case int64:
		return v != 0, true
	case float32:
		return v != 0, true
	case float64:
		return v != 0, true
	default:
		return false, false
	}
}

type Permission string

const (
	PermissionManageUsers       Permission = "manage_users"
	PermissionManagePermissions Permission = "manage_permissions"
	PermissionViewFullMenu      Permission = "view_full_menu"
)

var rolePermissions = map[UserRole]map[Permission]struct{}{
	RoleAdmin: {
		PermissionManageUsers:       {},
		PermissionManagePermissions: {},
		PermissionViewFullMenu:      {},
	},
	RoleUser: {},
}

// RoleHasPermission reports whether role grants permission. Regular users
// hold none of the management permissions; module access is per user.
func RoleHasPermission(role UserRole, permission Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = perms[permission]
	return ok
}

// ModuleColumn converts a module id as used by menu entries ("snake-game")
// into the storage form ("snake_game").
func ModuleColumn(moduleID string) string {
	return strings.ReplaceAll(strings.TrimSpace(moduleID), "-", "_")
}

// ModuleID is the inverse of ModuleColumn.
func ModuleID(column string) string {
	return strings.ReplaceAll(strings.TrimSpace(column), "_", "-")
}

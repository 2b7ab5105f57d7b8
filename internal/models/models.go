package models

import (
	"time"

	"toolbox-backend/internal/authorization"
	"toolbox-backend/pkg/navigation"
)

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username string                  `gorm:"uniqueIndex;not null" json:"username"`
	Password string                  `gorm:"not null" json:"-"`
	IsAdmin  authorization.AdminFlag `gorm:"not null;default:false" json:"is_admin"`
}

func (u *User) Role() authorization.UserRole {
	if u == nil {
		return authorization.RoleUser
	}
	return authorization.RoleFor(u.IsAdmin.Bool())
}

// UserPermission stores one module flag for one user. Module is kept in
// column form ("snake_game").
type UserPermission struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Username string `gorm:"uniqueIndex:idx_user_module;not null" json:"username"`
	Module   string `gorm:"uniqueIndex:idx_user_module;not null" json:"module"`
	Allowed  bool   `gorm:"not null" json:"allowed"`
}

// PermissionSet maps module ids ("snake-game") to whether the user may use them.
type PermissionSet map[string]bool

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Redirect    string `json:"redirect"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type UserSummary struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type AuthStatus struct {
	Status        string        `json:"status"`
	Msg           string        `json:"msg"`
	User          string        `json:"user"`
	IsAdmin       bool          `json:"is_admin"`
	Permissions   PermissionSet `json:"permissions"`
	Authenticated bool          `json:"authenticated"`
}

type DashboardData struct {
	Status        string `json:"status"`
	User          string `json:"user"`
	Authenticated bool   `json:"authenticated"`
	IsAdmin       bool   `json:"is_admin"`
}

type NavigationResponse struct {
	User    string             `json:"user"`
	IsAdmin bool               `json:"is_admin"`
	Items   []navigation.Entry `json:"menu_items"`
}

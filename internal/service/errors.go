package service

import "errors"

var (
	ErrInvalidCredentials         = errors.New("bad username or password")
	ErrInvalidToken               = errors.New("invalid or expired token")
	ErrUserExists                 = errors.New("username already exists")
	ErrUserNotFound               = errors.New("user not found")
	ErrProtectedUser              = errors.New("cannot delete admin user")
	ErrAdminExists                = errors.New("admin already exists")
	ErrAdminPasswordNotConfigured = errors.New("admin password not configured")
	ErrInvalidModule              = errors.New("invalid module id")
	ErrWeakPassword               = errors.New("password too weak")
	ErrInvalidUsername            = errors.New("username must be 3-30 characters of letters, digits or underscores")
)

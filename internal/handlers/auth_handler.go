package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"toolbox-backend/internal/middleware"
	"toolbox-backend/internal/models"
	"toolbox-backend/internal/service"
	"toolbox-backend/pkg/logger"
)

type AuthHandler struct {
	authService   service.AuthUseCase
	userService   service.UserUseCase
	adminPassword string
}

// NewAuthHandler wires sign-in and the admin bootstrap routes. adminPassword
// is the configured default used by create-admin and update-admin-password.
func NewAuthHandler(authService service.AuthUseCase, userService service.UserUseCase, adminPassword string) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, adminPassword: adminPassword}
}

func (h *AuthHandler) Login(c *gin.Context) {
	if h.authService == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Missing username or password")
		return
	}

	token, _, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondMessage(c, http.StatusUnauthorized, "Bad username or password")
			return
		}
		logger.Error(err, "Failed to sign in", map[string]interface{}{"user": req.Username})
		respondMessage(c, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		AccessToken: token,
		Redirect:    h.authService.RedirectAfterLogin(),
	})
}

func (h *AuthHandler) CheckAuth(c *gin.Context) {
	username := c.GetString(middleware.ContextUsername)
	if h.authService == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	status, err := h.authService.CheckAuth(username)
	if err != nil {
		logger.Error(err, "Auth check failed", map[string]interface{}{"user": username})
		c.JSON(http.StatusInternalServerError, models.AuthStatus{
			Status: "error",
			Msg:    "Error checking authorization",
			User:   username,
		})
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *AuthHandler) DashboardData(c *gin.Context) {
	username := c.GetString(middleware.ContextUsername)
	if h.authService == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	data, err := h.authService.DashboardData(username)
	if err != nil {
		logger.Error(err, "Failed to load dashboard data", map[string]interface{}{"user": username})
		respondMessage(c, http.StatusInternalServerError, "Failed to load dashboard data")
		return
	}

	c.JSON(http.StatusOK, data)
}

func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	if h.userService == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	if _, err := h.userService.CreateAdmin(h.adminPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrAdminExists):
			respondMessage(c, http.StatusBadRequest, "Admin already exists")
		case errors.Is(err, service.ErrAdminPasswordNotConfigured):
			respondMessage(c, http.StatusInternalServerError, "Admin password not configured")
		default:
			logger.Error(err, "Failed to create admin", nil)
			respondMessage(c, http.StatusInternalServerError, "Error creating admin")
		}
		return
	}

	logger.Info("Admin account created", map[string]interface{}{"user": h.userService.AdminUsername()})
	respondMessage(c, http.StatusCreated, "Admin user created successfully")
}

func (h *AuthHandler) UpdateAdminPassword(c *gin.Context) {
	if h.userService == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	if err := h.userService.UpdateAdminPassword(h.adminPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrAdminPasswordNotConfigured):
			respondMessage(c, http.StatusInternalServerError, "Admin password not configured")
		case errors.Is(err, service.ErrUserNotFound):
			respondMessage(c, http.StatusNotFound, "User not found")
		default:
			logger.Error(err, "Failed to update admin password", nil)
			respondMessage(c, http.StatusInternalServerError, "Error updating admin password")
		}
		return
	}

	respondMessage(c, http.StatusOK, "Admin password updated successfully")
}

func (h *AuthHandler) DeleteAdmin(c *gin.Context) {
	if h.userService == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	if err := h.userService.DeleteAdmin(); err != nil {
		logger.Error(err, "Failed to delete admin", nil)
		respondMessage(c, http.StatusInternalServerError, "Error deleting admin")
		return
	}

	logger.Warn("Admin account deleted", map[string]interface{}{"user": h.userService.AdminUsername()})
	respondMessage(c, http.StatusOK, "Admin user deleted successfully")
}

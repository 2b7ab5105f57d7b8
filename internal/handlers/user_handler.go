package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"toolbox-backend/internal/models"
	"toolbox-backend/internal/service"
	"toolbox-backend/pkg/logger"
)

type UserHandler struct {
	service service.UserUseCase
}

func NewUserHandler(service service.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(c *gin.Context) {
	if h.service == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	users, err := h.service.List()
	if err != nil {
		logger.Error(err, "Failed to list users", nil)
		respondMessage(c, http.StatusInternalServerError, "Error fetching users")
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	if h.service == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if strings.TrimSpace(req.Username) == "" || req.Password == "" {
			respondMessage(c, http.StatusBadRequest, "Missing username or password")
			return
		}
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.service.Create(req); err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			respondMessage(c, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, service.ErrInvalidUsername), errors.Is(err, service.ErrWeakPassword):
			respondMessage(c, http.StatusBadRequest, err.Error())
		default:
			logger.Error(err, "Failed to create user", map[string]interface{}{"username": req.Username})
			respondMessage(c, http.StatusInternalServerError, "Error creating user")
		}
		return
	}

	respondMessage(c, http.StatusCreated, "User created successfully")
}

func (h *UserHandler) Delete(c *gin.Context) {
	if h.service == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	username := c.Param("username")
	if err := h.service.Delete(username); err != nil {
		switch {
		case errors.Is(err, service.ErrProtectedUser):
			respondMessage(c, http.StatusBadRequest, "Cannot delete admin user")
		default:
			logger.Error(err, "Failed to delete user", map[string]interface{}{"username": username})
			respondMessage(c, http.StatusInternalServerError, "Error deleting user")
		}
		return
	}

	respondMessage(c, http.StatusOK, "User deleted successfully")
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	if h.service == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Missing new password")
		return
	}

	username := c.Param("username")
	if err := h.service.UpdatePassword(username, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondMessage(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrWeakPassword):
			respondMessage(c, http.StatusBadRequest, err.Error())
		default:
			logger.Error(err, "Failed to update password", map[string]interface{}{"username": username})
			respondMessage(c, http.StatusInternalServerError, "Error updating password")
		}
		return
	}

	respondMessage(c, http.StatusOK, "Password updated successfully")
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"toolbox-backend/internal/service"
	"toolbox-backend/pkg/logger"
)

type PermissionHandler struct {
	service service.PermissionUseCase
}

func NewPermissionHandler(service service.PermissionUseCase) *PermissionHandler {
	return &PermissionHandler{service: service}
}

func (h *PermissionHandler) Get(c *gin.Context) {
	if h.service == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	username := c.Param("username")
	permissions, err := h.service.Get(username)
	if err != nil {
		logger.Error(err, "Failed to load permissions", map[string]interface{}{"username": username})
		respondMessage(c, http.StatusInternalServerError, "Error loading permissions")
		return
	}

	c.JSON(http.StatusOK, permissions)
}

func (h *PermissionHandler) Update(c *gin.Context) {
	if h.service == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	var values map[string]interface{}
	if err := c.ShouldBindJSON(&values); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid permissions payload")
		return
	}

	username := c.Param("username")
	if err := h.service.Update(username, values); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondMessage(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrInvalidModule):
			respondMessage(c, http.StatusBadRequest, err.Error())
		default:
			logger.Error(err, "Failed to update permissions", map[string]interface{}{"username": username})
			respondMessage(c, http.StatusInternalServerError, "Error updating permissions")
		}
		return
	}

	respondMessage(c, http.StatusOK, "Permissions updated successfully")
}

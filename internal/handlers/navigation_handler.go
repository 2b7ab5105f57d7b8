package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolbox-backend/internal/middleware"
	"toolbox-backend/internal/models"
	"toolbox-backend/internal/service"
	"toolbox-backend/pkg/logger"
)

type NavigationHandler struct {
	service service.NavigationUseCase
	users   middleware.AdminChecker
}

func NewNavigationHandler(service service.NavigationUseCase, users middleware.AdminChecker) *NavigationHandler {
	return &NavigationHandler{service: service, users: users}
}

// Navigation returns the menu filtered for the signed-in user.
func (h *NavigationHandler) Navigation(c *gin.Context) {
	if h.service == nil || h.users == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	username := c.GetString(middleware.ContextUsername)
	isAdmin, err := h.users.IsAdmin(username)
	if err != nil {
		logger.Error(err, "Failed to resolve admin flag", map[string]interface{}{"user": username})
		respondMessage(c, http.StatusInternalServerError, "Failed to load navigation")
		return
	}

	items, err := h.service.ForViewer(service.Viewer{Username: username, IsAdmin: isAdmin})
	if err != nil {
		logger.Error(err, "Failed to build navigation", map[string]interface{}{"user": username})
		respondMessage(c, http.StatusInternalServerError, "Failed to load navigation")
		return
	}

	c.JSON(http.StatusOK, models.NavigationResponse{User: username, IsAdmin: isAdmin, Items: items})
}

// Menu returns the full configured menu, admin-only entries included.
func (h *NavigationHandler) Menu(c *gin.Context) {
	if h.service == nil {
		respondMessage(c, http.StatusInternalServerError, "Service not configured")
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu_items": h.service.Menu()})
}

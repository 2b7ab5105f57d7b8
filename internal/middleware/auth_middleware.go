package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"toolbox-backend/internal/authorization"
	"toolbox-backend/internal/service"
	"toolbox-backend/pkg/logger"
)

const (
	ContextUsername = "username"
	ContextIsAdmin  = "is_admin"
)

// TokenValidator resolves a bearer token to its claims.
type TokenValidator interface {
	ValidateToken(string) (*service.Claims, error)
}

// AdminChecker reports whether a stored account carries the admin flag.
type AdminChecker interface {
	IsAdmin(string) (bool, error)
}

func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Missing Authorization Header"})
			c.Abort()
			return
		}

		bearerToken := strings.SplitN(authHeader, " ", 2)
		if len(bearerToken) != 2 || !strings.EqualFold(bearerToken[0], "Bearer") || strings.TrimSpace(bearerToken[1]) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(bearerToken[1]))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// PermissionMiddleware requires AuthMiddleware to have run first. The role is
// resolved from storage on every request.
func PermissionMiddleware(checker AdminChecker, permission authorization.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(ContextUsername)
		isAdmin, err := checker.IsAdmin(username)
		if err != nil {
			logger.Error(err, "Failed to resolve admin flag", map[string]interface{}{"user": username})
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to verify permissions"})
			c.Abort()
			return
		}
		c.Set(ContextIsAdmin, isAdmin)
		if !authorization.RoleHasPermission(authorization.RoleFor(isAdmin), permission) {
			c.JSON(http.StatusForbidden, gin.H{"msg": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UsernameMiddleware restricts a route to a single account name.
func UsernameMiddleware(allowed string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUsername) != allowed {
			c.JSON(http.StatusForbidden, gin.H{"msg": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"toolbox-backend/internal/config"
)

const (
	loginRequestsPerWindow = 10
	loginWindowSeconds     = 60
)

// RateLimitMiddleware limits request rate per client IP.
func RateLimitMiddleware(manager *RateLimitManager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil || shouldBypassRateLimit(c.Request) {
			c.Next()
			return
		}

		limiter := manager.GetVisitor(
			c.ClientIP(),
			cfg.RateLimitRequests,
			cfg.RateLimitWindow,
			cfg.RateLimitBurst,
		)

		if limiter != nil && !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginRateLimitMiddleware throttles credential checks per client IP.
func LoginRateLimitMiddleware(manager *RateLimitManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager == nil {
			c.Next()
			return
		}

		limiter := manager.GetLoginLimiter(c.ClientIP(), loginRequestsPerWindow, loginWindowSeconds)
		if limiter != nil && !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"msg": "too many login attempts, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func shouldBypassRateLimit(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	switch path := r.URL.Path; {
	case path == "/health", path == "/metrics":
		return true
	case strings.HasPrefix(path, "/static/"):
		return true
	}

	return false
}

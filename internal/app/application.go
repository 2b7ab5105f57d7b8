package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"toolbox-backend/internal/authorization"
	"toolbox-backend/internal/config"
	"toolbox-backend/internal/handlers"
	"toolbox-backend/internal/middleware"
	"toolbox-backend/internal/models"
	"toolbox-backend/internal/repository"
	"toolbox-backend/internal/seed"
	"toolbox-backend/internal/service"
	"toolbox-backend/pkg/cache"
	"toolbox-backend/pkg/logger"
	"toolbox-backend/pkg/navigation"
)

type Options struct {
	// Menu is the navigation served to clients. Nil selects navigation.Default().
	Menu *navigation.Config
}

type Application struct {
	cfg     *config.Config
	options Options

	db          *gorm.DB
	cache       *cache.Cache
	rateLimiter *middleware.RateLimitManager

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	router *gin.Engine
	server *http.Server
}

type repositoryContainer struct {
	User       repository.UserRepository
	Permission repository.PermissionRepository
}

type serviceContainer struct {
	Auth       *service.AuthService
	User       *service.UserService
	Permission *service.PermissionService
	Navigation *service.NavigationService
}

type handlerContainer struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Permission *handlers.PermissionHandler
	Navigation *handlers.NavigationHandler
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if opts.Menu == nil {
		opts.Menu = navigation.Default()
	}

	app := &Application{
		cfg:     cfg,
		options: opts,
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	if err := app.createIndexes(); err != nil {
		return nil, err
	}

	app.initCache()
	app.flushPermissionCache()
	app.initRepositories()
	app.initServices()

	seed.EnsureAdmin(app.services.User, cfg.AdminDefaultPassword)

	app.initHandlers()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"menu_items":  a.options.Menu.Len(),
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.rateLimiter != nil {
		if err := a.rateLimiter.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limiter", nil)
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.User{},
		&models.UserPermission{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) createIndexes() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_admins ON users(username) WHERE is_admin = true",
		"CREATE INDEX IF NOT EXISTS idx_user_permissions_username ON user_permissions(username)",
	}

	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (a *Application) initCache() {
	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableCache)
	if err != nil {
		logger.Warn("Redis unavailable, permission cache disabled", map[string]interface{}{"error": err.Error()})
		c, _ = cache.NewCache("", false)
	}
	a.cache = c
}

// flushPermissionCache drops cached permission sets. Their defaults are
// derived from the menu, which may differ from the previous run.
func (a *Application) flushPermissionCache() {
	if !a.cache.Enabled() {
		return
	}
	if err := a.cache.InvalidateAllPermissions(); err != nil {
		logger.Warn("Failed to flush cached permissions", map[string]interface{}{"error": err.Error()})
	}
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		User:       repository.NewUserRepository(a.db),
		Permission: repository.NewPermissionRepository(a.db),
	}
}

func (a *Application) initServices() {
	var permissionCache service.PermissionCache
	if a.cache.Enabled() {
		permissionCache = a.cache
	}

	permissionSvc := service.NewPermissionService(a.repositories.Permission, a.repositories.User, a.options.Menu, permissionCache)

	a.services = serviceContainer{
		Auth:       service.NewAuthService(a.repositories.User, permissionSvc, a.cfg.JWTSecret, a.cfg.JWTExpiration),
		User:       service.NewUserService(a.repositories.User, a.repositories.Permission, permissionCache, a.cfg.AdminUsername),
		Permission: permissionSvc,
		Navigation: service.NewNavigationService(a.options.Menu, permissionSvc),
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Auth:       handlers.NewAuthHandler(a.services.Auth, a.services.User, a.cfg.AdminDefaultPassword),
		User:       handlers.NewUserHandler(a.services.User),
		Permission: handlers.NewPermissionHandler(a.services.Permission),
		Navigation: handlers.NewNavigationHandler(a.services.Navigation, a.services.User),
	}
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if a.rateLimiter == nil {
		a.rateLimiter = middleware.NewRateLimitManager(context.Background())
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	router.Use(middleware.SecurityHeadersMiddleware(a.cfg.IsProduction()))
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(a.rateLimiter, a.cfg))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowsAnyOrigin(a.cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	authRequired := middleware.AuthMiddleware(a.services.Auth)
	requirePermission := func(permission authorization.Permission) gin.HandlerFunc {
		return middleware.PermissionMiddleware(a.services.User, permission)
	}

	router.POST("/login", middleware.LoginRateLimitMiddleware(a.rateLimiter), a.handlers.Auth.Login)
	router.POST("/create-admin", a.handlers.Auth.CreateAdmin)
	adminOnly := middleware.UsernameMiddleware(a.services.User.AdminUsername())
	router.POST("/delete-admin", authRequired, adminOnly, a.handlers.Auth.DeleteAdmin)
	router.POST("/update-admin-password", authRequired, adminOnly, a.handlers.Auth.UpdateAdminPassword)

	api := router.Group("/api")
	api.Use(authRequired)
	{
		api.GET("/check-auth", a.handlers.Auth.CheckAuth)
		api.GET("/dashboard-data", a.handlers.Auth.DashboardData)
		api.GET("/navigation", a.handlers.Navigation.Navigation)

		api.GET("/menu", requirePermission(authorization.PermissionViewFullMenu), a.handlers.Navigation.Menu)

		users := api.Group("/users")
		{
			manageUsers := requirePermission(authorization.PermissionManageUsers)
			users.GET("", manageUsers, a.handlers.User.List)
			users.POST("", manageUsers, a.handlers.User.Create)
			users.DELETE("/:username", manageUsers, a.handlers.User.Delete)
			users.PUT("/:username/password", manageUsers, a.handlers.User.UpdatePassword)

			managePermissions := requirePermission(authorization.PermissionManagePermissions)
			users.GET("/:username/permissions", managePermissions, a.handlers.Permission.Get)
			users.PUT("/:username/permissions", managePermissions, a.handlers.Permission.Update)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"msg":  "Route not found",
			"path": c.Request.URL.Path,
		})
	})

	a.router = router
}

func allowsAnyOrigin(origins []string) bool {
	for _, origin := range origins {
		if strings.TrimSpace(origin) == "*" {
			return true
		}
	}
	return false
}

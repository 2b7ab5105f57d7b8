package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"toolbox-backend/internal/app"
	"toolbox-backend/internal/config"
	"toolbox-backend/pkg/logger"
	"toolbox-backend/pkg/navigation"
	"toolbox-backend/pkg/validator"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.New()
	logger.Init(cfg.LogLevel)
	logger.Info("Starting toolbox backend", nil)
	if envErr != nil {
		logger.Info("No .env file found, using environment variables", nil)
	}

	validator.Init()

	menu, err := loadMenu(cfg.MenuConfigFile)
	if err != nil {
		logger.Error(err, "Failed to load menu configuration", map[string]interface{}{"file": cfg.MenuConfigFile})
		os.Exit(1)
	}

	application, err := app.New(cfg, app.Options{Menu: menu})
	if err != nil {
		logger.Error(err, "Failed to initialize application", nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := application.Run(); err != nil && err != http.ErrServerClosed {
			logger.Error(err, "Failed to start server", nil)
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...", nil)
	case err := <-serverErr:
		logger.Error(err, "Server error occurred, initiating shutdown", nil)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, "Server forced to shutdown", nil)
		os.Exit(1)
	}

	logger.Info("Server exited gracefully", nil)
}

func loadMenu(path string) (*navigation.Config, error) {
	if path == "" {
		return navigation.Default(), nil
	}

	menu, err := navigation.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if menu.Len() == 0 {
		return nil, fmt.Errorf("menu file %s defines no entries", path)
	}

	logger.Info("Loaded menu configuration", map[string]interface{}{
		"file":    path,
		"entries": menu.Len(),
	})
	return menu, nil
}

package main

import (
	"log"
	"net/http"
	"os"

	_ "accessibleos/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"accessibleos/internal/cache"
	"accessibleos/internal/config"
	"accessibleos/internal/db"
	"accessibleos/internal/handler"
	"accessibleos/internal/model"
	"accessibleos/internal/repository"
	"accessibleos/internal/router"
	"accessibleos/internal/service"
)

// @title AccessibleOS Task API
// @version 1.0
// @description Task management API with accessibility settings, demo data lifecycle and token-based authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.Open(cfg.DatabaseDSN, cfg.UseInMemory)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.TaskCategoryAssignment{},
			&model.Task{},
			&model.TaskCategory{},
			&model.Notification{},
			&model.GameProgress{},
			&model.AccessibilitySettings{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.TaskCategory{},
		&model.TaskCategoryAssignment{},
		&model.AccessibilitySettings{},
		&model.GameProgress{},
		&model.Notification{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	settingsRepo := repository.NewSettingsRepository(gormDB)

	// Initialize services
	taskService := service.NewTaskService(taskRepo)
	userService := service.NewUserService(userRepo, taskRepo, settingsRepo, cacheClient, cfg.DemoSeedEnabled, cfg.DemoResetEnabled)
	accessibilityService := service.NewAccessibilityService(settingsRepo, cacheClient)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService, cfg.AuthStub)
	taskHandler := handler.NewTaskHandler(taskService, userService, cfg.AuthStub)
	categoryHandler := handler.NewCategoryHandler(taskService, userService, cfg.AuthStub)
	accessibilityHandler := handler.NewAccessibilityHandler(accessibilityService, userService, cfg.AuthStub)
	adminHandler := handler.NewAdminHandler(userService)

	// Register routes
	router.Register(
		e,
		cfg,
		userHandler,
		taskHandler,
		categoryHandler,
		accessibilityHandler,
		adminHandler,
	)

	if cfg.AuthStub {
		log.Println("AUTH_STUB enabled: requests resolve to demo identities without token verification")
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

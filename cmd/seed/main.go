package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"accessibleos/internal/cache"
	"accessibleos/internal/config"
	"accessibleos/internal/db"
	"accessibleos/internal/model"
	"accessibleos/internal/repository"
	"accessibleos/internal/service"
)

func main() {
	identities := flag.String("identities", "demo-user", "comma-separated demo external ids to sync")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Open(cfg.DatabaseDSN, cfg.UseInMemory)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.TaskCategory{},
		&model.TaskCategoryAssignment{},
		&model.AccessibilitySettings{},
		&model.GameProgress{},
		&model.Notification{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	settingsRepo := repository.NewSettingsRepository(gormDB)

	// Force seeding on regardless of environment: running this command is the
	// explicit opt-in.
	users := service.NewUserService(userRepo, taskRepo, settingsRepo, cacheClient, true, cfg.DemoResetEnabled)

	ctx := context.Background()
	seeded := 0
	for _, externalID := range strings.Split(*identities, ",") {
		externalID = strings.TrimSpace(externalID)
		if externalID == "" {
			continue
		}
		if !strings.HasPrefix(externalID, "demo") {
			log.Printf("Skipping %q: demo identities must carry the demo prefix", externalID)
			continue
		}

		user, err := users.SyncUser(ctx, service.SyncUserInput{
			ExternalID:  externalID,
			Email:       "demo@accessibleos.com",
			DisplayName: "Demo User",
		})
		if err != nil {
			log.Fatalf("Failed to sync %q: %v", externalID, err)
		}
		log.Printf("Synced %q as user %s", externalID, user.ID)
		seeded++
	}

	log.Printf("Seed completed successfully! Identities processed: %d", seeded)
}

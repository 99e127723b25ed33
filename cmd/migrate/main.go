package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/staffhub/backend/internal/infrastructure/auth"
	"github.com/staffhub/backend/internal/infrastructure/config"
	"github.com/staffhub/backend/internal/infrastructure/logger"
	"github.com/staffhub/backend/internal/infrastructure/persistence"
	"github.com/staffhub/backend/internal/infrastructure/persistence/models"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.Database.URL == "" {
		log.Fatal("Database URL is not configured")
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))
	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	switch command {
	case "up":
		if err := migrateUp(db); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema migrated")
	case "seed":
		if err := seedAdmins(db, cfg, log); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		log.Info("Administrator accounts seeded")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// migrateUp creates or updates the schema from the model definitions.
func migrateUp(db *gorm.DB) error {
	return db.AutoMigrate(models.AllModels()...)
}

// seedAdmins records the provisioned administrator accounts as admin users
// so they show up in the directory before their first login.
func seedAdmins(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	registry := auth.NewAdminAccountRegistry(cfg.Admin, log)
	userRepo := persistence.NewGormUserRepository(persistence.NewStoreWithDB(db))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, account := range registry.Accounts() {
		user := &models.User{
			OpenID:       account.OpenID,
			Name:         account.Name,
			Email:        account.Email,
			LoginMethod:  "password",
			Role:         models.UserRoleAdmin,
			LastSignedIn: time.Now(),
		}
		if err := userRepo.Upsert(ctx, user); err != nil {
			return fmt.Errorf("seed %s: %w", account.Email, err)
		}
		log.Info("Seeded admin account",
			zap.String("email", account.Email),
			zap.String("openId", account.OpenID),
		)
	}
	return nil
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up    Create or update the database schema")
	fmt.Println("  seed  Record the provisioned administrator accounts")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -log-level  Log level (debug, info, warn, error)")
}

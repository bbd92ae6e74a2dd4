// Command seed provisions the initial admin account. Any previous account
// under the same email is removed first, so the command is safe to re-run.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/internal/config"
	pgInfra "github.com/taskhive/backend/internal/infrastructure/postgres"
	"github.com/taskhive/backend/pkg/logger"
	"github.com/taskhive/backend/repository/postgres"
	authUC "github.com/taskhive/backend/usecase/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: "console",
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pool.Close()

	email := envOr("SEED_ADMIN_EMAIL", "admin@gmail.com")
	password := envOr("SEED_ADMIN_PASSWORD", "123456")

	hash, err := authUC.HashPassword(password)
	if err != nil {
		zapLogger.Fatal("password hashing failed", zap.Error(err))
	}

	users := postgres.NewUserRepository(pool)

	if err := users.DeleteByEmail(ctx, email); err != nil {
		zapLogger.Fatal("failed to remove previous admin", zap.Error(err))
	}

	admin, err := users.Create(ctx, &domain.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		zapLogger.Fatal("failed to create admin", zap.Error(err))
	}

	zapLogger.Info("admin created", zap.String("id", admin.ID), zap.String("email", admin.Email))
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

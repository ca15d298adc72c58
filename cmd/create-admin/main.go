// Package main bootstraps the first administrator account. The email must
// also appear in ADMIN_EMAILS for the account to be able to log in.
package main

import (
	"context"
	"flag"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cyberxltr/admin-platform/config"
	"github.com/cyberxltr/admin-platform/pkg/database"
	"github.com/cyberxltr/admin-platform/pkg/utils"
)

func main() {
	var (
		email     = flag.String("email", "", "administrator email")
		password  = flag.String("password", "", "administrator password")
		firstName = flag.String("first-name", "Admin", "first name")
		lastName  = flag.String("last-name", "User", "last name")
	)
	flag.Parse()

	logger := newLogger()
	defer logger.Sync()

	if *email == "" || *password == "" {
		logger.Fatal("email and password are required")
	}
	if len(*password) < utils.MinPasswordLength {
		logger.Fatal("password too short", zap.Int("min_length", utils.MinPasswordLength))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	normalized := strings.ToLower(strings.TrimSpace(*email))
	hash, err := utils.HashPassword(*password)
	if err != nil {
		logger.Fatal("hash password", zap.Error(err))
	}

	// Re-running against an existing email resets the password and
	// reactivates the account.
	const q = `INSERT INTO users (email, encrypted_password, first_name, last_name, global_role, is_active, email_verified)
		VALUES ($1, $2, $3, $4, 'admin', TRUE, TRUE)
		ON CONFLICT (email) DO UPDATE SET
			encrypted_password = EXCLUDED.encrypted_password,
			is_active = TRUE,
			updated_at = NOW()
		RETURNING id`
	var id string
	if err := pool.QueryRow(ctx, q, normalized, hash, *firstName, *lastName).Scan(&id); err != nil {
		logger.Fatal("create admin", zap.Error(err))
	}

	logger.Info("admin account ready", zap.String("id", id), zap.String("email", normalized))
	if !contains(cfg.Admin.Emails, normalized) {
		logger.Warn("email is not in ADMIN_EMAILS; add it or login will be rejected",
			zap.String("email", normalized))
	}
}

func contains(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}

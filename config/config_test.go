package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", validSecret)
	t.Setenv("ADMIN_EMAILS", "admin@example.com")
}

func TestLoadDefaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8001", cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.ExpireHours)
	assert.Equal(t, 168, cfg.JWT.RefreshExpireHours)
	assert.Equal(t, "5433", cfg.Database.Port)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "too-short")
	t.Setenv("ADMIN_EMAILS", "admin@example.com")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("ADMIN_EMAILS", "admin@example.com")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresAdminEmails(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", validSecret)
	t.Setenv("ADMIN_EMAILS", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_EMAILS")
}

func TestAdminEmailNormalization(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", validSecret)
	t.Setenv("ADMIN_EMAILS", " Admin@Example.COM , ops@example.com, admin@example.com ,, ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.Admin.Emails)
}

func TestDSNFromURL(t *testing.T) {
	setValidEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/adm?sslmode=require")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/adm?sslmode=require", cfg.Database.DSN())
}

func TestDSNFromComponents(t *testing.T) {
	setValidEnv(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "dbhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "admin_platform")
	t.Setenv("DB_SSLMODE", "disable")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://svc:pw@dbhost:5432/admin_platform?sslmode=disable", cfg.Database.DSN())
}

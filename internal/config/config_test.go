package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/storefront")
	t.Setenv("JWT_SECRET", longSecret)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.True(t, cfg.RowLevelSecurity)
	assert.Equal(t, AuthProviderLocal, cfg.AuthProvider)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "2349014964843", cfg.WhatsAppPhone)
	assert.Equal(t, "₦", cfg.CurrencySymbol)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_DSN", "file:store.db")
	t.Setenv("DATABASE_ROW_LEVEL_SECURITY", "false")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://shop.example.com, https://admin.example.com,")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.AppPort)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.False(t, cfg.RowLevelSecurity)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CURRENCY_SYMBOL=$\n"), 0o600))
	// godotenv never overrides variables that are already set; make sure this one is not.
	t.Setenv("CURRENCY_SYMBOL", "")
	os.Unsetenv("CURRENCY_SYMBOL")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "$", cfg.CurrencySymbol)

	_, err = Load(filepath.Join(dir, "missing.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DatabaseDriver: DriverPostgres,
			DatabaseDSN:    "postgres://localhost/storefront",
			AuthProvider:   AuthProviderLocal,
			JWTSecret:      longSecret,
			WhatsAppPhone:  "2349014964843",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing dsn", mutate: func(c *Config) { c.DatabaseDSN = "" }, wantErr: "DATABASE_DSN"},
		{name: "memory needs no dsn", mutate: func(c *Config) {
			c.DatabaseDriver, c.DatabaseDSN = DriverMemory, ""
			c.AdminEmail, c.AdminPassword = "owner@example.com", "password123"
		}},
		{name: "memory needs a seeded admin", mutate: func(c *Config) { c.DatabaseDriver = DriverMemory }, wantErr: "ADMIN_EMAIL"},
		{name: "unknown driver", mutate: func(c *Config) { c.DatabaseDriver = "mysql" }, wantErr: "unsupported DATABASE_DRIVER"},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "short secret", mutate: func(c *Config) { c.JWTSecret = "short" }, wantErr: "at least 32 bytes"},
		{name: "gotrue needs url and key", mutate: func(c *Config) { c.AuthProvider = AuthProviderGoTrue }, wantErr: "AUTH_URL, AUTH_API_KEY"},
		{name: "gotrue ignores secret", mutate: func(c *Config) {
			c.AuthProvider, c.JWTSecret = AuthProviderGoTrue, ""
			c.AuthURL, c.AuthAPIKey = "https://auth.example.com", "key"
		}},
		{name: "half an admin", mutate: func(c *Config) { c.AdminEmail = "owner@example.com" }, wantErr: "set together"},
		{name: "unknown provider", mutate: func(c *Config) { c.AuthProvider = "ldap" }, wantErr: "unsupported AUTH_PROVIDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

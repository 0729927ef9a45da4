package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Identity providers.
const (
	AuthProviderLocal  = "local"
	AuthProviderGoTrue = "gotrue"
)

// Config holds every setting the service reads from the environment.
type Config struct {
	ServiceName string
	AppPort     string
	LogLevel    string

	DatabaseDriver   string
	DatabaseDSN      string
	RowLevelSecurity bool

	AuthProvider  string
	JWTSecret     string
	TokenTTL      time.Duration
	AuthURL       string
	AuthAPIKey    string
	AdminEmail    string
	AdminPassword string

	RabbitMQURL string

	WhatsAppPhone  string
	CurrencySymbol string
	CORSOrigins    []string
}

// Load reads configuration from the environment. Variables in envFile are
// loaded first when the file exists; variables already set win.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("SERVICE_NAME", "storefront")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("DATABASE_ROW_LEVEL_SECURITY", true)
	v.SetDefault("AUTH_PROVIDER", AuthProviderLocal)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", time.Hour)
	v.SetDefault("AUTH_URL", "")
	v.SetDefault("AUTH_API_KEY", "")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("WHATSAPP_PHONE", "2349014964843")
	v.SetDefault("CURRENCY_SYMBOL", "₦")
	v.SetDefault("CORS_ORIGINS", "*")
	v.AutomaticEnv()

	port := v.GetString("APP_PORT")
	if port != "" && !strings.Contains(port, ":") {
		port = ":" + port
	}

	return &Config{
		ServiceName:      v.GetString("SERVICE_NAME"),
		AppPort:          port,
		LogLevel:         v.GetString("LOG_LEVEL"),
		DatabaseDriver:   strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		RowLevelSecurity: v.GetBool("DATABASE_ROW_LEVEL_SECURITY"),
		AuthProvider:     strings.ToLower(v.GetString("AUTH_PROVIDER")),
		JWTSecret:        v.GetString("JWT_SECRET"),
		TokenTTL:         v.GetDuration("TOKEN_TTL"),
		AuthURL:          v.GetString("AUTH_URL"),
		AuthAPIKey:       v.GetString("AUTH_API_KEY"),
		AdminEmail:       v.GetString("ADMIN_EMAIL"),
		AdminPassword:    v.GetString("ADMIN_PASSWORD"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		WhatsAppPhone:    v.GetString("WHATSAPP_PHONE"),
		CurrencySymbol:   v.GetString("CURRENCY_SYMBOL"),
		CORSOrigins:      splitList(v.GetString("CORS_ORIGINS")),
	}, nil
}

// ValidateDatabase reports problems with the database settings only.
func (c *Config) ValidateDatabase() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("missing required config: DATABASE_DSN")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want postgres, sqlite or memory)", c.DatabaseDriver)
	}
	return nil
}

// Validate reports missing or inconsistent settings needed to serve.
func (c *Config) Validate() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}

	var missing []string
	switch c.AuthProvider {
	case AuthProviderLocal:
		if c.JWTSecret == "" {
			missing = append(missing, "JWT_SECRET")
		} else if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 bytes")
		}
		if c.DatabaseDriver == DriverMemory && (c.AdminEmail == "" || c.AdminPassword == "") {
			missing = append(missing, "ADMIN_EMAIL", "ADMIN_PASSWORD")
		}
	case AuthProviderGoTrue:
		if c.AuthURL == "" {
			missing = append(missing, "AUTH_URL")
		}
		if c.AuthAPIKey == "" {
			missing = append(missing, "AUTH_API_KEY")
		}
	default:
		return fmt.Errorf("unsupported AUTH_PROVIDER %q (want local or gotrue)", c.AuthProvider)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if c.WhatsAppPhone == "" {
		return fmt.Errorf("missing required config: WHATSAPP_PHONE")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package database

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema up to date. PostgreSQL gets the embedded SQL
// migrations, including the row-level policies; SQLite has no policies and
// is auto-migrated from the row structs.
func Migrate(ctx context.Context, db *gorm.DB, driver string) error {
	switch driver {
	case config.DriverPostgres:
		return migratePostgres(ctx, db)
	case config.DriverSQLite:
		if err := db.WithContext(ctx).AutoMigrate(&repositories.ProductRow{}, &repositories.MessageRow{}, &models.AdminUser{}); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		return nil
	}
	return fmt.Errorf("driver %q has no schema to migrate", driver)
}

func migratePostgres(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{logger: zerolog.Ctx(ctx)})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

type gooseLogger struct {
	logger *zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Info().Str("component", "goose").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Fatal().Str("component", "goose").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

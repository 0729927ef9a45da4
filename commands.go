package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logging"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

const shutdownTimeout = 10 * time.Second

func loadConfig(cmd *cli.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logging.NewLogger(cfg), nil
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx = logger.WithContext(ctx)

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.mq != nil {
		notifier := services.NewMessageNotifier(logger)
		err := a.mq.Consume(ctx, "message.*", func(e rabbitmq.Event) error {
			return notifier.Handle(e.RoutingKey, e.Body)
		})
		if err != nil {
			logger.Warn().Err(err).Msg("message notifications disabled")
		}
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.AppPort).Str("driver", cfg.DatabaseDriver).Str("auth", cfg.AuthProvider).Msg("starting server")
		errCh <- a.http.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	if err := a.http.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

func migrateAction(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateDatabase(); err != nil {
		return err
	}
	if cfg.DatabaseDriver == config.DriverMemory {
		return errors.New("the memory driver has no schema to migrate")
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(logger.WithContext(ctx), db, cfg.DatabaseDriver); err != nil {
		return err
	}
	logger.Info().Str("driver", cfg.DatabaseDriver).Msg("schema is up to date")
	return nil
}

func adminCreateAction(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateDatabase(); err != nil {
		return err
	}
	if cfg.DatabaseDriver == config.DriverMemory {
		return errors.New("the memory driver does not persist admins; set ADMIN_EMAIL and ADMIN_PASSWORD instead")
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// Registration never signs tokens, so no secret is needed here.
	provider := services.NewLocalIdentityProvider(repositories.NewGORMAdminRepository(db), "", 0)
	admin, err := provider.RegisterAdmin(logger.WithContext(ctx), cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	fmt.Fprintf(writer(cmd), "created admin %s (%s)\n", admin.Email, admin.ID)
	return nil
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

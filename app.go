package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/repositories"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

// application holds the wired service and the resources it owns.
type application struct {
	http *fiber.App
	db   *gorm.DB
	mq   *rabbitmq.Client
}

// buildApp wires stores, identity provider, event publisher and the HTTP app
// for cfg. Admin credentials in cfg are seeded for the local provider.
func buildApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*application, error) {
	a := &application{}

	var (
		productRepo repositories.ProductRepository
		messageRepo repositories.MessageRepository
		adminRepo   repositories.AdminRepository
		ping        func(context.Context) error
	)
	switch cfg.DatabaseDriver {
	case config.DriverMemory:
		logger.Warn().Msg("using in-memory store; data is lost on restart")
		productRepo = repositories.NewMockProductRepository()
		messageRepo = repositories.NewMockMessageRepository()
		adminRepo = repositories.NewMockAdminRepository()
	default:
		db, err := database.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		a.db = db
		rowLevelSecurity := cfg.RowLevelSecurity && cfg.DatabaseDriver == config.DriverPostgres
		productRepo = repositories.NewGORMProductRepository(db, rowLevelSecurity)
		messageRepo = repositories.NewGORMMessageRepository(db, rowLevelSecurity)
		adminRepo = repositories.NewGORMAdminRepository(db)
		ping = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			// Events are best effort; the API works without a broker.
			logger.Warn().Err(err).Msg("event publishing disabled")
		} else {
			a.mq = mq
			events = mq
		}
	}

	var identity services.IdentityProvider
	switch cfg.AuthProvider {
	case config.AuthProviderGoTrue:
		identity = services.NewGoTrueIdentityProvider(cfg.AuthURL, cfg.AuthAPIKey, nil)
	default:
		local := services.NewLocalIdentityProvider(adminRepo, cfg.JWTSecret, cfg.TokenTTL)
		if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
			created, err := local.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
			switch {
			case errors.Is(err, repositories.ErrStoreUnavailable):
				logger.Warn().Err(err).Msg("admin not seeded; run `storefront migrate` first")
			case err != nil:
				a.Close()
				return nil, fmt.Errorf("failed to seed admin %s: %w", cfg.AdminEmail, err)
			case created:
				logger.Info().Str("email", cfg.AdminEmail).Msg("seeded admin account")
			}
		}
		identity = local
	}

	a.http = server.New(server.Deps{
		Logger:      logger,
		Identity:    identity,
		Products:    services.NewProductService(productRepo, events),
		Messages:    services.NewMessageService(messageRepo, events),
		Checkout:    services.NewCheckoutService(productRepo, events, cfg.WhatsAppPhone, cfg.CurrencySymbol),
		CORSOrigins: cfg.CORSOrigins,
		Ping:        ping,
	})
	return a, nil
}

// Close releases the broker connection and database pool.
func (a *application) Close() {
	if a.mq != nil {
		a.mq.Close()
	}
	if a.db != nil {
		database.Close(a.db)
	}
}

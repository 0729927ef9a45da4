package server

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/services"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Logger      zerolog.Logger
	Identity    services.IdentityProvider
	Products    *services.ProductService
	Messages    *services.MessageService
	Checkout    *services.CheckoutService
	CORSOrigins []string
	// Ping reports whether the store is reachable. Optional.
	Ping func(ctx context.Context) error
}

// New builds the Fiber app with middleware and all routes registered.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "storefront",
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	origins := "*"
	if len(d.CORSOrigins) > 0 {
		origins = strings.Join(d.CORSOrigins, ",")
	}

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(d.Logger))
	app.Use(middleware.Metrics())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	health := healthHandler(d.Ping)
	metrics := adaptor.HTTPHandler(promhttp.Handler())
	app.Get("/health", health)
	app.Get("/metrics", metrics)

	api := app.Group("/api")
	api.Get("/health", health)
	api.Get("/metrics", metrics)

	auth := middleware.AuthRequired(d.Identity)
	handlers.NewAuthHandler(d.Identity).RegisterRoutes(api, auth)
	handlers.NewCheckoutHandler(d.Checkout).RegisterRoutes(api)
	handlers.NewProductHandler(d.Products).RegisterRoutes(api, auth)
	handlers.NewMessageHandler(d.Messages).RegisterRoutes(api, auth)

	return app
}

func healthHandler(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now().Format(time.RFC3339)
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				zerolog.Ctx(c.UserContext()).Warn().Err(err).Msg("store ping failed")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unavailable",
					"time":   now,
				})
			}
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   now,
		})
	}
}

// errorHandler renders errors that escaped the handlers, including unknown
// routes and recovered panics, in the API's error body shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("unhandled error")
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}

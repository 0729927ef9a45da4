package handlers

import (
	"errors"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AuthHandler handles HTTP requests for admin authentication.
type AuthHandler struct {
	provider services.IdentityProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(provider services.IdentityProvider) *AuthHandler {
	return &AuthHandler{provider: provider}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/me", auth, h.HandleMe)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin signs an admin in and returns the session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	session, err := h.provider.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			zerolog.Ctx(c.UserContext()).Info().Str("email", req.Email).Msg("login rejected")
			return errorResponse(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("login failed")
		return errorResponse(c, fiber.StatusInternalServerError, "Authentication service unavailable")
	}
	return c.JSON(session)
}

// HandleMe returns the identity behind the bearer token.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return errorResponse(c, fiber.StatusUnauthorized, msgUnauthorized)
	}
	return c.JSON(identity)
}

package middleware

import (
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Locals keys set by AuthRequired.
const (
	LocalsIdentity = "identity"
	LocalsToken    = "access_token"
)

// AuthRequired is a Fiber middleware that resolves the bearer token to an
// identity through the provider. Every request is checked again; nothing is cached.
func AuthRequired(provider services.IdentityProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized - No token provided",
			})
		}

		// Expected format: "Bearer <token>"
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized - No token provided",
			})
		}
		token = strings.TrimSpace(token)

		identity, err := provider.GetUser(c.UserContext(), token)
		if err != nil || identity == nil {
			zerolog.Ctx(c.UserContext()).Debug().Err(err).Msg("token rejected")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized - Invalid token",
			})
		}

		c.Locals(LocalsIdentity, identity)
		c.Locals(LocalsToken, token)
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthRequired, or nil.
func IdentityFrom(c *fiber.Ctx) *models.Identity {
	identity, _ := c.Locals(LocalsIdentity).(*models.Identity)
	return identity
}

// CredentialFrom builds the store credential for the current request.
// Requests that did not pass AuthRequired get the anonymous credential.
func CredentialFrom(c *fiber.Ctx) repositories.Credential {
	token, _ := c.Locals(LocalsToken).(string)
	identity := IdentityFrom(c)
	if token == "" || identity == nil {
		return repositories.Credential{}
	}
	return repositories.Credential{
		Token:   token,
		Subject: identity.ID,
		Email:   identity.Email,
		Role:    identity.Role,
	}
}

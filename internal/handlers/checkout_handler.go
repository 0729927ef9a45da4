package handlers

import (
	"errors"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// CheckoutHandler serves WhatsApp order links.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers the checkout routes.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products/:id/whatsapp", h.HandleWhatsAppOrder)
}

// HandleWhatsAppOrder builds the WhatsApp link for ordering a product.
func (h *CheckoutHandler) HandleWhatsAppOrder(c *fiber.Ctx) error {
	var order models.OrderRequest
	if err := c.QueryParser(&order); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := validate.Struct(order); err != nil {
		return validationFailed(c, err)
	}

	link, err := h.service.WhatsAppOrder(c.UserContext(), c.Params("id"), order)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return errorResponse(c, fiber.StatusNotFound, "Product not found")
		}
		zerolog.Ctx(c.UserContext()).Error().Err(err).Str("product_id", c.Params("id")).Msg("whatsapp order failed")
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(link)
}

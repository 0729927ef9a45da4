package handlers

import (
	"errors"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// MessageHandler handles the contact form and the admin inbox.
type MessageHandler struct {
	service *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// RegisterRoutes registers the message routes. Only submitting is public.
func (h *MessageHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	messageRoutes := router.Group("/messages")
	messageRoutes.Get("/", auth, h.HandleGetMessages)
	messageRoutes.Post("/", h.HandleCreateMessage)
	messageRoutes.Delete("/:id", auth, h.HandleDeleteMessage)
}

// HandleGetMessages lists messages, newest first.
func (h *MessageHandler) HandleGetMessages(c *fiber.Ctx) error {
	messages, err := h.service.ListMessages(c.UserContext(), middleware.CredentialFrom(c))
	if err != nil {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("list messages failed")
		if errors.Is(err, repositories.ErrPermissionDenied) {
			return errorResponse(c, fiber.StatusUnauthorized, msgUnauthorized)
		}
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(messages)
}

// HandleCreateMessage stores a contact form submission.
func (h *MessageHandler) HandleCreateMessage(c *fiber.Ctx) error {
	var input models.MessageInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	if err := validate.Struct(input); err != nil {
		return validationFailed(c, err)
	}

	message, err := h.service.CreateMessage(c.UserContext(), input)
	if err != nil {
		zerolog.Ctx(c.UserContext()).Warn().Err(err).Msg("create message failed")
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// HandleDeleteMessage deletes a message.
func (h *MessageHandler) HandleDeleteMessage(c *fiber.Ctx) error {
	if err := h.service.DeleteMessage(c.UserContext(), middleware.CredentialFrom(c), c.Params("id")); err != nil {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Str("message_id", c.Params("id")).Msg("delete message failed")
		if errors.Is(err, repositories.ErrPermissionDenied) {
			return errorResponse(c, fiber.StatusUnauthorized, msgUnauthorized)
		}
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

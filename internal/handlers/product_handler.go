package handlers

import (
	"errors"
	"slices"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes. Writes go through auth.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", auth, h.HandleCreateProduct)
	productRoutes.Put("/:id", auth, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", auth, h.HandleDeleteProduct)
}

// HandleGetProducts lists products, newest first.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		FeaturedOnly: c.QueryBool("featured", false),
		Category:     c.Query("category"),
	}
	if filter.Category != "" && !slices.Contains(models.Categories, filter.Category) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": map[string]string{"category": categoryMessage()},
		})
	}

	products, err := h.service.ListProducts(c.UserContext(), filter)
	if err != nil {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("list products failed")
		if errors.Is(err, repositories.ErrStoreUnavailable) {
			return errorResponse(c, fiber.StatusServiceUnavailable, msgStoreUnavailable)
		}
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(products)
}

// HandleGetProductByID returns a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Str("product_id", c.Params("id")).Msg("get product failed")
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	if product == nil {
		return errorResponse(c, fiber.StatusNotFound, "Product not found")
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	if err := validate.Struct(input); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), middleware.CredentialFrom(c), input)
	if err != nil {
		zerolog.Ctx(c.UserContext()).Warn().Err(err).Msg("create product failed")
		if errors.Is(err, repositories.ErrPermissionDenied) {
			return errorResponse(c, fiber.StatusUnauthorized, msgUnauthorized)
		}
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	if err := validate.Struct(patch); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), middleware.CredentialFrom(c), c.Params("id"), patch)
	if err != nil {
		zerolog.Ctx(c.UserContext()).Warn().Err(err).Str("product_id", c.Params("id")).Msg("update product failed")
		if errors.Is(err, repositories.ErrPermissionDenied) {
			return errorResponse(c, fiber.StatusUnauthorized, msgUnauthorized)
		}
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product. Deleting a missing product succeeds.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), middleware.CredentialFrom(c), c.Params("id")); err != nil {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Str("product_id", c.Params("id")).Msg("delete product failed")
		if errors.Is(err, repositories.ErrPermissionDenied) {
			return errorResponse(c, fiber.StatusUnauthorized, msgUnauthorized)
		}
		return errorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ErrProductNotFound is returned when an order references an unknown product.
var ErrProductNotFound = errors.New("product not found")

// CheckoutService turns an order request into a pre-filled WhatsApp chat.
// Orders are not stored; the shop confirms them over WhatsApp.
type CheckoutService struct {
	productRepo    repositories.ProductRepository
	events         EventPublisher
	phone          string
	currencySymbol string
}

// NewCheckoutService creates a new CheckoutService. phone is the shop's
// WhatsApp number in international format without "+".
func NewCheckoutService(productRepo repositories.ProductRepository, events EventPublisher, phone, currencySymbol string) *CheckoutService {
	return &CheckoutService{
		productRepo:    productRepo,
		events:         events,
		phone:          strings.TrimPrefix(phone, "+"),
		currencySymbol: currencySymbol,
	}
}

// WhatsAppOrder builds the WhatsApp link for ordering a product.
func (s *CheckoutService) WhatsAppOrder(ctx context.Context, productID string, order models.OrderRequest) (*models.WhatsAppOrder, error) {
	if order.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}

	total, err := orderTotal(product.Price, order.Quantity)
	if err != nil {
		return nil, err
	}

	message := s.orderMessage(product, order)
	link := fmt.Sprintf("https://wa.me/%s?text=%s", s.phone, encodeURIComponent(message))

	publishEvent(ctx, s.events, EventOrderRequested, map[string]any{
		"productId":    product.ID,
		"productName":  product.Name,
		"customerName": order.CustomerName,
		"quantity":     order.Quantity,
		"total":        total,
	})

	return &models.WhatsAppOrder{
		ProductID: product.ID,
		Message:   message,
		Total:     total,
		URL:       link,
	}, nil
}

func (s *CheckoutService) orderMessage(product *models.Product, order models.OrderRequest) string {
	var b strings.Builder
	b.WriteString("Hi! I'm interested in ordering:\n\n")
	fmt.Fprintf(&b, "*Product:* %s\n", product.Name)
	fmt.Fprintf(&b, "*Price:* %s%s\n", s.currencySymbol, DisplayPrice(product.Price))
	fmt.Fprintf(&b, "*Quantity:* %d\n", order.Quantity)
	fmt.Fprintf(&b, "*Customer Name:* %s\n", strings.TrimSpace(order.CustomerName))
	if notes := strings.TrimSpace(order.Notes); notes != "" {
		fmt.Fprintf(&b, "*Notes:* %s\n", notes)
	}
	b.WriteString("\nPlease confirm availability and provide next steps for purchase.")
	return b.String()
}

// orderTotal multiplies a decimal price by quantity without float rounding.
func orderTotal(price string, quantity int) (string, error) {
	r, ok := new(big.Rat).SetString(price)
	if !ok {
		return "", fmt.Errorf("invalid stored price %q", price)
	}
	r.Mul(r, new(big.Rat).SetInt64(int64(quantity)))
	return r.FloatString(2), nil
}

// encodeURIComponent escapes s for a query value, using %20 for spaces.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

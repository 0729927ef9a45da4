package models

// OrderRequest describes what a shopper wants to order over WhatsApp.
type OrderRequest struct {
	CustomerName string `json:"customerName" query:"customerName" validate:"required"`
	Quantity     int    `json:"quantity" query:"quantity" validate:"required,min=1"`
	Notes        string `json:"notes" query:"notes"`
}

// WhatsAppOrder is a pre-filled WhatsApp chat link for an order.
type WhatsAppOrder struct {
	ProductID string `json:"productId"`
	Message   string `json:"message"`
	Total     string `json:"total"`
	URL       string `json:"url"`
}

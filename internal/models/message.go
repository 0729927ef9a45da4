package models

import "time"

// Message is a customer message submitted through the contact form.
type Message struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Email        string    `json:"email"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MessageInput is the contact form payload.
type MessageInput struct {
	CustomerName string `json:"customerName" validate:"required,notblank"`
	Email        string `json:"email" validate:"required,notblank"`
	Message      string `json:"message" validate:"required,notblank"`
}

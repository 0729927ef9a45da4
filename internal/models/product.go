package models

import "time"

// Product categories accepted by the catalog.
const (
	CategoryClothing    = "Clothing"
	CategoryAccessories = "Accessories"
	CategoryFootwear    = "Footwear"
	CategoryOuterwear   = "Outerwear"
)

// Categories lists every category a product may belong to.
var Categories = []string{CategoryClothing, CategoryAccessories, CategoryFootwear, CategoryOuterwear}

// Product represents a product in the store.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Images      []string  `json:"images"`
	Category    string    `json:"category"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductInput is the payload accepted when a product is created.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,notblank"`
	Description string   `json:"description" validate:"required,notblank"`
	Price       string   `json:"price" validate:"required,price"`
	ImageURL    string   `json:"imageUrl" validate:"required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
	Category    string   `json:"category" validate:"required,category"`
	IsFeatured  bool     `json:"isFeatured"`
}

// ProductPatch carries a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string  `json:"name" validate:"omitempty,notblank"`
	Description *string  `json:"description" validate:"omitempty,notblank"`
	Price       *string  `json:"price" validate:"omitempty,price"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,min=1"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
	Category    *string  `json:"category" validate:"omitempty,category"`
	IsFeatured  *bool    `json:"isFeatured"`
}

// Empty reports whether the patch sets no field at all.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.ImageURL == nil &&
		p.Images == nil && p.Category == nil && p.IsFeatured == nil
}

package repositories

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/models"
)

// FieldMapping pairs an application field name with the store column backing it.
type FieldMapping struct {
	Field  string
	Column string
}

// ProductFields maps every Product field to its column in the products table.
var ProductFields = []FieldMapping{
	{Field: "id", Column: "id"},
	{Field: "name", Column: "name"},
	{Field: "description", Column: "description"},
	{Field: "price", Column: "price"},
	{Field: "imageUrl", Column: "image_url"},
	{Field: "images", Column: "images"},
	{Field: "category", Column: "category"},
	{Field: "isFeatured", Column: "is_featured"},
	{Field: "createdAt", Column: "created_at"},
}

// MessageFields maps every Message field to its column in the messages table.
var MessageFields = []FieldMapping{
	{Field: "id", Column: "id"},
	{Field: "customerName", Column: "customer_name"},
	{Field: "email", Column: "email"},
	{Field: "message", Column: "message"},
	{Field: "createdAt", Column: "created_at"},
}

// ColumnFor returns the column mapped to field.
func ColumnFor(fields []FieldMapping, field string) (string, bool) {
	for _, f := range fields {
		if f.Field == field {
			return f.Column, true
		}
	}
	return "", false
}

// FieldFor returns the application field mapped to column.
func FieldFor(fields []FieldMapping, column string) (string, bool) {
	for _, f := range fields {
		if f.Column == column {
			return f.Field, true
		}
	}
	return "", false
}

func mustColumn(fields []FieldMapping, field string) string {
	col, ok := ColumnFor(fields, field)
	if !ok {
		panic(fmt.Sprintf("repositories: no column mapped for field %q", field))
	}
	return col
}

// StringList is a list of strings stored as a JSON array.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]string)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(l))
	default:
		return fmt.Errorf("unsupported images value of type %T", src)
	}
}

// ProductRow is the store-native shape of a product.
type ProductRow struct {
	ID          string     `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name        string     `gorm:"column:name;not null"`
	Description string     `gorm:"column:description;not null"`
	Price       string     `gorm:"column:price;type:text;not null"`
	ImageURL    string     `gorm:"column:image_url;not null"`
	Images      StringList `gorm:"column:images;type:text"`
	Category    string     `gorm:"column:category;not null"`
	IsFeatured  bool       `gorm:"column:is_featured;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime;index"`
}

// TableName implements gorm's tabler interface.
func (ProductRow) TableName() string { return "products" }

// MessageRow is the store-native shape of a contact message.
type MessageRow struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	CustomerName string    `gorm:"column:customer_name;not null"`
	Email        string    `gorm:"column:email;not null"`
	Message      string    `gorm:"column:message;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime;index"`
}

// TableName implements gorm's tabler interface.
func (MessageRow) TableName() string { return "messages" }

// ProductFromRow converts a store row into the application shape.
func ProductFromRow(r ProductRow) models.Product {
	return models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Images:      []string(r.Images),
		Category:    r.Category,
		IsFeatured:  r.IsFeatured,
		CreatedAt:   r.CreatedAt,
	}
}

// ProductToRow converts an application product into its store row.
func ProductToRow(p models.Product) ProductRow {
	return ProductRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Images:      StringList(p.Images),
		Category:    p.Category,
		IsFeatured:  p.IsFeatured,
		CreatedAt:   p.CreatedAt,
	}
}

// ProductPatchColumns returns the columns a patch writes, keyed by column name.
// Fields the caller did not set are omitted rather than written as NULL.
func ProductPatchColumns(p models.ProductPatch) map[string]any {
	cols := make(map[string]any)
	if p.Name != nil {
		cols[mustColumn(ProductFields, "name")] = *p.Name
	}
	if p.Description != nil {
		cols[mustColumn(ProductFields, "description")] = *p.Description
	}
	if p.Price != nil {
		cols[mustColumn(ProductFields, "price")] = *p.Price
	}
	if p.ImageURL != nil {
		cols[mustColumn(ProductFields, "imageUrl")] = *p.ImageURL
	}
	if p.Images != nil {
		cols[mustColumn(ProductFields, "images")] = StringList(p.Images)
	}
	if p.Category != nil {
		cols[mustColumn(ProductFields, "category")] = *p.Category
	}
	if p.IsFeatured != nil {
		cols[mustColumn(ProductFields, "isFeatured")] = *p.IsFeatured
	}
	return cols
}

// applyProductPatch merges a patch into an existing product.
func applyProductPatch(p *models.Product, patch models.ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Images != nil {
		p.Images = append([]string{}, patch.Images...)
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.IsFeatured != nil {
		p.IsFeatured = *patch.IsFeatured
	}
}

func productFromInput(in models.ProductInput) models.Product {
	var images []string
	if in.Images != nil {
		images = append([]string{}, in.Images...)
	}
	return models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Images:      images,
		Category:    in.Category,
		IsFeatured:  in.IsFeatured,
	}
}

// MessageFromRow converts a store row into the application shape.
func MessageFromRow(r MessageRow) models.Message {
	return models.Message{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Email:        r.Email,
		Message:      r.Message,
		CreatedAt:    r.CreatedAt,
	}
}

// MessageToRow converts an application message into its store row.
func MessageToRow(m models.Message) MessageRow {
	return MessageRow{
		ID:           m.ID,
		CustomerName: m.CustomerName,
		Email:        m.Email,
		Message:      m.Message,
		CreatedAt:    m.CreatedAt,
	}
}

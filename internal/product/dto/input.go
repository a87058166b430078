package dto

import "github.com/shopspring/decimal"

type VariantInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type CreateProductInput struct {
	Name          string          `json:"name" validate:"min=2" msg:"Name must be at least 2 characters"`
	Slug          string          `json:"slug" validate:"slug" msg:"Invalid slug format"`
	SKU           string          `json:"sku" validate:"min=3" msg:"SKU must be at least 3 characters"`
	Description   string          `json:"description" validate:"min=10" msg:"Description must be at least 10 characters"`
	Price         decimal.Decimal `json:"price" validate:"gt=0" msg:"Price must be a positive number"`
	StockQuantity *int            `json:"stockQuantity" validate:"omitempty,gte=0" msg:"Stock quantity must be non-negative"`
	CategoryID    *string         `json:"categoryId"`
	ImageURL      *string         `json:"imageUrl" validate:"omitempty,url" msg:"Invalid image URL"`
	Variants      []VariantInput  `json:"variants"`
}

// UpdateProductInput is a partial update. A non-nil Variants replaces the
// product's variants; an empty CategoryID detaches the product from its category.
type UpdateProductInput struct {
	ID            string           `json:"-"`
	Name          *string          `json:"name" validate:"omitempty,min=2" msg:"Name must be at least 2 characters"`
	Slug          *string          `json:"slug" validate:"omitempty,slug" msg:"Invalid slug format"`
	SKU           *string          `json:"sku" validate:"omitempty,min=3" msg:"SKU must be at least 3 characters"`
	Description   *string          `json:"description" validate:"omitempty,min=10" msg:"Description must be at least 10 characters"`
	Price         *decimal.Decimal `json:"price" validate:"omitempty,gt=0" msg:"Price must be a positive number"`
	StockQuantity *int             `json:"stockQuantity" validate:"omitempty,gte=0" msg:"Stock quantity must be non-negative"`
	CategoryID    *string          `json:"categoryId"`
	ImageURL      *string          `json:"imageUrl" validate:"omitempty,url" msg:"Invalid image URL"`
	Variants      []VariantInput   `json:"variants"`
}

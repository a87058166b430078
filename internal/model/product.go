package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name          string          `db:"name" json:"name"`
	Slug          string          `db:"slug" json:"slug"`
	SKU           string          `db:"sku" json:"sku"`
	Description   string          `db:"description" json:"description"`
	Price         decimal.Decimal `db:"price" json:"price"`
	StockQuantity int             `db:"stock_quantity" json:"stockQuantity"`
	ImageURL      *string         `db:"image_url" json:"imageUrl"`
	CategoryID    *string         `db:"category_id" json:"categoryId"` // Nullable
	Category      *Category       `db:"-" json:"category"`             // Joined data
	Variants      []Variant       `db:"-" json:"variants"`
}

// Variant is a name/value option owned by exactly one product, e.g. Storage -> 128GB.
type Variant struct {
	ProductID string `db:"product_id" json:"-"`
	Position  int    `db:"position" json:"-"`
	Name      string `db:"name" json:"name"`
	Value     string `db:"value" json:"value"`
}

func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

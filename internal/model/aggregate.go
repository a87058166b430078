package model

import "github.com/shopspring/decimal"

const (
	GroupByCategory = "category"
	GroupByPrice    = "price"
)

type CategoryStats struct {
	CategoryID *string             `db:"category_id" json:"categoryId"`
	Count      int                 `db:"count" json:"count"`
	AvgPrice   decimal.NullDecimal `db:"avg_price" json:"avgPrice"`
	StockSum   int64               `db:"stock_sum" json:"stockSum"`
}

// PriceStats fields are null when no product exists.
type PriceStats struct {
	AvgPrice decimal.NullDecimal `db:"avg_price" json:"avgPrice"`
	MinPrice decimal.NullDecimal `db:"min_price" json:"minPrice"`
	MaxPrice decimal.NullDecimal `db:"max_price" json:"maxPrice"`
	StockSum *int64              `db:"stock_sum" json:"stockSum"`
}

type Aggregation struct {
	GroupBy    string          `json:"groupBy"`
	Categories []CategoryStats `json:"categories,omitempty"`
	Price      *PriceStats     `json:"price,omitempty"`
}

package dto

import (
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pagination"
	"github.com/fekuna/omnipos-catalog-service/internal/product/filter"
	"github.com/shopspring/decimal"
)

// ListOptions drives the simple list. Zero Page or Limit takes the default.
type ListOptions struct {
	Page       int              `json:"page" validate:"gte=0" msg:"Page must be a positive integer"`
	Limit      int              `json:"limit" validate:"gte=0" msg:"Limit must be a positive integer"`
	CategoryID string           `json:"categoryId"`
	MinPrice   *decimal.Decimal `json:"minPrice" validate:"omitempty,gt=0" msg:"Minimum price must be a positive number"`
	MaxPrice   *decimal.Decimal `json:"maxPrice" validate:"omitempty,gt=0" msg:"Maximum price must be a positive number"`
}

// ProductQuery is what the repository needs to fetch one page.
type ProductQuery struct {
	Predicate filter.Predicate
	Ordering  filter.Ordering
	Limit     int
	Offset    int
}

type ProductList struct {
	Items      []model.Product       `json:"products"`
	Pagination pagination.Pagination `json:"pagination"`
}

type AggregateInput struct {
	GroupBy string `json:"groupBy"`
	Metric  string `json:"metric" validate:"omitempty,oneof=count avgPrice totalValue" msg:"Metric must be one of: count, avgPrice, totalValue"`
}

// DefaultAggregateInput is used when an RPC caller sends no options.
func DefaultAggregateInput() *AggregateInput {
	return &AggregateInput{GroupBy: model.GroupByCategory, Metric: "count"}
}

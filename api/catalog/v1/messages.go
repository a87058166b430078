package catalogv1

import (
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/filter"
)

// ListProductsRequest is the advanced filter; an empty request takes every default.
type ListProductsRequest struct {
	filter.Input
}

type ListProductsResponse = dto.ProductList

// AggregateProductsRequest falls back to groupBy=category, metric=count for empty fields.
type AggregateProductsRequest struct {
	GroupBy string `json:"groupBy,omitempty"`
	Metric  string `json:"metric,omitempty"`
}

type AggregateProductsResponse = model.Aggregation

// GetProductBySlugRequest returns the first product when Slug is absent.
type GetProductBySlugRequest struct {
	Slug *string `json:"slug,omitempty"`
}

type Product = model.Product

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

type GetCategoryByIDRequest struct {
	ID string `json:"id"`
}

type CategoryDetail = model.CategoryDetail

type HealthCheckRequest struct{}

type HealthCheckResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type EchoRequest struct {
	Message string `json:"message"`
}

type EchoResponse struct {
	Message string `json:"message"`
}

package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/filter"
)

// Repository returns (nil, nil) from the Find methods when no row exists.
type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	// Update writes the product row and, when replaceVariants is set, swaps its variants.
	Update(ctx context.Context, product *model.Product, replaceVariants bool) error
	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (*model.Product, error)
	// FindBySlug and FindFirst load the category and variants as well.
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	FindFirst(ctx context.Context) (*model.Product, error)
	FindAll(ctx context.Context, query dto.ProductQuery) ([]model.Product, error)
	Count(ctx context.Context, pred filter.Predicate) (int, error)

	// Check Slug/SKU uniqueness
	IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error)
	IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error)

	AggregateByCategory(ctx context.Context) ([]model.CategoryStats, error)
	AggregatePrice(ctx context.Context) (*model.PriceStats, error)
}

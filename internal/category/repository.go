package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Repository returns (nil, nil) from the Find methods when no row exists.
type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	FindProducts(ctx context.Context, categoryID string) ([]model.Product, error)
	CountProducts(ctx context.Context, categoryID string) (int, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error
}

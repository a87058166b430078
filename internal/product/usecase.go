package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/filter"
)

type UseCase interface {
	ListProducts(ctx context.Context, opts *dto.ListOptions) (*dto.ProductList, error)
	FilterProducts(ctx context.Context, input *filter.Input) (*dto.ProductList, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetFirstProduct(ctx context.Context) (*model.Product, error)
	AggregateProducts(ctx context.Context, input *dto.AggregateInput) (*model.Aggregation, error)

	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

package handler

import (
	"context"

	catalogv1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

var _ catalogv1.ProductServiceServer = (*GRPCHandler)(nil)

type GRPCHandler struct {
	catalogv1.UnimplementedProductServiceServer
	uc product.UseCase
}

func NewGRPCHandler(uc product.UseCase) *GRPCHandler {
	return &GRPCHandler{uc: uc}
}

func (h *GRPCHandler) List(ctx context.Context, req *catalogv1.ListProductsRequest) (*catalogv1.ListProductsResponse, error) {
	return h.uc.FilterProducts(ctx, &req.Input)
}

func (h *GRPCHandler) Aggregate(ctx context.Context, req *catalogv1.AggregateProductsRequest) (*catalogv1.AggregateProductsResponse, error) {
	input := dto.DefaultAggregateInput()
	if req.GroupBy != "" {
		input.GroupBy = req.GroupBy
	}
	if req.Metric != "" {
		input.Metric = req.Metric
	}
	return h.uc.AggregateProducts(ctx, input)
}

// GetBySlug falls back to the first product when no slug is sent.
func (h *GRPCHandler) GetBySlug(ctx context.Context, req *catalogv1.GetProductBySlugRequest) (*catalogv1.Product, error) {
	if req.Slug == nil {
		return h.uc.GetFirstProduct(ctx)
	}
	return h.uc.GetProductBySlug(ctx, *req.Slug)
}

package handler

import (
	"context"

	catalogv1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
)

var _ catalogv1.CategoryServiceServer = (*GRPCHandler)(nil)

type GRPCHandler struct {
	catalogv1.UnimplementedCategoryServiceServer
	uc category.UseCase
}

func NewGRPCHandler(uc category.UseCase) *GRPCHandler {
	return &GRPCHandler{uc: uc}
}

func (h *GRPCHandler) List(ctx context.Context, _ *catalogv1.ListCategoriesRequest) (*catalogv1.ListCategoriesResponse, error) {
	cats, err := h.uc.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &catalogv1.ListCategoriesResponse{Categories: cats}, nil
}

func (h *GRPCHandler) GetByID(ctx context.Context, req *catalogv1.GetCategoryByIDRequest) (*catalogv1.CategoryDetail, error) {
	return h.uc.GetCategory(ctx, req.ID)
}

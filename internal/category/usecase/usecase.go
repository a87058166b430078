package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/cache"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/events"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgCategoryNotFound    = "Category not found"
	msgCategoryNameTaken   = "Category name must be unique"
	msgCategoryHasProducts = "Cannot delete category with associated products"
)

type categoryUseCase struct {
	repo      category.Repository
	validator *validation.Validator
	publisher events.Publisher
	cache     cache.Cache
	logger    logger.ZapLogger
}

// NewCategoryUseCase takes the product list cache because list items embed
// their category. A nil cache disables invalidation.
func NewCategoryUseCase(repo category.Repository, v *validation.Validator, pub events.Publisher, c cache.Cache, log logger.ZapLogger) category.UseCase {
	if c == nil {
		c = cache.Nop{}
	}
	return &categoryUseCase{
		repo:      repo,
		validator: v,
		publisher: pub,
		cache:     c,
		logger:    log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if err := uc.validator.Struct(input); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict(msgCategoryNameTaken)
	}

	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: time.Now().UTC(),
		},
		Name:        input.Name,
		Description: input.Description,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	uc.publish(ctx, events.CategoryCreated, cat.ID, cat)
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.CategoryDetail, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound(msgCategoryNotFound)
	}

	products, err := uc.repo.FindProducts(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.CategoryDetail{Category: *cat, Products: products}, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	if err := uc.validator.Struct(input); err != nil {
		return nil, err
	}

	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound(msgCategoryNotFound)
	}

	if input.Name != nil && *input.Name != cat.Name {
		existing, err := uc.repo.FindByName(ctx, *input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != cat.ID {
			return nil, apperror.Conflict(msgCategoryNameTaken)
		}
		cat.Name = *input.Name
	}
	if input.Description != nil {
		cat.Description = input.Description
	}

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	uc.invalidateProductCache(ctx)

	uc.publish(ctx, events.CategoryUpdated, cat.ID, cat)
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperror.NotFound(msgCategoryNotFound)
	}

	count, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.PreconditionFailed(msgCategoryHasProducts)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidateProductCache(ctx)

	uc.publish(ctx, events.CategoryDeleted, id, nil)
	return nil
}

func (uc *categoryUseCase) invalidateProductCache(ctx context.Context) {
	if err := uc.cache.DeletePrefix(ctx, cache.ProductListPrefix); err != nil {
		uc.logger.Warn("failed to invalidate product list cache", zap.Error(err))
	}
}

// publish never fails the write that triggered it.
func (uc *categoryUseCase) publish(ctx context.Context, eventType events.Type, id string, payload interface{}) {
	event, err := events.New(eventType, id, payload)
	if err == nil {
		err = uc.publisher.Publish(ctx, event)
	}
	if err != nil {
		uc.logger.Warn("failed to publish category event",
			zap.String("event_type", string(eventType)),
			zap.String("category_id", id),
			zap.Error(err),
		)
	}
}

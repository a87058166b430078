package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/cache"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/events"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pagination"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/filter"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	msgProductNotFound    = "Product not found"
	msgNoProducts         = "No products found"
	msgSlugEmpty          = "Slug must not be empty"
	msgSlugTaken          = "Product slug must be unique"
	msgSKUTaken           = "Product SKU must be unique"
	msgCategoryMissing    = "Category does not exist"
	msgInvalidAggregation = "Invalid aggregation option"
)

type Options struct {
	Cache     cache.Cache
	CacheTTL  time.Duration
	Publisher events.Publisher
}

type productUseCase struct {
	repo       product.Repository
	categories category.Repository
	validator  *validation.Validator
	cache      cache.Cache
	cacheTTL   time.Duration
	publisher  events.Publisher
	logger     logger.ZapLogger
}

// NewProductUseCase falls back to no cache and no events for nil options.
func NewProductUseCase(repo product.Repository, categories category.Repository, v *validation.Validator, opts Options, log logger.ZapLogger) product.UseCase {
	uc := &productUseCase{
		repo:       repo,
		categories: categories,
		validator:  v,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		publisher:  opts.Publisher,
		logger:     log,
	}
	if uc.cache == nil {
		uc.cache = cache.Nop{}
	}
	if uc.publisher == nil {
		uc.publisher = events.NopPublisher{}
	}
	if uc.cacheTTL <= 0 {
		uc.cacheTTL = 5 * time.Minute
	}
	return uc
}

func (uc *productUseCase) ListProducts(ctx context.Context, opts *dto.ListOptions) (*dto.ProductList, error) {
	if opts == nil {
		opts = &dto.ListOptions{}
	}
	if err := uc.validator.Struct(opts); err != nil {
		return nil, err
	}

	page, limit := pagination.Normalize(opts.Page, opts.Limit)
	pred := filter.Predicate{Price: filter.NewPriceRange(opts.MinPrice, opts.MaxPrice)}
	if opts.CategoryID != "" {
		pred.CategoryIDs = []string{opts.CategoryID}
	}

	return uc.list(ctx, pred, filter.DefaultOrdering(), page, limit)
}

func (uc *productUseCase) FilterProducts(ctx context.Context, input *filter.Input) (*dto.ProductList, error) {
	if input == nil {
		input = &filter.Input{}
	}
	if err := uc.validator.Struct(input); err != nil {
		return nil, err
	}

	f := filter.Normalize(*input)
	pred, ordering := filter.Build(f)
	return uc.list(ctx, pred, ordering, f.Page, f.Limit)
}

type listKey struct {
	Predicate filter.Predicate `json:"predicate"`
	Ordering  filter.Ordering  `json:"ordering"`
	Page      int              `json:"page"`
	Limit     int              `json:"limit"`
}

// list serves both list paths so they share paging, caching and the response shape.
func (uc *productUseCase) list(ctx context.Context, pred filter.Predicate, ordering filter.Ordering, page, limit int) (*dto.ProductList, error) {
	// 1. Generate Cache Key
	cacheKey, err := cache.Key(cache.ProductListPrefix, listKey{Predicate: pred, Ordering: ordering, Page: page, Limit: limit})
	if err == nil {
		// 2. Check Cache
		var cached dto.ProductList
		found, err := uc.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("product list cache read failed", zap.Error(err))
		}
		if found {
			return &cached, nil
		}
	}

	// 3. Rows and total are independent reads
	var (
		items []model.Product
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = uc.repo.FindAll(gctx, dto.ProductQuery{
			Predicate: pred,
			Ordering:  ordering,
			Limit:     limit,
			Offset:    pagination.Offset(page, limit),
		})
		return err
	})
	g.Go(func() error {
		var err error
		total, err = uc.repo.Count(gctx, pred)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Product{}
	}

	result := &dto.ProductList{
		Items:      items,
		Pagination: pagination.New(page, limit, total),
	}

	// 4. Set Cache
	if cacheKey != "" {
		if err := uc.cache.Set(ctx, cacheKey, result, uc.cacheTTL); err != nil {
			uc.logger.Warn("product list cache write failed", zap.Error(err))
		}
	}

	return result, nil
}

func (uc *productUseCase) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if slug == "" {
		return nil, apperror.BadRequest(msgSlugEmpty)
	}

	p, err := uc.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound(msgProductNotFound)
	}
	return p, nil
}

func (uc *productUseCase) GetFirstProduct(ctx context.Context) (*model.Product, error) {
	p, err := uc.repo.FindFirst(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound(msgNoProducts)
	}
	return p, nil
}

// AggregateProducts accepts metric for compatibility; the result shape depends on groupBy only.
func (uc *productUseCase) AggregateProducts(ctx context.Context, input *dto.AggregateInput) (*model.Aggregation, error) {
	if input == nil {
		return nil, apperror.BadRequest(msgInvalidAggregation)
	}
	if err := uc.validator.Struct(input); err != nil {
		return nil, err
	}

	switch input.GroupBy {
	case model.GroupByCategory:
		stats, err := uc.repo.AggregateByCategory(ctx)
		if err != nil {
			return nil, err
		}
		if stats == nil {
			stats = []model.CategoryStats{}
		}
		return &model.Aggregation{GroupBy: model.GroupByCategory, Categories: stats}, nil
	case model.GroupByPrice:
		stats, err := uc.repo.AggregatePrice(ctx)
		if err != nil {
			return nil, err
		}
		return &model.Aggregation{GroupBy: model.GroupByPrice, Price: stats}, nil
	default:
		return nil, apperror.BadRequest(msgInvalidAggregation)
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := uc.validator.Struct(input); err != nil {
		return nil, err
	}

	categoryID := input.CategoryID
	if categoryID != nil && *categoryID == "" {
		categoryID = nil
	}
	cat, err := uc.requireCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if err := uc.checkUnique(ctx, input.Slug, input.SKU, ""); err != nil {
		return nil, err
	}

	stock := 0
	if input.StockQuantity != nil {
		stock = *input.StockQuantity
	}

	p := &model.Product{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: time.Now().UTC()},
		Name:          input.Name,
		Slug:          input.Slug,
		SKU:           input.SKU,
		Description:   input.Description,
		Price:         input.Price.Round(2),
		StockQuantity: stock,
		ImageURL:      input.ImageURL,
		CategoryID:    categoryID,
		Variants:      toVariants(input.Variants),
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Category = cat

	uc.invalidateProductCache(ctx)
	uc.publish(ctx, events.ProductCreated, p.ID, p)
	return p, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := uc.validator.Struct(input); err != nil {
		return nil, err
	}

	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound(msgProductNotFound)
	}

	slug, sku := "", ""
	if input.Slug != nil && *input.Slug != p.Slug {
		slug = *input.Slug
	}
	if input.SKU != nil && *input.SKU != p.SKU {
		sku = *input.SKU
	}
	if err := uc.checkUnique(ctx, slug, sku, p.ID); err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if *input.CategoryID == "" {
			p.CategoryID = nil
		} else {
			if _, err := uc.requireCategory(ctx, input.CategoryID); err != nil {
				return nil, err
			}
			catID := *input.CategoryID
			p.CategoryID = &catID
		}
	}

	// Update fields
	if input.Name != nil {
		p.Name = *input.Name
	}
	if slug != "" {
		p.Slug = slug
	}
	if sku != "" {
		p.SKU = sku
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		p.Price = input.Price.Round(2)
	}
	if input.StockQuantity != nil {
		p.StockQuantity = *input.StockQuantity
	}
	if input.ImageURL != nil {
		p.ImageURL = input.ImageURL
	}
	replaceVariants := input.Variants != nil
	if replaceVariants {
		p.Variants = toVariants(input.Variants)
	}

	if err := uc.repo.Update(ctx, p, replaceVariants); err != nil {
		return nil, err
	}

	uc.invalidateProductCache(ctx)
	uc.publish(ctx, events.ProductUpdated, p.ID, p)

	updated, err := uc.repo.FindBySlug(ctx, p.Slug)
	if err != nil || updated == nil {
		return p, nil
	}
	return updated, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperror.NotFound(msgProductNotFound)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateProductCache(ctx)
	uc.publish(ctx, events.ProductDeleted, id, nil)
	return nil
}

// requireCategory returns nil for a nil id and BAD_REQUEST for an unknown one.
func (uc *productUseCase) requireCategory(ctx context.Context, id *string) (*model.Category, error) {
	if id == nil {
		return nil, nil
	}
	cat, err := uc.categories.FindByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.BadRequest(msgCategoryMissing)
	}
	return cat, nil
}

// checkUnique skips empty values.
func (uc *productUseCase) checkUnique(ctx context.Context, slug, sku, excludeID string) error {
	if slug != "" {
		unique, err := uc.repo.IsSlugUnique(ctx, slug, excludeID)
		if err != nil {
			return err
		}
		if !unique {
			return apperror.Conflict(msgSlugTaken)
		}
	}
	if sku != "" {
		unique, err := uc.repo.IsSKUUnique(ctx, sku, excludeID)
		if err != nil {
			return err
		}
		if !unique {
			return apperror.Conflict(msgSKUTaken)
		}
	}
	return nil
}

func toVariants(in []dto.VariantInput) []model.Variant {
	out := make([]model.Variant, len(in))
	for i, v := range in {
		out[i] = model.Variant{Position: i, Name: v.Name, Value: v.Value}
	}
	return out
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context) {
	if err := uc.cache.DeletePrefix(ctx, cache.ProductListPrefix); err != nil {
		uc.logger.Warn("failed to invalidate product list cache", zap.Error(err))
	}
}

func (uc *productUseCase) publish(ctx context.Context, eventType events.Type, id string, payload interface{}) {
	event, err := events.New(eventType, id, payload)
	if err == nil {
		err = uc.publisher.Publish(ctx, event)
	}
	if err != nil {
		uc.logger.Warn("failed to publish product event",
			zap.String("event_type", string(eventType)),
			zap.String("product_id", id),
			zap.Error(err),
		)
	}
}

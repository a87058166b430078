package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/cache"
	"github.com/fekuna/omnipos-catalog-service/internal/catalogtest"
	catDTO "github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	catUC "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/events"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/filter"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	uc    product.UseCase
	store *catalogtest.Store
	cache *memoryCache
	pub   *recordingPublisher
	logs  *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	store := catalogtest.NewStore()
	c := newMemoryCache()
	pub := &recordingPublisher{}
	uc := NewProductUseCase(store.Products(), store.Categories(), validation.New(), Options{
		Cache:     c,
		CacheTTL:  time.Minute,
		Publisher: pub,
	}, zap.New(core))
	return &fixture{uc: uc, store: store, cache: c, pub: pub, logs: logs}
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// seed adds n products, each one minute newer than the previous, priced 10, 20, 30...
func (f *fixture) seed(n int, categoryID *string) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		f.store.AddProduct(model.Product{
			BaseModel:     model.BaseModel{ID: fmt.Sprintf("p-%02d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)},
			Name:          fmt.Sprintf("Phone %02d", i),
			Slug:          fmt.Sprintf("phone-%02d", i),
			SKU:           fmt.Sprintf("SKU-%02d", i),
			Description:   "A phone for testing",
			Price:         decimal.NewFromInt(int64((i + 1) * 10)),
			StockQuantity: i % 3,
			CategoryID:    categoryID,
		})
	}
}

func validCreateInput() *dto.CreateProductInput {
	return &dto.CreateProductInput{
		Name:        "Pixel 9",
		Slug:        "pixel-9",
		SKU:         "PIX-9",
		Description: "Google flagship phone",
		Price:       dec("799.999"),
		Variants: []dto.VariantInput{
			{Name: "Storage", Value: "128GB"},
			{Name: "Color", Value: "Obsidian"},
		},
	}
}

func TestListProductsLastPage(t *testing.T) {
	f := newFixture(t)
	f.seed(25, nil)

	list, err := f.uc.ListProducts(context.Background(), &dto.ListOptions{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list.Items, 5)
	assert.Equal(t, 3, list.Pagination.Page)
	assert.Equal(t, 10, list.Pagination.Limit)
	assert.Equal(t, 25, list.Pagination.Total)
	assert.Equal(t, 3, list.Pagination.PageCount)
	// Newest first, so the last page holds the five oldest.
	assert.Equal(t, "p-04", list.Items[0].ID)
	assert.Equal(t, "p-00", list.Items[4].ID)
}

func TestListProductsDefaultsAndFilters(t *testing.T) {
	f := newFixture(t)
	f.store.AddCategory(model.Category{BaseModel: model.BaseModel{ID: "c-1"}, Name: "Smartphones"})
	f.seed(12, strPtr("c-1"))

	list, err := f.uc.ListProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, list.Items, 10)
	assert.Equal(t, 1, list.Pagination.Page)
	assert.Equal(t, 2, list.Pagination.PageCount)

	list, err = f.uc.ListProducts(context.Background(), &dto.ListOptions{
		CategoryID: "c-1",
		MinPrice:   decPtr("20"),
		MaxPrice:   decPtr("40"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, list.Pagination.Total)
	for _, p := range list.Items {
		assert.True(t, p.Price.GreaterThanOrEqual(dec("20")) && p.Price.LessThanOrEqual(dec("40")))
	}

	list, err = f.uc.ListProducts(context.Background(), &dto.ListOptions{CategoryID: "other"})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.NotNil(t, list.Items)
	assert.Equal(t, 0, list.Pagination.PageCount)
}

func TestListProductsRejectsNegativePaging(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ListProducts(context.Background(), &dto.ListOptions{Page: -1})
	require.Error(t, err)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	assert.Equal(t, "Validation failed: Page must be a positive integer", apperror.Translate(err).Message)
}

func TestListProductsServesFromCache(t *testing.T) {
	f := newFixture(t)
	f.seed(3, nil)
	ctx := context.Background()

	first, err := f.uc.ListProducts(ctx, &dto.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, f.cache.hits)

	// Rows added behind the service are invisible until the cache is invalidated.
	f.seed(5, nil)
	second, err := f.uc.ListProducts(ctx, &dto.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.hits)
	assert.Equal(t, first.Pagination.Total, second.Pagination.Total)

	_, err = f.uc.CreateProduct(ctx, validCreateInput())
	require.NoError(t, err)
	assert.Empty(t, f.cache.entries)

	third, err := f.uc.ListProducts(ctx, &dto.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 6, third.Pagination.Total)
}

func TestCategoryRenameReachesCachedList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddCategory(model.Category{BaseModel: model.BaseModel{ID: "c-1"}, Name: "Smartphones"})
	f.seed(2, strPtr("c-1"))
	categories := catUC.NewCategoryUseCase(f.store.Categories(), validation.New(), events.NopPublisher{}, f.cache, zap.NewNop())

	before, err := f.uc.ListProducts(ctx, &dto.ListOptions{})
	require.NoError(t, err)
	require.NotNil(t, before.Items[0].Category)
	assert.Equal(t, "Smartphones", before.Items[0].Category.Name)

	_, err = categories.UpdateCategory(ctx, &catDTO.UpdateCategoryInput{ID: "c-1", Name: strPtr("Phones")})
	require.NoError(t, err)

	after, err := f.uc.ListProducts(ctx, &dto.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, f.cache.hits)
	require.NotNil(t, after.Items[0].Category)
	assert.Equal(t, "Phones", after.Items[0].Category.Name)

	bySlug, err := f.uc.GetProductBySlug(ctx, after.Items[0].Slug)
	require.NoError(t, err)
	require.NotNil(t, bySlug.Category)
	assert.Equal(t, after.Items[0].Category.Name, bySlug.Category.Name)
}

func TestFilterProducts(t *testing.T) {
	f := newFixture(t)
	f.seed(10, nil)

	search := "phone 0"
	sortBy := filter.SortByPrice
	order := filter.Asc
	inStock := true
	list, err := f.uc.FilterProducts(context.Background(), &filter.Input{
		Search:    &search,
		SortBy:    &sortBy,
		SortOrder: &order,
		InStock:   &inStock,
		Limit:     intPtr(3),
	})
	require.NoError(t, err)
	// Stock is i%3, so in-stock ids are 1, 2, 4, 5, 7, 8.
	assert.Equal(t, 6, list.Pagination.Total)
	assert.Equal(t, 2, list.Pagination.PageCount)
	require.Len(t, list.Items, 3)
	assert.Equal(t, []string{"p-01", "p-02", "p-04"}, []string{list.Items[0].ID, list.Items[1].ID, list.Items[2].ID})
}

func TestFilterProductsValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.FilterProducts(context.Background(), &filter.Input{MinPrice: decPtr("-5")})
	require.Error(t, err)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	assert.Contains(t, apperror.Translate(err).Message, "Minimum price must be a positive number")
}

func TestGetProductBySlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddCategory(model.Category{BaseModel: model.BaseModel{ID: "c-1"}, Name: "Smartphones"})
	input := validCreateInput()
	input.CategoryID = strPtr("c-1")
	_, err := f.uc.CreateProduct(ctx, input)
	require.NoError(t, err)

	p, err := f.uc.GetProductBySlug(ctx, "pixel-9")
	require.NoError(t, err)
	require.NotNil(t, p.Category)
	assert.Equal(t, "Smartphones", p.Category.Name)
	require.Len(t, p.Variants, 2)
	assert.Equal(t, "Storage", p.Variants[0].Name)

	_, err = f.uc.GetProductBySlug(ctx, "missing")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "Product not found", apperror.Translate(err).Message)

	_, err = f.uc.GetProductBySlug(ctx, "")
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))
	assert.Equal(t, "Slug must not be empty", apperror.Translate(err).Message)
}

func TestGetFirstProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.GetFirstProduct(ctx)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "No products found", apperror.Translate(err).Message)

	f.seed(4, nil)
	p, err := f.uc.GetFirstProduct(ctx)
	require.NoError(t, err)
	assert.Equal(t, "p-00", p.ID)
}

func TestAggregateProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	agg, err := f.uc.AggregateProducts(ctx, &dto.AggregateInput{GroupBy: model.GroupByPrice})
	require.NoError(t, err)
	require.NotNil(t, agg.Price)
	assert.False(t, agg.Price.AvgPrice.Valid)
	assert.False(t, agg.Price.MinPrice.Valid)
	assert.False(t, agg.Price.MaxPrice.Valid)
	assert.Nil(t, agg.Price.StockSum)

	f.store.AddCategory(model.Category{BaseModel: model.BaseModel{ID: "c-1"}, Name: "Smartphones"})
	f.seed(4, strPtr("c-1"))
	f.store.AddProduct(model.Product{BaseModel: model.BaseModel{ID: "p-x"}, Slug: "loose", SKU: "LOOSE", Price: dec("5"), StockQuantity: 7})

	agg, err = f.uc.AggregateProducts(ctx, &dto.AggregateInput{GroupBy: model.GroupByPrice})
	require.NoError(t, err)
	stats := agg.Price
	require.True(t, stats.AvgPrice.Valid)
	assert.True(t, stats.MinPrice.Decimal.LessThanOrEqual(stats.AvgPrice.Decimal))
	assert.True(t, stats.AvgPrice.Decimal.LessThanOrEqual(stats.MaxPrice.Decimal))
	assert.True(t, stats.MinPrice.Decimal.Equal(dec("5")))
	assert.True(t, stats.MaxPrice.Decimal.Equal(dec("40")))
	assert.Equal(t, int64(10), *stats.StockSum)

	agg, err = f.uc.AggregateProducts(ctx, dto.DefaultAggregateInput())
	require.NoError(t, err)
	assert.Equal(t, model.GroupByCategory, agg.GroupBy)
	require.Len(t, agg.Categories, 2)
	assert.Equal(t, "c-1", *agg.Categories[0].CategoryID)
	assert.Equal(t, 4, agg.Categories[0].Count)
	assert.True(t, agg.Categories[0].AvgPrice.Decimal.Equal(dec("25")))
	assert.Nil(t, agg.Categories[1].CategoryID)

	_, err = f.uc.AggregateProducts(ctx, &dto.AggregateInput{GroupBy: "brand"})
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))
	assert.Equal(t, "Invalid aggregation option", apperror.Translate(err).Message)
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)

	p, err := f.uc.CreateProduct(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.Price.Equal(dec("800")))
	assert.Equal(t, 0, p.StockQuantity)
	assert.Nil(t, p.CategoryID)
	require.Len(t, p.Variants, 2)
	assert.Equal(t, 1, p.Variants[1].Position)

	require.Len(t, f.pub.events, 1)
	assert.Equal(t, events.ProductCreated, f.pub.events[0].EventType)
	assert.Equal(t, 1, f.store.ProductCount())
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)

	input := validCreateInput()
	input.Price = dec("-1")
	_, err := f.uc.CreateProduct(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	assert.Equal(t, "Validation failed: Price must be a positive number", apperror.Translate(err).Message)

	input = validCreateInput()
	input.StockQuantity = intPtr(-2)
	input.Slug = "Not A Slug"
	_, err = f.uc.CreateProduct(context.Background(), input)
	require.Error(t, err)
	msg := apperror.Translate(err).Message
	assert.Contains(t, msg, "Invalid slug format")
	assert.Contains(t, msg, "Stock quantity must be non-negative")
	assert.Equal(t, 0, f.store.ProductCount())
}

func TestCreateProductConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.CreateProduct(ctx, validCreateInput())
	require.NoError(t, err)

	dup := validCreateInput()
	dup.SKU = "OTHER-SKU"
	_, err = f.uc.CreateProduct(ctx, dup)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, "Product slug must be unique", apperror.Translate(err).Message)

	dup = validCreateInput()
	dup.Slug = "pixel-9-pro"
	_, err = f.uc.CreateProduct(ctx, dup)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, "Product SKU must be unique", apperror.Translate(err).Message)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	f := newFixture(t)

	input := validCreateInput()
	input.CategoryID = strPtr("ghost")
	_, err := f.uc.CreateProduct(context.Background(), input)
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))
	assert.Equal(t, "Category does not exist", apperror.Translate(err).Message)
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.AddCategory(model.Category{BaseModel: model.BaseModel{ID: "c-1"}, Name: "Smartphones"})
	created, err := f.uc.CreateProduct(ctx, validCreateInput())
	require.NoError(t, err)

	updated, err := f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:         created.ID,
		Price:      decPtr("699.5"),
		CategoryID: strPtr("c-1"),
	})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(dec("699.5")))
	assert.Equal(t, "Smartphones", updated.Category.Name)
	assert.Len(t, updated.Variants, 2, "variants kept when not provided")

	updated, err = f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:         created.ID,
		Variants:   []dto.VariantInput{},
		CategoryID: strPtr(""),
		Slug:       strPtr("pixel-9"),
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Variants)
	assert.Nil(t, updated.CategoryID)

	assert.Equal(t, events.ProductUpdated, f.pub.events[len(f.pub.events)-1].EventType)
}

func TestUpdateProductErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(2, nil)

	_, err := f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: "missing", Name: strPtr("Nokia")})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: "p-00", Slug: strPtr("phone-01")})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: "p-00", Price: decPtr("0")})
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))

	_, err = f.uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: "p-00", CategoryID: strPtr("ghost")})
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(1, nil)

	require.NoError(t, f.uc.DeleteProduct(ctx, "p-00"))
	assert.Equal(t, 0, f.store.ProductCount())
	assert.Equal(t, events.ProductDeleted, f.pub.events[0].EventType)

	err := f.uc.DeleteProduct(ctx, "p-00")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "Product not found", apperror.Translate(err).Message)
}

func TestPublishFailureIsLogged(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("broker down")

	_, err := f.uc.CreateProduct(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, 1, f.logs.FilterMessage("failed to publish product event").Len())
}

func TestStoreFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.store.Err = errors.New("connection refused")

	_, err := f.uc.ListProducts(context.Background(), &dto.ListOptions{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.Translate(err).Kind)
}

var _ cache.Cache = (*memoryCache)(nil)

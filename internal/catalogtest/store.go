// Package catalogtest provides an in-memory implementation of the category and
// product repositories. Service tests and adapter smoke tests share it.
package catalogtest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/filter"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Store enforces the same unique and foreign key constraints as the Postgres
// schema and reports violations as *pq.Error values.
type Store struct {
	mu         sync.RWMutex
	categories map[string]model.Category
	products   map[string]model.Product

	// Err, when set, is returned by every repository call.
	Err error
}

func NewStore() *Store {
	return &Store{
		categories: map[string]model.Category{},
		products:   map[string]model.Product{},
	}
}

func (s *Store) Categories() category.Repository {
	return &CategoryRepository{store: s}
}

func (s *Store) Products() product.Repository {
	return &ProductRepository{store: s}
}

// AddCategory and AddProduct bypass the services; they are for test setup.
func (s *Store) AddCategory(c model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

func (s *Store) AddProduct(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = cloneProduct(p)
}

func (s *Store) ProductCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

func cloneProduct(p model.Product) model.Product {
	out := p
	out.Category = nil
	if p.Variants != nil {
		out.Variants = append([]model.Variant(nil), p.Variants...)
	}
	return out
}

func violation(code pq.ErrorCode, msg string) error {
	return &pq.Error{Code: code, Message: msg}
}

type CategoryRepository struct {
	store *Store
}

func (r *CategoryRepository) Create(_ context.Context, c *model.Category) error {
	s := r.store
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return violation("23505", "duplicate key value violates unique constraint \"categories_name_key\"")
		}
	}
	stored := *c
	stored.ProductCount = nil
	s.categories[c.ID] = stored
	return nil
}

func (r *CategoryRepository) FindByID(_ context.Context, id string) (*model.Category, error) {
	s := r.store
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepository) FindByName(_ context.Context, name string) (*model.Category, error) {
	s := r.store
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepository) FindAll(_ context.Context) ([]model.Category, error) {
	s := r.store
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		count := 0
		for _, p := range s.products {
			if p.CategoryID != nil && *p.CategoryID == c.ID {
				count++
			}
		}
		c.ProductCount = &count
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CategoryRepository) FindProducts(_ context.Context, categoryID string) ([]model.Product, error) {
	s := r.store
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Product{}
	for _, p := range s.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			p := cloneProduct(p)
			p.Variants = nil
			out = append(out, p)
		}
	}
	ordering := filter.DefaultOrdering()
	sort.Slice(out, func(i, j int) bool { return ordering.Compare(&out[i], &out[j]) < 0 })
	return out, nil
}

func (r *CategoryRepository) CountProducts(_ context.Context, categoryID string) (int, error) {
	s := r.store
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countProductsLocked(categoryID), nil
}

func (s *Store) countProductsLocked(categoryID string) int {
	count := 0
	for _, p := range s.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			count++
		}
	}
	return count
}

func (r *CategoryRepository) Update(_ context.Context, c *model.Category) error {
	s := r.store
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.categories {
		if id != c.ID && existing.Name == c.Name {
			return violation("23505", "duplicate key value violates unique constraint \"categories_name_key\"")
		}
	}
	if _, ok := s.categories[c.ID]; ok {
		stored := *c
		stored.ProductCount = nil
		s.categories[c.ID] = stored
	}
	return nil
}

func (r *CategoryRepository) Delete(_ context.Context, id string) error {
	s := r.store
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countProductsLocked(id) > 0 {
		return violation("23503", "update or delete on table \"categories\" violates foreign key constraint")
	}
	delete(s.categories, id)
	return nil
}

type ProductRepository struct {
	store *Store
}

func (s *Store) checkProductLocked(p *model.Product) error {
	for id, existing := range s.products {
		if id == p.ID {
			continue
		}
		if existing.Slug == p.Slug {
			return violation("23505", "duplicate key value violates unique constraint \"products_slug_key\"")
		}
		if existing.SKU == p.SKU {
			return violation("23505", "duplicate key value violates unique constraint \"products_sku_key\"")
		}
	}
	if p.CategoryID != nil {
		if _, ok := s.categories[*p.CategoryID]; !ok {
			return violation("23503", "insert or update on table \"products\" violates foreign key constraint")
		}
	}
	return nil
}

func (r *ProductRepository) Create(_ context.Context, p *model.Product) error {
	s := r.store
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkProductLocked(p); err != nil {
		return err
	}
	s.products[p.ID] = cloneProduct(*p)
	return nil
}

func (r *ProductRepository) Update(_ context.Context, p *model.Product, replaceVariants bool) error {
	s := r.store
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[p.ID]
	if !ok {
		return nil
	}
	if err := s.checkProductLocked(p); err != nil {
		return err
	}
	stored := cloneProduct(*p)
	if !replaceVariants {
		stored.Variants = existing.Variants
	}
	s.products[p.ID] = stored
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	s := r.store
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	return nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*model.Product, error) {
	s := r.store
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	out := cloneProduct(p)
	return &out, nil
}

func (r *ProductRepository) FindBySlug(_ context.Context, slug string) (*model.Product, error) {
	s := r.store
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Slug == slug {
			return s.withRelationsLocked(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepository) FindFirst(_ context.Context) (*model.Product, error) {
	s := r.store
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var first *model.Product
	oldest := filter.Ordering{Field: filter.SortByCreatedAt, Direction: filter.Asc}
	for _, p := range s.products {
		p := p
		if first == nil || oldest.Compare(&p, first) < 0 {
			first = &p
		}
	}
	if first == nil {
		return nil, nil
	}
	return s.withRelationsLocked(*first), nil
}

func (s *Store) withRelationsLocked(p model.Product) *model.Product {
	out := cloneProduct(p)
	if out.Variants == nil {
		out.Variants = []model.Variant{}
	}
	if p.CategoryID != nil {
		if c, ok := s.categories[*p.CategoryID]; ok {
			out.Category = &c
		}
	}
	return &out
}

func (s *Store) matchingLocked(pred filter.Predicate) []model.Product {
	out := []model.Product{}
	for _, p := range s.products {
		if pred.Matches(&p) {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

func (r *ProductRepository) FindAll(_ context.Context, q dto.ProductQuery) ([]model.Product, error) {
	s := r.store
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.matchingLocked(q.Predicate)
	sort.Slice(rows, func(i, j int) bool { return q.Ordering.Compare(&rows[i], &rows[j]) < 0 })

	if q.Offset >= len(rows) {
		return []model.Product{}, nil
	}
	rows = rows[q.Offset:]
	if q.Limit > 0 && q.Limit < len(rows) {
		rows = rows[:q.Limit]
	}
	for i := range rows {
		rows[i] = *s.withRelationsLocked(rows[i])
	}
	return rows, nil
}

func (r *ProductRepository) Count(_ context.Context, pred filter.Predicate) (int, error) {
	s := r.store
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matchingLocked(pred)), nil
}

func (r *ProductRepository) IsSlugUnique(_ context.Context, slug, excludeID string) (bool, error) {
	return r.unique(func(p model.Product) bool { return p.Slug == slug }, excludeID)
}

func (r *ProductRepository) IsSKUUnique(_ context.Context, sku, excludeID string) (bool, error) {
	return r.unique(func(p model.Product) bool { return p.SKU == sku }, excludeID)
}

func (r *ProductRepository) unique(match func(model.Product) bool, excludeID string) (bool, error) {
	s := r.store
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, p := range s.products {
		if id != excludeID && match(p) {
			return false, nil
		}
	}
	return true, nil
}

func (r *ProductRepository) AggregateByCategory(_ context.Context) ([]model.CategoryStats, error) {
	s := r.store
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	type group struct {
		categoryID *string
		count      int
		sum        decimal.Decimal
		stock      int64
	}
	groups := map[string]*group{}
	for _, p := range s.products {
		key := ""
		if p.CategoryID != nil {
			key = *p.CategoryID
		}
		g, ok := groups[key]
		if !ok {
			g = &group{categoryID: p.CategoryID}
			groups[key] = g
		}
		g.count++
		g.sum = g.sum.Add(p.Price)
		g.stock += int64(p.StockQuantity)
	}

	out := make([]model.CategoryStats, 0, len(groups))
	for _, g := range groups {
		avg := g.sum.Div(decimal.NewFromInt(int64(g.count))).Round(2)
		out = append(out, model.CategoryStats{
			CategoryID: g.categoryID,
			Count:      g.count,
			AvgPrice:   decimal.NewNullDecimal(avg),
			StockSum:   g.stock,
		})
	}
	// NULLS LAST, as the SQL does.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].CategoryID, out[j].CategoryID
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return strings.Compare(*a, *b) < 0
	})
	return out, nil
}

func (r *ProductRepository) AggregatePrice(_ context.Context) (*model.PriceStats, error) {
	s := r.store
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.PriceStats{}
	if len(s.products) == 0 {
		return stats, nil
	}

	var sum decimal.Decimal
	var stock int64
	var min, max *decimal.Decimal
	for _, p := range s.products {
		price := p.Price
		sum = sum.Add(price)
		stock += int64(p.StockQuantity)
		if min == nil || price.LessThan(*min) {
			min = &price
		}
		if max == nil || price.GreaterThan(*max) {
			max = &price
		}
	}
	stats.AvgPrice = decimal.NewNullDecimal(sum.Div(decimal.NewFromInt(int64(len(s.products)))).Round(2))
	stats.MinPrice = decimal.NewNullDecimal(*min)
	stats.MaxPrice = decimal.NewNullDecimal(*max)
	stats.StockSum = &stock
	return stats, nil
}

package repository

import (
	"context"
	"database/sql"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/filter"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const productColumns = `p.id, p.name, p.slug, p.sku, p.description, p.price, p.stock_quantity, p.image_url, p.category_id, p.created_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// Create inserts the product and its variants in one transaction.
func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin create product")
	}
	defer tx.Rollback()

	query := `
        INSERT INTO products (
            id, name, slug, sku, description, price, stock_quantity, image_url, category_id, created_at
        )
        VALUES (
            :id, :name, :slug, :sku, :description, :price, :stock_quantity, :image_url, :category_id, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		return errors.Wrap(err, "insert product")
	}
	if err := insertVariants(ctx, tx, p.ID, p.Variants); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit create product")
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product, replaceVariants bool) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin update product")
	}
	defer tx.Rollback()

	query := `
        UPDATE products
        SET name = :name,
            slug = :slug,
            sku = :sku,
            description = :description,
            price = :price,
            stock_quantity = :stock_quantity,
            image_url = :image_url,
            category_id = :category_id
        WHERE id = :id
    `
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		return errors.Wrap(err, "update product")
	}

	if replaceVariants {
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_variants WHERE product_id = $1`, p.ID); err != nil {
			return errors.Wrap(err, "delete product variants")
		}
		if err := insertVariants(ctx, tx, p.ID, p.Variants); err != nil {
			return err
		}
	}
	return errors.Wrap(tx.Commit(), "commit update product")
}

func insertVariants(ctx context.Context, tx *sqlx.Tx, productID string, variants []model.Variant) error {
	for i := range variants {
		variants[i].ProductID = productID
		variants[i].Position = i
		_, err := tx.ExecContext(ctx,
			`INSERT INTO product_variants (product_id, position, name, value) VALUES ($1, $2, $3, $4)`,
			productID, i, variants[i].Name, variants[i].Value,
		)
		if err != nil {
			return errors.Wrap(err, "insert product variant")
		}
	}
	return nil
}

// Delete removes the product; its variants go with it through ON DELETE CASCADE.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return errors.Wrap(err, "delete product")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1 LIMIT 1`, id)
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	p, err := r.findOne(ctx, `SELECT `+productColumns+` FROM products p WHERE p.slug = $1 LIMIT 1`, slug)
	if err != nil || p == nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, []*model.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// FindFirst returns the oldest product.
func (r *PGRepository) FindFirst(ctx context.Context) (*model.Product, error) {
	p, err := r.findOne(ctx, `SELECT `+productColumns+` FROM products p ORDER BY p.created_at ASC, p.id ASC LIMIT 1`)
	if err != nil || p == nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, []*model.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PGRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.Product, error) {
	var product model.Product
	err := r.DB.GetContext(ctx, &product, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "select product")
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, q dto.ProductQuery) ([]model.Product, error) {
	where, args := buildWhere(q.Predicate)
	args["limit"] = q.Limit
	args["offset"] = q.Offset

	query := `SELECT ` + productColumns + ` FROM products p` + where + orderClause(q.Ordering) + ` LIMIT :limit OFFSET :offset`
	query, params, err := sqlx.Named(query, args)
	if err != nil {
		return nil, errors.Wrap(err, "bind product list")
	}

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), params...); err != nil {
		return nil, errors.Wrap(err, "select products")
	}

	refs := make([]*model.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	if err := r.loadRelations(ctx, refs); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) Count(ctx context.Context, pred filter.Predicate) (int, error) {
	where, args := buildWhere(pred)
	query, params, err := sqlx.Named(`SELECT count(*) FROM products p`+where, args)
	if err != nil {
		return 0, errors.Wrap(err, "bind product count")
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(query), params...); err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return count, nil
}

// loadRelations attaches categories and variants to products with two batched queries.
func (r *PGRepository) loadRelations(ctx context.Context, products []*model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, 0, len(products))
	categorySet := map[string]bool{}
	var categoryIDs []string
	for _, p := range products {
		ids = append(ids, p.ID)
		p.Variants = []model.Variant{}
		if p.CategoryID != nil && !categorySet[*p.CategoryID] {
			categorySet[*p.CategoryID] = true
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
	}

	var variants []model.Variant
	err := r.DB.SelectContext(ctx, &variants,
		`SELECT product_id, position, name, value FROM product_variants WHERE product_id = ANY($1) ORDER BY product_id, position`,
		pq.Array(ids),
	)
	if err != nil {
		return errors.Wrap(err, "select product variants")
	}
	byProduct := map[string][]model.Variant{}
	for _, v := range variants {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}

	categories := map[string]*model.Category{}
	if len(categoryIDs) > 0 {
		var rows []model.Category
		err := r.DB.SelectContext(ctx, &rows,
			`SELECT id, name, description, created_at FROM categories WHERE id = ANY($1)`,
			pq.Array(categoryIDs),
		)
		if err != nil {
			return errors.Wrap(err, "select product categories")
		}
		for i := range rows {
			categories[rows[i].ID] = &rows[i]
		}
	}

	for _, p := range products {
		if vs, ok := byProduct[p.ID]; ok {
			p.Variants = vs
		}
		if p.CategoryID != nil {
			p.Category = categories[*p.CategoryID]
		}
	}
	return nil
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error) {
	return r.isUnique(ctx, "slug", slug, excludeID)
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error) {
	return r.isUnique(ctx, "sku", sku, excludeID)
}

// column is one of the fixed names above, never user input.
func (r *PGRepository) isUnique(ctx context.Context, column, value, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE ` + column + ` = $1`
	args := []interface{}{value}
	if excludeID != "" {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, errors.Wrap(err, "check product "+column)
	}
	return count == 0, nil
}

func (r *PGRepository) AggregateByCategory(ctx context.Context) ([]model.CategoryStats, error) {
	stats := []model.CategoryStats{}
	query := `
        SELECT category_id,
               COUNT(*) AS count,
               ROUND(AVG(price), 2) AS avg_price,
               COALESCE(SUM(stock_quantity), 0) AS stock_sum
        FROM products
        GROUP BY category_id
        ORDER BY category_id NULLS LAST
    `
	if err := r.DB.SelectContext(ctx, &stats, query); err != nil {
		return nil, errors.Wrap(err, "aggregate products by category")
	}
	return stats, nil
}

// AggregatePrice returns null aggregates when there are no products.
func (r *PGRepository) AggregatePrice(ctx context.Context) (*model.PriceStats, error) {
	var stats model.PriceStats
	query := `
        SELECT ROUND(AVG(price), 2) AS avg_price,
               MIN(price) AS min_price,
               MAX(price) AS max_price,
               SUM(stock_quantity) AS stock_sum
        FROM products
    `
	if err := r.DB.GetContext(ctx, &stats, query); err != nil {
		return nil, errors.Wrap(err, "aggregate product prices")
	}
	return &stats, nil
}

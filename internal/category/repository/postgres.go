package repository

import (
	"context"
	"database/sql"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, name, description, created_at)
        VALUES (:id, :name, :description, :created_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return errors.Wrap(err, "insert category")
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	return r.findOne(ctx, `SELECT id, name, description, created_at FROM categories WHERE id = $1 LIMIT 1`, id)
}

func (r *PGRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	return r.findOne(ctx, `SELECT id, name, description, created_at FROM categories WHERE name = $1 LIMIT 1`, name)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.Category, error) {
	var category model.Category
	err := r.DB.GetContext(ctx, &category, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "select category")
	}
	return &category, nil
}

// FindAll returns every category with the number of products it owns, newest first.
func (r *PGRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	query := `
        SELECT c.id, c.name, c.description, c.created_at, COUNT(p.id) AS product_count
        FROM categories c
        LEFT JOIN products p ON p.category_id = c.id
        GROUP BY c.id
        ORDER BY c.created_at DESC, c.id
    `
	if err := r.DB.SelectContext(ctx, &categories, query); err != nil {
		return nil, errors.Wrap(err, "select categories")
	}
	return categories, nil
}

func (r *PGRepository) FindProducts(ctx context.Context, categoryID string) ([]model.Product, error) {
	products := []model.Product{}
	query := `
        SELECT id, name, slug, sku, description, price, stock_quantity, image_url, category_id, created_at
        FROM products
        WHERE category_id = $1
        ORDER BY created_at DESC, id
    `
	if err := r.DB.SelectContext(ctx, &products, query, categoryID); err != nil {
		return nil, errors.Wrap(err, "select category products")
	}
	return products, nil
}

func (r *PGRepository) CountProducts(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM products WHERE category_id = $1`, categoryID)
	if err != nil {
		return 0, errors.Wrap(err, "count category products")
	}
	return count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            description = :description
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return errors.Wrap(err, "update category")
}

// Delete relies on the ON DELETE RESTRICT foreign key as a last guard; the usecase
// checks for owned products first.
func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	return errors.Wrap(err, "delete category")
}

// Package repository implements catalog persistence on Postgres. SQL is
// assembled with squirrel and executed on a pgx connection pool.
package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Y4SHVINE/smart-product-assistant/internal/model"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const productColumns = "p.id, p.name, p.description, p.price, p.image_url, p.category_id, p.attributes, p.created_at, p.updated_at"

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns every product joined with its category, ordered by id.
func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	sql, args, err := psql.
		Select(productColumns, "c.id", "c.name", "c.description", "c.created_at", "c.updated_at").
		From("products p").
		Join("categories c ON c.id = p.category_id").
		OrderBy("p.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building product list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProductWithCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}

// Get returns a single product joined with its category.
func (r *ProductRepository) Get(ctx context.Context, id int64) (*model.Product, error) {
	sql, args, err := psql.
		Select(productColumns, "c.id", "c.name", "c.description", "c.created_at", "c.updated_at").
		From("products p").
		Join("categories c ON c.id = p.category_id").
		Where(squirrel.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building product get query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("querying product: %w", err)
		}
		return nil, model.ErrNotFound
	}

	p, err := scanProductWithCategory(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning product: %w", err)
	}
	return &p, nil
}

// Create inserts a product and returns it joined with its category.
func (r *ProductRepository) Create(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	attrs := in.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}

	sql, args, err := psql.
		Insert("products").
		SetMap(map[string]interface{}{
			"name":        in.Name,
			"description": in.Description,
			"price":       in.Price,
			"image_url":   in.ImageURL,
			"category_id": in.CategoryID,
			"attributes":  attrs,
		}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building product insert: %w", err)
	}

	var id int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("inserting product: %w", err)
	}

	return r.Get(ctx, id)
}

// Update overwrites the writable fields of a product and returns the fresh
// joined row.
func (r *ProductRepository) Update(ctx context.Context, id int64, in model.ProductInput) (*model.Product, error) {
	attrs := in.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}

	sql, args, err := psql.
		Update("products").
		SetMap(map[string]interface{}{
			"name":        in.Name,
			"description": in.Description,
			"price":       in.Price,
			"image_url":   in.ImageURL,
			"category_id": in.CategoryID,
			"attributes":  attrs,
			"updated_at":  squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building product update: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrNotFound
	}

	return r.Get(ctx, id)
}

// Delete removes a product by id.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.
		Delete("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building product delete: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// scanProductWithCategory scans one joined product/category row.
func scanProductWithCategory(rows pgx.Rows) (model.Product, error) {
	var p model.Product
	var c model.Category
	err := rows.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.CategoryID, &p.Attributes, &p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return model.Product{}, err
	}
	p.Category = &c
	return p, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Y4SHVINE/smart-product-assistant/internal/model"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// List returns every category with its associated products.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	sql, args, err := psql.
		Select("id", "name", "description", "created_at", "updated_at").
		From("categories").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building category list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	index := map[int64]int{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.Products = []model.Product{}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	products, err := r.productsByCategory(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if i, ok := index[p.CategoryID]; ok {
			categories[i].Products = append(categories[i].Products, p)
		}
	}

	return categories, nil
}

// Get returns one category with its associated products.
func (r *CategoryRepository) Get(ctx context.Context, id int64) (*model.Category, error) {
	sql, args, err := psql.
		Select("id", "name", "description", "created_at", "updated_at").
		From("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building category get query: %w", err)
	}

	var c model.Category
	err = r.pool.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("querying category: %w", err)
	}

	products, err := r.productsByCategory(ctx, &id)
	if err != nil {
		return nil, err
	}
	c.Products = products

	return &c, nil
}

// Create inserts a category. The products slice of a new category is empty,
// never nil.
func (r *CategoryRepository) Create(ctx context.Context, in model.CategoryInput) (*model.Category, error) {
	sql, args, err := psql.
		Insert("categories").
		SetMap(map[string]interface{}{
			"name":        in.Name,
			"description": in.Description,
		}).
		Suffix("RETURNING id, name, description, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building category insert: %w", err)
	}

	var c model.Category
	err = r.pool.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting category: %w", err)
	}
	c.Products = []model.Product{}

	return &c, nil
}

// Update overwrites a category's name and description.
func (r *CategoryRepository) Update(ctx context.Context, id int64, in model.CategoryInput) (*model.Category, error) {
	sql, args, err := psql.
		Update("categories").
		SetMap(map[string]interface{}{
			"name":        in.Name,
			"description": in.Description,
			"updated_at":  squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building category update: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrNotFound
	}

	return r.Get(ctx, id)
}

// Delete removes a category. A category that still has associated products
// is left untouched and the call fails with ErrConflict.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	countSQL, countArgs, err := psql.
		Select("COUNT(*)").
		From("products").
		Where(squirrel.Eq{"category_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building product count query: %w", err)
	}

	var count int64
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&count); err != nil {
		return fmt.Errorf("counting category products: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("cannot delete category with associated products: %w", model.ErrConflict)
	}

	sql, args, err := psql.
		Delete("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building category delete: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// productsByCategory loads products, optionally restricted to one category.
func (r *CategoryRepository) productsByCategory(ctx context.Context, categoryID *int64) ([]model.Product, error) {
	q := psql.
		Select("id", "name", "description", "price", "image_url", "category_id", "attributes", "created_at", "updated_at").
		From("products").
		OrderBy("id")
	if categoryID != nil {
		q = q.Where(squirrel.Eq{"category_id": *categoryID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building category products query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying category products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
			&p.CategoryID, &p.Attributes, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning category product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category products: %w", err)
	}

	return products, nil
}

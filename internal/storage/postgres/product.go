package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dulcecodigo/storefront/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

const productColumns = `id, name, description, price, category, image_url, stock, is_active`

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns all active products ordered by id.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "select products")
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListByCategory returns active products in one category ordered by id.
func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE is_active AND category = $1 ORDER BY id`,
		category)
	if err != nil {
		return nil, errors.Wrap(err, "select products by category")
	}
	defer rows.Close()

	return collectProducts(rows)
}

// Get returns a product by id, active or not.
func (r *ProductRepository) Get(ctx context.Context, id int64) (*product.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrap(err, "select product")
	}
	return p, nil
}

// Create inserts a new catalog item.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) (*product.Product, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, description, price, category, image_url, stock, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+productColumns,
		p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.Stock, p.IsActive,
	)

	created, err := scanProduct(row)
	if err != nil {
		return nil, errors.Wrap(err, "insert product")
	}
	return created, nil
}

// Update overwrites a catalog item.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) (*product.Product, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE products
		 SET name = $2, description = $3, price = $4, category = $5,
		     image_url = $6, stock = $7, is_active = $8
		 WHERE id = $1
		 RETURNING `+productColumns,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.Stock, p.IsActive,
	)

	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrap(err, "update product")
	}
	return updated, nil
}

// Delete removes a catalog item. Returns product.ErrNotFound when no row
// matched.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.ImageURL, &p.Stock, &p.IsActive)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]product.Product, error) {
	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate products")
	}
	return products, nil
}

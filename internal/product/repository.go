package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
	Search(ctx context.Context, query string) ([]*Product, error)
	Create(ctx context.Context, params CreateProductParams) (*Product, error)
	Update(ctx context.Context, id uint, params UpdateProductParams) (*Product, error)
	ReduceStock(ctx context.Context, id uint, quantity int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, price, stock, category, image_url, sku, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
		&p.Category,
		&p.ImageURL,
		&p.SKU,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) List(ctx context.Context) ([]*Product, error) {
	return r.query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY id ASC
	`)
}

func (r *repository) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	return r.query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE category = $1
		ORDER BY id ASC
	`, category)
}

func (r *repository) Search(ctx context.Context, query string) ([]*Product, error) {
	return r.query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE name ILIKE $1 OR description ILIKE $1
		ORDER BY id ASC
	`, "%"+query+"%")
}

func (r *repository) query(ctx context.Context, q string, args ...any) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) Create(ctx context.Context, params CreateProductParams) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, stock, category, image_url, sku)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns+`
	`,
		params.Name,
		params.Description,
		params.Price,
		params.Stock,
		params.Category,
		params.ImageURL,
		params.SKU,
	)

	p, err := scanProduct(row)
	if err != nil {
		if strings.Contains(err.Error(), "products_sku_key") {
			return nil, ErrDuplicateSKU
		}
		return nil, err
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id uint, params UpdateProductParams) (*Product, error) {
	sets := []string{}
	args := []any{}
	argIndex := 1

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if params.Name != nil {
		addSet("name", *params.Name)
	}
	if params.Description != nil {
		addSet("description", *params.Description)
	}
	if params.Price != nil {
		addSet("price", *params.Price)
	}
	if params.Stock != nil {
		addSet("stock", *params.Stock)
	}
	if params.Category != nil {
		addSet("category", *params.Category)
	}
	if params.ImageURL != nil {
		addSet("image_url", *params.ImageURL)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE products
		SET %s
		WHERE id = $%d
		RETURNING `+productColumns,
		strings.Join(sets, ", "), argIndex,
	)
	args = append(args, id)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) ReduceStock(ctx context.Context, id uint, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`, quantity, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the product is missing or the stock is too low.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}

	return nil
}

package product

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateSKU      = errors.New("sku already exists")
)

type Product struct {
	ID          uint
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	ImageURL    string
	SKU         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateProductParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	ImageURL    string
	SKU         string
}

type UpdateProductParams struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Category    *string
	ImageURL    *string
}

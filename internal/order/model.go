package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID              uint
	UserID          uint
	TotalAmount     decimal.Decimal
	Status          Status
	ShippingAddress string
	TrackingNumber  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItem
}

// OrderItem captures price and display name at order time. It has no
// lifecycle outside its order.
type OrderItem struct {
	ID          uint
	OrderID     uint
	ProductID   uint
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// LineInput is one requested (product, quantity) pair in a create request.
type LineInput struct {
	ProductID uint
	Quantity  int
}

// Quote is the catalog's answer for a single product at order time.
type Quote struct {
	UnitPrice   decimal.Decimal
	DisplayName string
}

// PriceResolver supplies the current unit price and display name for a
// product. Implementations must return ErrUnknownProduct for ids that do
// not exist and honor context deadlines.
type PriceResolver interface {
	Resolve(ctx context.Context, productID uint) (Quote, error)
}

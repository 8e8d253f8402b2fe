package order

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidQuantity    = errors.New("item quantity must be positive")
	ErrEmptyAddress       = errors.New("shipping address is required")
	ErrTrackingNotAllowed = errors.New("tracking number requires a shipment status")

	// -- Line Items --
	ErrUnknownProduct = errors.New("unknown product")

	// -- Resource State --
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStatusConflict    = errors.New("order status changed concurrently")

	// -- External Dependencies --
	ErrPricingUnavailable = errors.New("pricing service unavailable")
	ErrStoreUnavailable   = errors.New("order store unavailable")
)

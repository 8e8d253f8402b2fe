package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"retailhub-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// resolveTimeout bounds every single price lookup so a slow catalog can
// never hang order creation.
const resolveTimeout = 3 * time.Second

type Service interface {
	CreateOrder(ctx context.Context, userID uint, lines []LineInput, shippingAddress string) (*Order, error)
	GetOrder(ctx context.Context, orderID uint) (*Order, error)
	GetOrdersByUser(ctx context.Context, userID uint) ([]*Order, error)
	GetAllOrders(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID uint, statusName string, trackingNumber *string) (*Order, error)
}

type service struct {
	repo     Repository
	resolver PriceResolver
}

func NewService(repo Repository, resolver PriceResolver) Service {
	return &service{repo: repo, resolver: resolver}
}

// CreateOrder validates the request, resolves every line through the
// catalog, computes the exact total, and persists the aggregate in one
// transaction. Nothing is written unless every line resolves.
func (s *service) CreateOrder(
	ctx context.Context,
	userID uint,
	lines []LineInput,
	shippingAddress string,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Uint("user_id", userID),
		zap.Int("line_count", len(lines)),
	)

	if len(lines) == 0 {
		log.Warn("rejected order with no items")
		return nil, ErrEmptyOrder
	}

	addr := strings.TrimSpace(shippingAddress)
	if addr == "" {
		log.Warn("rejected order with blank shipping address")
		return nil, ErrEmptyAddress
	}

	items := make([]OrderItem, 0, len(lines))
	total := decimal.Zero

	for i, line := range lines {
		if line.Quantity <= 0 {
			log.Warn("rejected non-positive quantity",
				zap.Int("index", i),
				zap.Uint("product_id", line.ProductID),
				zap.Int("quantity", line.Quantity),
			)
			return nil, fmt.Errorf("%w: product %d", ErrInvalidQuantity, line.ProductID)
		}

		rctx, cancel := context.WithTimeout(ctx, resolveTimeout)
		quote, err := s.resolver.Resolve(rctx, line.ProductID)
		cancel()

		if err != nil {
			if errors.Is(err, ErrUnknownProduct) {
				return nil, fmt.Errorf("%w: product %d", ErrUnknownProduct, line.ProductID)
			}
			log.Error("price resolution failed",
				zap.Uint("product_id", line.ProductID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
		}

		total = total.Add(quote.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))

		items = append(items, OrderItem{
			ProductID:   line.ProductID,
			ProductName: quote.DisplayName,
			Quantity:    line.Quantity,
			UnitPrice:   quote.UnitPrice,
		})
	}

	o := &Order{
		UserID:          userID,
		TotalAmount:     total,
		Status:          StatusPending,
		ShippingAddress: addr,
		CreatedAt:       time.Now().UTC(),
		Items:           items,
	}

	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.String("total_amount", total.String()),
	)

	return o, nil
}

func (s *service) GetOrder(ctx context.Context, orderID uint) (*Order, error) {
	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, storeErr(err)
	}
	return o, nil
}

func (s *service) GetOrdersByUser(ctx context.Context, userID uint) ([]*Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return orders, nil
}

func (s *service) GetAllOrders(ctx context.Context) ([]*Order, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return orders, nil
}

// storeErr classifies repository failures, leaving already classified
// errors untouched.
func storeErr(err error) error {
	if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrStatusConflict) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// UpdateStatus applies one edge of the transition table. The write is
// guarded on the loaded status, so of two racing updates exactly one
// wins and the loser is reported as an invalid transition.
func (s *service) UpdateStatus(
	ctx context.Context,
	orderID uint,
	statusName string,
	trackingNumber *string,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.Uint("order_id", orderID),
		zap.String("requested_status", statusName),
	)

	next, err := ParseStatus(statusName)
	if err != nil {
		log.Warn("unrecognized status name")
		return nil, err
	}

	current, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, storeErr(err)
	}

	if !CanTransition(current.Status, next) {
		log.Warn("disallowed transition", zap.String("current_status", string(current.Status)))
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
	}

	if trackingNumber != nil && !next.AcceptsTracking() {
		log.Warn("tracking number supplied for pre-shipment status")
		return nil, fmt.Errorf("%w: %s", ErrTrackingNotAllowed, next)
	}

	err = s.repo.UpdateOrderStatus(ctx, orderID, current.Status, next, trackingNumber)
	if err != nil {
		if errors.Is(err, ErrStatusConflict) {
			// Lost the race: the order already left the status we loaded.
			log.Warn("concurrent status update lost", zap.String("loaded_status", string(current.Status)))
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
		}
		log.Error("failed to update order status", zap.Error(err))
		return nil, storeErr(err)
	}

	log.Info("order status updated", zap.String("new_status", string(next)))

	updated, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, storeErr(err)
	}
	return updated, nil
}

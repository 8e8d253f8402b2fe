package product

import (
	"context"
	"errors"
	"strings"

	"retailhub-be/internal/logger"
	"retailhub-be/internal/order"

	"go.uber.org/zap"
)

type Service interface {
	// Resolve implements the order core's PriceResolver contract.
	Resolve(ctx context.Context, productID uint) (order.Quote, error)

	GetByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
	Search(ctx context.Context, query string) ([]*Product, error)
	Create(ctx context.Context, params CreateProductParams) (*Product, error)
	Update(ctx context.Context, id uint, params UpdateProductParams) (*Product, error)
	ReduceStock(ctx context.Context, id uint, quantity int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Resolve(ctx context.Context, productID uint) (order.Quote, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return order.Quote{}, order.ErrUnknownProduct
		}
		logger.FromCtx(ctx).Error("price lookup failed",
			zap.Uint("product_id", productID),
			zap.Error(err),
		)
		return order.Quote{}, err
	}

	return order.Quote{
		UnitPrice:   p.Price,
		DisplayName: p.Name,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *service) Search(ctx context.Context, query string) ([]*Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, query)
}

func (s *service) Create(ctx context.Context, params CreateProductParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("sku", params.SKU),
	)

	if strings.TrimSpace(params.Name) == "" {
		return nil, errors.New("product name is required")
	}
	if params.Price.IsNegative() {
		return nil, errors.New("product price must not be negative")
	}
	if params.Stock < 0 {
		return nil, errors.New("product stock must not be negative")
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Uint("product_id", p.ID))
	return p, nil
}

func (s *service) Update(ctx context.Context, id uint, params UpdateProductParams) (*Product, error) {
	if params.Price != nil && params.Price.IsNegative() {
		return nil, errors.New("product price must not be negative")
	}
	return s.repo.Update(ctx, id, params)
}

func (s *service) ReduceStock(ctx context.Context, id uint, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return s.repo.ReduceStock(ctx, id, quantity)
}

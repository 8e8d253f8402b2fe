package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"retailhub-be/internal/order"
	"retailhub-be/internal/product"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Resolve(ctx context.Context, productID uint) (order.Quote, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(order.Quote), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*product.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) List(ctx context.Context) ([]*product.Product, error) {
	args := m.Called(ctx)
	if ps, ok := args.Get(0).([]*product.Product); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) ListByCategory(ctx context.Context, category string) ([]*product.Product, error) {
	args := m.Called(ctx, category)
	if ps, ok := args.Get(0).([]*product.Product); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Search(ctx context.Context, query string) ([]*product.Product, error) {
	args := m.Called(ctx, query)
	if ps, ok := args.Get(0).([]*product.Product); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, params product.CreateProductParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if p, ok := args.Get(0).(*product.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uint, params product.UpdateProductParams) (*product.Product, error) {
	args := m.Called(ctx, id, params)
	if p, ok := args.Get(0).(*product.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) ReduceStock(ctx context.Context, id uint, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func productsRouter(svc product.Service) *chi.Mux {
	r := chi.NewRouter()
	h := &ProductsHandler{Svc: svc}
	h.Register(r)
	return r
}

func sampleProduct() *product.Product {
	return &product.Product{
		ID:        10,
		Name:      "Beans",
		Price:     decimal.RequireFromString("5.50"),
		Stock:     20,
		Category:  "coffee",
		SKU:       "BEAN-001",
		CreatedAt: time.Now(),
	}
}

func TestProductsHandler_GetProduct(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(MockProductService)
		router := productsRouter(svc)

		svc.On("GetByID", mock.Anything, uint(10)).Return(sampleProduct(), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products/10", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProductResp
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Beans", resp.Name)
		assert.True(t, resp.Price.Equal(decimal.RequireFromString("5.50")))
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := new(MockProductService)
		router := productsRouter(svc)

		svc.On("GetByID", mock.Anything, uint(404)).Return(nil, product.ErrProductNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/products/404", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProductsHandler_Search(t *testing.T) {
	svc := new(MockProductService)
	router := productsRouter(svc)

	svc.On("Search", mock.Anything, "beans").
		Return([]*product.Product{sampleProduct()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products/search?q=beans", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []ProductResp
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "BEAN-001", resp[0].SKU)
}

func TestProductsHandler_CreateProduct(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockProductService)
		router := productsRouter(svc)

		svc.On("Create", mock.Anything, mock.MatchedBy(func(params product.CreateProductParams) bool {
			return params.Name == "Beans" && params.Price.Equal(decimal.RequireFromString("5.50"))
		})).Return(sampleProduct(), nil)

		body := `{"name":"Beans","price":"5.50","stock":20,"category":"coffee","sku":"BEAN-001"}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Duplicate SKU", func(t *testing.T) {
		svc := new(MockProductService)
		router := productsRouter(svc)

		svc.On("Create", mock.Anything, mock.Anything).Return(nil, product.ErrDuplicateSKU)

		body := `{"name":"Beans","price":"5.50","sku":"BEAN-001"}`
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestProductsHandler_ReduceStock(t *testing.T) {
	t.Run("No Content", func(t *testing.T) {
		svc := new(MockProductService)
		router := productsRouter(svc)

		svc.On("ReduceStock", mock.Anything, uint(10), 3).Return(nil)

		req := httptest.NewRequest(http.MethodPut, "/api/products/10/reduce-stock",
			strings.NewReader(`{"quantity":3}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Insufficient Stock", func(t *testing.T) {
		svc := new(MockProductService)
		router := productsRouter(svc)

		svc.On("ReduceStock", mock.Anything, uint(10), 99).Return(product.ErrInsufficientStock)

		req := httptest.NewRequest(http.MethodPut, "/api/products/10/reduce-stock",
			strings.NewReader(`{"quantity":99}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"retailhub-be/internal/product"
	"retailhub-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ProductsHandler struct {
	Svc product.Service
}

type CreateProductReq struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	SKU         string          `json:"sku"`
}

type UpdateProductReq struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"imageUrl"`
}

type ReduceStockReq struct {
	Quantity int `json:"quantity"`
}

type ProductResp struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	SKU         string          `json:"sku"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (h *ProductsHandler) Register(r chi.Router) {
	r.Get("/api/products", h.listProducts)
	r.Get("/api/products/search", h.searchProducts)
	r.Get("/api/products/category/{category}", h.listByCategory)
	r.Get("/api/products/{productID}", h.getProduct)
	r.Post("/api/products", h.createProduct)
	r.Put("/api/products/{productID}", h.updateProduct)
	r.Put("/api/products/{productID}/reduce-stock", h.reduceStock)
}

func (h *ProductsHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Svc.List(r.Context())
	if err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResps(products))
}

func (h *ProductsHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResps(products))
}

func (h *ProductsHandler) listByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.Svc.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResps(products))
}

func (h *ProductsHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResp(p))
}

func (h *ProductsHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	p, err := h.Svc.Create(r.Context(), product.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		SKU:         req.SKU,
	})
	if err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResp(p))
}

func (h *ProductsHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	p, err := h.Svc.Update(r.Context(), id, product.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResp(p))
}

func (h *ProductsHandler) reduceStock(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req ReduceStockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.Svc.ReduceStock(r.Context(), id, req.Quantity); err != nil {
		writeProductError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toProductResp(p *product.Product) ProductResp {
	return ProductResp{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		SKU:         p.SKU,
		CreatedAt:   p.CreatedAt,
	}
}

func toProductResps(products []*product.Product) []ProductResp {
	out := make([]ProductResp, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResp(p))
	}
	return out
}

func writeProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, product.ErrInsufficientStock), errors.Is(err, product.ErrDuplicateSKU):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"retailhub-be/internal/metrics"
	"retailhub-be/internal/order"
	"retailhub-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	Svc order.Service
}

type CreateOrderReq struct {
	UserID          uint               `json:"userId"`
	Items           []OrderItemReq     `json:"items"`
	ShippingAddress string             `json:"shippingAddress"`
}

type OrderItemReq struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type UpdateStatusReq struct {
	Status         string  `json:"status"`
	TrackingNumber *string `json:"trackingNumber"`
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Post("/api/orders", h.createOrder)
	r.Get("/api/orders", h.listOrders)
	r.Get("/api/orders/{orderID}", h.getOrder)
	r.Get("/api/orders/user/{userID}", h.listUserOrders)
	r.Put("/api/orders/{orderID}/status", h.updateStatus)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	lines := make([]order.LineInput, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, order.LineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	o, err := h.Svc.CreateOrder(r.Context(), req.UserID, lines, req.ShippingAddress)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	metrics.OrdersCreated.Inc()
	writeJSON(w, http.StatusCreated, order.ToOrderView(o))
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ToUint(chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.Svc.GetOrder(r.Context(), orderID)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order.ToOrderView(o))
}

func (h *OrdersHandler) listUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ToUint(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	orders, err := h.Svc.GetOrdersByUser(r.Context(), userID)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order.ToOrderViews(orders))
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Svc.GetAllOrders(r.Context())
	if err != nil {
		writeOrderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order.ToOrderViews(orders))
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ToUint(chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req UpdateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	o, err := h.Svc.UpdateStatus(r.Context(), orderID, req.Status, req.TrackingNumber)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	metrics.StatusUpdates.Inc()
	writeJSON(w, http.StatusOK, order.ToOrderView(o))
}

// writeOrderError maps the order package's error kinds onto status codes.
func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrPricingUnavailable), errors.Is(err, order.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrEmptyAddress),
		errors.Is(err, order.ErrTrackingNotAllowed),
		errors.Is(err, order.ErrUnknownProduct):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderView is the external response shape of an order aggregate.
type OrderView struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"userId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	Items           []OrderItemView `json:"items"`
	ShippingAddress string          `json:"shippingAddress"`
	TrackingNumber  *string         `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type OrderItemView struct {
	ProductID   uint            `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// ToOrderView renders an aggregate into its response shape. Rendering is
// pure: the aggregate is never mutated.
func ToOrderView(o *Order) *OrderView {
	if o == nil {
		return nil
	}

	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.UnitPrice,
		})
	}

	return &OrderView{
		ID:              o.ID,
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		Items:           items,
		ShippingAddress: o.ShippingAddress,
		TrackingNumber:  o.TrackingNumber,
		CreatedAt:       o.CreatedAt,
	}
}

func ToOrderViews(orders []*Order) []*OrderView {
	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, ToOrderView(o))
	}
	return views
}

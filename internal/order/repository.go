package order

import (
	"context"
	"database/sql"

	"retailhub-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error
	GetOrderDetail(ctx context.Context, orderID uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, from, to Status, trackingNumber *string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx inserts the order header and all line items inside a
// single transaction. A reader can never observe the header without its
// items.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, status, total_amount, shipping_address, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		o.UserID,
		o.Status,
		o.TotalAmount,
		o.ShippingAddress,
		o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			o.ID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
		).Scan(&item.ID)
		if err != nil {
			return err
		}
		item.OrderID = o.ID
	}

	return tx.Commit()
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, status, total_amount, shipping_address, tracking_number, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.TotalAmount,
		&o.ShippingAddress,
		&o.TrackingNumber,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	itemsByOrder, err := r.fetchItems(ctx, []uint{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = itemsByOrder[o.ID]

	return &o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, status, total_amount, shipping_address, tracking_number, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectOrders(ctx, rows)
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, status, total_amount, shipping_address, tracking_number, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectOrders(ctx, rows)
}

// UpdateOrderStatus writes the new status guarded on the status the
// caller validated against. Zero rows affected means another writer got
// there first.
func (r *repository) UpdateOrderStatus(
	ctx context.Context,
	orderID uint,
	from, to Status,
	trackingNumber *string,
) error {

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
		    tracking_number = COALESCE($2, tracking_number),
		    updated_at = NOW()
		WHERE id = $3 AND status = $4
	`, to, trackingNumber, orderID, from)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		logger.FromCtx(ctx).Warn("guarded status update affected no rows",
			zap.Uint("order_id", orderID),
			zap.String("expected_status", string(from)),
		)
		return ErrStatusConflict
	}

	return nil
}

func (r *repository) collectOrders(ctx context.Context, rows *sql.Rows) ([]*Order, error) {
	orders := []*Order{}
	ids := []uint{}

	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.Status,
			&o.TotalAmount,
			&o.ShippingAddress,
			&o.TrackingNumber,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.fetchItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = itemsByOrder[o.ID]
	}

	return orders, nil
}

// fetchItems loads line items for a batch of orders in one query,
// preserving insertion order within each order.
func (r *repository) fetchItems(ctx context.Context, orderIDs []uint) (map[uint][]OrderItem, error) {
	ids := make([]int64, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, int64(id))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id ASC
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint][]OrderItem, len(orderIDs))
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
		); err != nil {
			return nil, err
		}
		out[item.OrderID] = append(out[item.OrderID], item)
	}

	return out, rows.Err()
}

package repository

import (
	"context"
	"fmt"

	"booth-pos-backend/internal/model"
	apperrors "booth-pos-backend/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	ListByEvent(ctx context.Context, eventID int, status *model.OrderStatus) ([]*model.Order, error)
	ListItemsByOrderIDs(ctx context.Context, orderIDs []int) ([]*model.OrderItem, error)
	FindByID(ctx context.Context, id, eventID int) (*model.Order, error)
	UpdateStatus(ctx context.Context, id, eventID int, status model.OrderStatus) (*model.Order, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) (*model.Order, error)
	CreateItems(ctx context.Context, tx pgx.Tx, orderID int, reserved []*model.ReservedItem) ([]model.OrderItem, error)
	FindStatusWithLock(ctx context.Context, tx pgx.Tx, id, eventID int) (model.OrderStatus, error)
	ItemQuantities(ctx context.Context, tx pgx.Tx, orderID int) ([]model.OrderItem, error)
	UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.OrderStatus) (*model.Order, error)
}

type OrderRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &OrderRepositoryImpl{
		pool: pool,
	}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, order *model.Order) (*model.Order, error) {
	query := `
		INSERT INTO orders (event_id, total_amount, status)
		VALUES ($1, $2, $3)
		RETURNING id, event_id, total_amount, status, created_at
	`

	err := tx.QueryRow(ctx, query,
		order.EventID, order.TotalAmount, order.Status,
	).Scan(
		&order.ID,
		&order.EventID,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// CreateItems persists one line item per reserved snapshot. Prices and names
// come from the reservation, not a re-read of the catalog.
func (r *OrderRepositoryImpl) CreateItems(ctx context.Context, tx pgx.Tx, orderID int, reserved []*model.ReservedItem) ([]model.OrderItem, error) {
	query := `
		INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	items := make([]model.OrderItem, 0, len(reserved))

	for _, snap := range reserved {
		var itemID int
		err := tx.QueryRow(ctx, query,
			orderID, snap.ProductID, snap.Name, snap.Price, snap.Quantity,
		).Scan(&itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}

		items = append(items, model.OrderItem{
			ID:              itemID,
			OrderID:         orderID,
			ProductID:       snap.ProductID,
			ProductName:     snap.Name,
			ProductPrice:    snap.Price,
			Quantity:        snap.Quantity,
			ProductImageURL: model.ResolveImageURL(snap.ImageURL),
		})
	}

	return items, nil
}

func (r *OrderRepositoryImpl) ListByEvent(ctx context.Context, eventID int, status *model.OrderStatus) ([]*model.Order, error) {
	// Optional filter stays parameterized, never interpolated.
	query := `
		SELECT id, event_id, total_amount, status, created_at
		FROM orders
		WHERE event_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY id DESC
	`

	rows, err := r.pool.Query(ctx, query, eventID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*model.Order, 0)

	for rows.Next() {
		var order model.Order
		err := rows.Scan(
			&order.ID,
			&order.EventID,
			&order.TotalAmount,
			&order.Status,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// ListItemsByOrderIDs fetches line items for all the given orders in one
// round trip. Image URLs come through the product's master catalog entry and
// survive catalog edits as LEFT JOINs, so an orphaned item still lists.
func (r *OrderRepositoryImpl) ListItemsByOrderIDs(ctx context.Context, orderIDs []int) ([]*model.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.product_name,
				oi.product_price, oi.quantity, mp.image_url
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		LEFT JOIN master_products mp ON p.master_product_id = mp.id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*model.OrderItem, 0)

	for rows.Next() {
		var item model.OrderItem
		var imagePath *string
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductPrice,
			&item.Quantity,
			&imagePath,
		)
		if err != nil {
			return nil, err
		}
		item.ProductImageURL = model.ResolveImageURL(imagePath)
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id, eventID int) (*model.Order, error) {
	query := `
		SELECT id, event_id, total_amount, status, created_at
		FROM orders
		WHERE id = $1 AND event_id = $2
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, query, id, eventID).Scan(
		&order.ID,
		&order.EventID,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

// UpdateStatus is the non-cancellation path: one row, scoped by event to
// block cross-event tampering. Cancelled orders never leave that state.
func (r *OrderRepositoryImpl) UpdateStatus(ctx context.Context, id, eventID int, status model.OrderStatus) (*model.Order, error) {
	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2 AND event_id = $3 AND status != $4
		RETURNING id, event_id, total_amount, status, created_at
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, query, status, id, eventID, model.OrderStatusCancelled).Scan(
		&order.ID,
		&order.EventID,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			// Distinguish a missing order from a terminal one.
			if _, findErr := r.FindByID(ctx, id, eventID); findErr != nil {
				return nil, findErr
			}
			return nil, apperrors.ErrInvalidOrderStatus
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &order, nil
}

func (r *OrderRepositoryImpl) FindStatusWithLock(ctx context.Context, tx pgx.Tx, id, eventID int) (model.OrderStatus, error) {
	query := `
		SELECT status
		FROM orders
		WHERE id = $1 AND event_id = $2
		FOR UPDATE
	`

	var status model.OrderStatus
	err := tx.QueryRow(ctx, query, id, eventID).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", apperrors.ErrOrderNotFound
		}
		return "", err
	}

	return status, nil
}

func (r *OrderRepositoryImpl) ItemQuantities(ctx context.Context, tx pgx.Tx, orderID int) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, product_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := tx.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderItem, 0)

	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductPrice,
			&item.Quantity,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *OrderRepositoryImpl) UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.OrderStatus) (*model.Order, error) {
	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2
		RETURNING id, event_id, total_amount, status, created_at
	`

	var order model.Order
	err := tx.QueryRow(ctx, query, status, id).Scan(
		&order.ID,
		&order.EventID,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &order, nil
}

package repository

import (
	"context"

	"booth-pos-backend/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository interface {
	Summary(ctx context.Context, eventID int) (model.StatsSummary, error)
	ProductSales(ctx context.Context, eventID int, filter model.SalesSummaryFilter) ([]model.ProductSalesDetail, error)
}

type StatsRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &StatsRepositoryImpl{
		pool: pool,
	}
}

// Summary aggregates revenue and volume for one event, cancelled orders
// excluded. Item counts come from a subquery so the order join cannot
// multiply total_amount.
func (r *StatsRepositoryImpl) Summary(ctx context.Context, eventID int) (model.StatsSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(total_amount), 0) AS total_revenue,
			COUNT(id) AS order_count,
			COALESCE((
				SELECT SUM(oi.quantity)
				FROM order_items oi
				JOIN orders o ON oi.order_id = o.id
				WHERE o.event_id = $1 AND o.status != $2
			), 0) AS total_items_sold
		FROM orders
		WHERE event_id = $1 AND status != $2
	`

	var summary model.StatsSummary
	err := r.pool.QueryRow(ctx, query, eventID, model.OrderStatusCancelled).Scan(
		&summary.TotalRevenue,
		&summary.OrderCount,
		&summary.TotalItemsSold,
	)
	if err != nil {
		return model.StatsSummary{}, err
	}

	return summary, nil
}

// ProductSales groups line items by product snapshot. Optional filters are
// bound parameters, never interpolated into the query text.
func (r *StatsRepositoryImpl) ProductSales(ctx context.Context, eventID int, filter model.SalesSummaryFilter) ([]model.ProductSalesDetail, error) {
	query := `
		SELECT
			oi.product_id,
			COALESCE(p.product_code, '') AS product_code,
			oi.product_name,
			oi.product_price AS unit_price,
			COALESCE(p.initial_stock, 0) AS initial_stock,
			SUM(oi.quantity) AS total_quantity,
			SUM(oi.product_price * oi.quantity) AS total_revenue_per_item
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE o.event_id = $1 AND o.status != $2
			AND ($3::text IS NULL OR p.product_code = $3)
			AND ($4::date IS NULL OR o.created_at::date >= $4)
			AND ($5::date IS NULL OR o.created_at::date <= $5)
		GROUP BY oi.product_id, oi.product_name, oi.product_price, p.product_code, p.initial_stock
		ORDER BY total_revenue_per_item DESC
	`

	rows, err := r.pool.Query(ctx, query,
		eventID, model.OrderStatusCancelled,
		filter.ProductCode, filter.StartDate, filter.EndDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]model.ProductSalesDetail, 0)

	for rows.Next() {
		var detail model.ProductSalesDetail
		err := rows.Scan(
			&detail.ProductID,
			&detail.ProductCode,
			&detail.ProductName,
			&detail.UnitPrice,
			&detail.InitialStock,
			&detail.TotalQuantity,
			&detail.TotalRevenue,
		)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations 啟動時建表，冪等
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			event_date TEXT NOT NULL,
			location TEXT,
			status TEXT NOT NULL DEFAULT 'upcoming',
			vendor_password TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS master_products (
			id SERIAL PRIMARY KEY,
			product_code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			default_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			image_url TEXT,
			category TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			event_id INT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			master_product_id INT NOT NULL REFERENCES master_products(id) ON DELETE CASCADE,
			product_code TEXT NOT NULL,
			name TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			initial_stock INT NOT NULL DEFAULT 0 CHECK (initial_stock >= 0),
			current_stock INT NOT NULL DEFAULT 0 CHECK (current_stock >= 0),
			UNIQUE (event_id, master_product_id)
		);

		CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			event_id INT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id INT NOT NULL,
			product_name TEXT NOT NULL,
			product_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			quantity INT NOT NULL DEFAULT 1 CHECK (quantity > 0)
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_orders_event_status ON orders(event_id, status);
		CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
	`)
	return err
}

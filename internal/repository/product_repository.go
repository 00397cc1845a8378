package repository

import (
	"context"

	"booth-pos-backend/internal/model"
	apperrors "booth-pos-backend/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository interface {
	ListByEvent(ctx context.Context, eventID int) ([]*model.Product, error)
	FindByID(ctx context.Context, id int) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int) error

	// Transaction methods. The caller owns the transaction lifecycle;
	// these never begin or commit.
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Product, error)
	Reserve(ctx context.Context, tx pgx.Tx, productID, eventID, quantity int) (*model.ReservedItem, error)
	RestoreStock(ctx context.Context, tx pgx.Tx, productID, quantity int) error
	UpdateStock(ctx context.Context, tx pgx.Tx, id int, price float64, initialStock, currentStock int) (*model.Product, error)
}

type ProductRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &ProductRepositoryImpl{
		pool: pool,
	}
}

func (r *ProductRepositoryImpl) ListByEvent(ctx context.Context, eventID int) ([]*model.Product, error) {
	query := `
		SELECT p.id, p.event_id, p.master_product_id, p.product_code, p.name,
				p.price, p.initial_stock, p.current_stock,
				mp.image_url, mp.category
		FROM products p
		JOIN master_products mp ON p.master_product_id = mp.id
		WHERE p.event_id = $1
		ORDER BY p.id
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*model.Product, 0)

	for rows.Next() {
		var product model.Product
		err := rows.Scan(
			&product.ID,
			&product.EventID,
			&product.MasterProductID,
			&product.ProductCode,
			&product.Name,
			&product.Price,
			&product.InitialStock,
			&product.CurrentStock,
			&product.ImageURL,
			&product.Category,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Product, error) {
	query := `
		SELECT p.id, p.event_id, p.master_product_id, p.product_code, p.name,
				p.price, p.initial_stock, p.current_stock,
				mp.image_url, mp.category
		FROM products p
		JOIN master_products mp ON p.master_product_id = mp.id
		WHERE p.id = $1
	`

	var product model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.EventID,
		&product.MasterProductID,
		&product.ProductCode,
		&product.Name,
		&product.Price,
		&product.InitialStock,
		&product.CurrentStock,
		&product.ImageURL,
		&product.Category,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (r *ProductRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Product, error) {
	query := `
		SELECT id, event_id, master_product_id, product_code, name,
				price, initial_stock, current_stock
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var product model.Product
	err := tx.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.EventID,
		&product.MasterProductID,
		&product.ProductCode,
		&product.Name,
		&product.Price,
		&product.InitialStock,
		&product.CurrentStock,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := `
		INSERT INTO products (
		event_id, master_product_id, product_code, name, price, initial_stock, current_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, event_id, master_product_id, product_code, name,
			price, initial_stock, current_stock
	`

	err := r.pool.QueryRow(ctx, query,
		product.EventID, product.MasterProductID, product.ProductCode,
		product.Name, product.Price, product.InitialStock, product.CurrentStock,
	).Scan(
		&product.ID,
		&product.EventID,
		&product.MasterProductID,
		&product.ProductCode,
		&product.Name,
		&product.Price,
		&product.InitialStock,
		&product.CurrentStock,
	)

	if err != nil {
		return nil, err
	}

	return product, nil
}

// Reserve locks the product row scoped to the event, checks availability and
// decrements current_stock. It returns the snapshot later used for the order
// item, taken under the same lock.
func (r *ProductRepositoryImpl) Reserve(ctx context.Context, tx pgx.Tx, productID, eventID, quantity int) (*model.ReservedItem, error) {
	query := `
		SELECT p.id, p.name, p.price, p.current_stock, mp.image_url
		FROM products p
		JOIN master_products mp ON p.master_product_id = mp.id
		WHERE p.id = $1 AND p.event_id = $2
		FOR UPDATE OF p
	`

	var (
		id           int
		name         string
		price        float64
		currentStock int
		imageURL     *string
	)
	err := tx.QueryRow(ctx, query, productID, eventID).Scan(&id, &name, &price, &currentStock, &imageURL)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	if currentStock < quantity {
		return nil, &apperrors.InsufficientStockError{ProductName: name}
	}

	update := `
		UPDATE products
		SET current_stock = current_stock - $1
		WHERE id = $2 AND current_stock >= $1
	`

	result, err := tx.Exec(ctx, update, quantity, id)
	if err != nil {
		return nil, err
	}

	// Unreachable while the row lock is held; kept as a guard against a
	// writer outside this repository.
	if result.RowsAffected() == 0 {
		return nil, &apperrors.InsufficientStockError{ProductName: name}
	}

	return &model.ReservedItem{
		ProductID: id,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		ImageURL:  imageURL,
	}, nil
}

// RestoreStock returns previously reserved units to the pool. No upper clamp:
// every decrement goes through Reserve, so restitution of recorded order
// items cannot push current_stock past initial_stock.
func (r *ProductRepositoryImpl) RestoreStock(ctx context.Context, tx pgx.Tx, productID, quantity int) error {
	query := `
		UPDATE products
		SET current_stock = current_stock + $1
		WHERE id = $2
	`

	result, err := tx.Exec(ctx, query, quantity, productID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepositoryImpl) UpdateStock(ctx context.Context, tx pgx.Tx, id int, price float64, initialStock, currentStock int) (*model.Product, error) {
	query := `
		UPDATE products
		SET price = $1, initial_stock = $2, current_stock = $3
		WHERE id = $4
		RETURNING id, event_id, master_product_id, product_code, name,
			price, initial_stock, current_stock
	`

	var product model.Product
	err := tx.QueryRow(ctx, query, price, initialStock, currentStock, id).Scan(
		&product.ID,
		&product.EventID,
		&product.MasterProductID,
		&product.ProductCode,
		&product.Name,
		&product.Price,
		&product.InitialStock,
		&product.CurrentStock,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrProductNotFound
	}

	return nil
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"booth-pos-backend/internal/model"
	apperrors "booth-pos-backend/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MasterProductRepository interface {
	Create(ctx context.Context, product *model.MasterProduct) (*model.MasterProduct, error)
	List(ctx context.Context, includeInactive bool) ([]*model.MasterProduct, error)
	FindByID(ctx context.Context, id int) (*model.MasterProduct, error)
	Update(ctx context.Context, id int, params model.UpdateMasterProductParams) (*model.MasterProduct, error)
	SetActive(ctx context.Context, id int, active bool) error
}

type MasterProductRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewMasterProductRepository(pool *pgxpool.Pool) MasterProductRepository {
	return &MasterProductRepositoryImpl{
		pool: pool,
	}
}

func (r *MasterProductRepositoryImpl) Create(ctx context.Context, product *model.MasterProduct) (*model.MasterProduct, error) {
	query := `
		INSERT INTO master_products (product_code, name, default_price, category, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, product_code, name, default_price, image_url, category, is_active, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.ProductCode, product.Name, product.DefaultPrice, product.Category,
	).Scan(
		&product.ID,
		&product.ProductCode,
		&product.Name,
		&product.DefaultPrice,
		&product.ImageURL,
		&product.Category,
		&product.IsActive,
		&product.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *MasterProductRepositoryImpl) List(ctx context.Context, includeInactive bool) ([]*model.MasterProduct, error) {
	query := `
		SELECT id, product_code, name, default_price, image_url, category, is_active, created_at
		FROM master_products
		WHERE is_active OR $1
		ORDER BY product_code
	`

	rows, err := r.pool.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*model.MasterProduct, 0)

	for rows.Next() {
		var product model.MasterProduct
		err := rows.Scan(
			&product.ID,
			&product.ProductCode,
			&product.Name,
			&product.DefaultPrice,
			&product.ImageURL,
			&product.Category,
			&product.IsActive,
			&product.CreatedAt,
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

func (r *MasterProductRepositoryImpl) FindByID(ctx context.Context, id int) (*model.MasterProduct, error) {
	query := `
		SELECT id, product_code, name, default_price, image_url, category, is_active, created_at
		FROM master_products
		WHERE id = $1
	`

	var product model.MasterProduct
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.ProductCode,
		&product.Name,
		&product.DefaultPrice,
		&product.ImageURL,
		&product.Category,
		&product.IsActive,
		&product.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrMasterProductNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (r *MasterProductRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateMasterProductParams) (*model.MasterProduct, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}

	if params.DefaultPrice != nil {
		sets = append(sets, fmt.Sprintf("default_price = $%d", argPos))
		args = append(args, *params.DefaultPrice)
		argPos++
	}

	if params.Category != nil {
		sets = append(sets, fmt.Sprintf("category = $%d", argPos))
		args = append(args, *params.Category)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE master_products
		SET %s
		WHERE id = $%d
        RETURNING id, product_code, name, default_price, image_url, category, is_active, created_at
	`, strings.Join(sets, ", "), argPos)

	var product model.MasterProduct

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&product.ID,
		&product.ProductCode,
		&product.Name,
		&product.DefaultPrice,
		&product.ImageURL,
		&product.Category,
		&product.IsActive,
		&product.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrMasterProductNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (r *MasterProductRepositoryImpl) SetActive(ctx context.Context, id int, active bool) error {
	query := `
		UPDATE master_products
		SET is_active = $1
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, active, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrMasterProductNotFound
	}

	return nil
}

package service

import (
	"context"
	"errors"

	"booth-pos-backend/internal/model"
	"booth-pos-backend/internal/repository"
	apperrors "booth-pos-backend/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductService interface {
	ListByEvent(ctx context.Context, eventID int) ([]*model.Product, error)
	GetByID(ctx context.Context, id int) (*model.Product, error)
	// AddToEvent 以 master product 為模板建立場次庫存，current = initial
	AddToEvent(ctx context.Context, eventID int, req model.AddProductToEventRequest) (*model.Product, error)
	// Update 重算庫存：調整 initial_stock 時保持已售數量不變
	Update(ctx context.Context, id int, params model.UpdateProductParams) (*model.Product, error)
	Delete(ctx context.Context, id int) error
}

type ProductServiceImpl struct {
	pool              *pgxpool.Pool
	repository        repository.ProductRepository
	eventRepo         repository.EventRepository
	masterProductRepo repository.MasterProductRepository
}

func NewProductService(
	pool *pgxpool.Pool,
	productRepository repository.ProductRepository,
	eventRepository repository.EventRepository,
	masterProductRepository repository.MasterProductRepository,
) ProductService {
	return &ProductServiceImpl{
		pool:              pool,
		repository:        productRepository,
		eventRepo:         eventRepository,
		masterProductRepo: masterProductRepository,
	}
}

func (s *ProductServiceImpl) ListByEvent(ctx context.Context, eventID int) ([]*model.Product, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repository.ListByEvent(ctx, eventID)
}

func (s *ProductServiceImpl) GetByID(ctx context.Context, id int) (*model.Product, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *ProductServiceImpl) AddToEvent(ctx context.Context, eventID int, req model.AddProductToEventRequest) (*model.Product, error) {
	if req.InitialStock < 0 {
		return nil, apperrors.ErrInvalidInput
	}

	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	master, err := s.masterProductRepo.FindByID(ctx, req.MasterProductID)
	if err != nil {
		return nil, err
	}
	if !master.IsActive {
		return nil, apperrors.ErrInvalidInput
	}

	price := master.DefaultPrice
	if req.Price != nil {
		price = *req.Price
	}

	product := &model.Product{
		EventID:         eventID,
		MasterProductID: master.ID,
		ProductCode:     master.ProductCode,
		Name:            master.Name,
		Price:           price,
		InitialStock:    req.InitialStock,
		CurrentStock:    req.InitialStock,
	}

	product, err = s.repository.Create(ctx, product)
	if err != nil {
		return nil, apperrors.WrapStorage("create product", err)
	}

	product.ImageURL = master.ImageURL
	product.Category = master.Category
	return product, nil
}

func (s *ProductServiceImpl) Update(ctx context.Context, id int, params model.UpdateProductParams) (*model.Product, error) {
	if params.Price == nil && params.InitialStock == nil {
		return nil, apperrors.ErrInvalidInput
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, apperrors.WrapStorage("begin product update", err)
	}
	defer tx.Rollback(ctx)

	product, err := s.repository.FindByIDWithLock(ctx, tx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrProductNotFound) {
			return nil, err
		}
		return nil, apperrors.WrapStorage("read product", err)
	}

	newPrice := product.Price
	newInitial := product.InitialStock
	newCurrent := product.CurrentStock

	if params.Price != nil {
		newPrice = *params.Price
	}

	if params.InitialStock != nil {
		// current 跟隨 initial 重算，已售數量不變：
		// sold = old_initial - old_current, new_current = new_initial - sold
		sold := product.Sold()
		newInitial = *params.InitialStock
		newCurrent = newInitial - sold

		if newCurrent < 0 {
			return nil, apperrors.ErrStockBelowSold
		}
	}

	updated, err := s.repository.UpdateStock(ctx, tx, id, newPrice, newInitial, newCurrent)
	if err != nil {
		return nil, apperrors.WrapStorage("update product stock", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.WrapStorage("commit product update", err)
	}

	return updated, nil
}

func (s *ProductServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repository.Delete(ctx, id)
}

package service

import (
	"context"

	"booth-pos-backend/internal/model"
	"booth-pos-backend/internal/repository"
)

type MasterProductService interface {
	List(ctx context.Context, includeInactive bool) ([]*model.MasterProduct, error)
	GetByID(ctx context.Context, id int) (*model.MasterProduct, error)
	Create(ctx context.Context, req model.CreateMasterProductRequest) (*model.MasterProduct, error)
	Update(ctx context.Context, id int, params model.UpdateMasterProductParams) (*model.MasterProduct, error)
	SetActive(ctx context.Context, id int, active bool) error
}

type MasterProductServiceImpl struct {
	repo repository.MasterProductRepository
}

func NewMasterProductService(repo repository.MasterProductRepository) MasterProductService {
	return &MasterProductServiceImpl{repo: repo}
}

func (s *MasterProductServiceImpl) List(ctx context.Context, includeInactive bool) ([]*model.MasterProduct, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *MasterProductServiceImpl) GetByID(ctx context.Context, id int) (*model.MasterProduct, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MasterProductServiceImpl) Create(ctx context.Context, req model.CreateMasterProductRequest) (*model.MasterProduct, error) {
	product := &model.MasterProduct{
		ProductCode:  req.ProductCode,
		Name:         req.Name,
		DefaultPrice: req.DefaultPrice,
		Category:     req.Category,
	}
	return s.repo.Create(ctx, product)
}

func (s *MasterProductServiceImpl) Update(ctx context.Context, id int, params model.UpdateMasterProductParams) (*model.MasterProduct, error) {
	return s.repo.Update(ctx, id, params)
}

func (s *MasterProductServiceImpl) SetActive(ctx context.Context, id int, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

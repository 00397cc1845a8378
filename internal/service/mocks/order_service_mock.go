package mocks

import (
	"context"

	"booth-pos-backend/internal/model"

	"github.com/stretchr/testify/mock"
)

type OrderServiceMock struct {
	mock.Mock
}

func NewOrderServiceMock() *OrderServiceMock {
	return &OrderServiceMock{}
}

func (m *OrderServiceMock) Create(ctx context.Context, eventID int, req model.CreateOrderRequest) (*model.OrderWithItems, error) {
	args := m.Called(ctx, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderWithItems), args.Error(1)
}

func (m *OrderServiceMock) UpdateStatus(ctx context.Context, eventID, orderID int, status model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, eventID, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *OrderServiceMock) List(ctx context.Context, eventID int, status *model.OrderStatus) ([]*model.OrderWithItems, error) {
	args := m.Called(ctx, eventID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.OrderWithItems), args.Error(1)
}

package service

import (
	"context"
	"errors"

	"booth-pos-backend/internal/model"
	"booth-pos-backend/internal/queue"
	"booth-pos-backend/internal/repository"
	apperrors "booth-pos-backend/pkg/app_errors"
	"booth-pos-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type OrderService interface {
	// Create 原子下單：驗證、扣庫存、寫入訂單與明細，同一交易
	Create(ctx context.Context, eventID int, req model.CreateOrderRequest) (*model.OrderWithItems, error)
	// UpdateStatus 狀態轉移；轉為 cancelled 時歸還庫存
	UpdateStatus(ctx context.Context, eventID, orderID int, status model.OrderStatus) (*model.Order, error)
	// List 查詢訂單及明細，批次讀取避免 N+1
	List(ctx context.Context, eventID int, status *model.OrderStatus) ([]*model.OrderWithItems, error)
}

type OrderServiceImpl struct {
	pool        *pgxpool.Pool
	repository  repository.OrderRepository
	productRepo repository.ProductRepository
	eventQueue  queue.OrderEventQueue
}

func NewOrderService(
	pool *pgxpool.Pool,
	orderRepository repository.OrderRepository,
	productRepository repository.ProductRepository,
	eventQueue queue.OrderEventQueue,
) OrderService {
	return &OrderServiceImpl{
		pool:        pool,
		repository:  orderRepository,
		productRepo: productRepository,
		eventQueue:  eventQueue,
	}
}

func (s *OrderServiceImpl) Create(ctx context.Context, eventID int, req model.CreateOrderRequest) (*model.OrderWithItems, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperrors.ErrInvalidInput
		}
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, apperrors.WrapStorage("begin order transaction", err)
	}
	defer tx.Rollback(ctx)

	// Items are reserved in request order. The first shortfall aborts the
	// whole call; the deferred rollback undoes earlier decrements, so no
	// partial reservation ever survives.
	reserved := make([]*model.ReservedItem, 0, len(req.Items))
	totalAmount := 0.0

	for _, item := range req.Items {
		snap, err := s.productRepo.Reserve(ctx, tx, item.ProductID, eventID, item.Quantity)
		if err != nil {
			if errors.Is(err, apperrors.ErrProductNotFound) || errors.Is(err, apperrors.ErrInsufficientStock) {
				return nil, err
			}
			return nil, apperrors.WrapStorage("reserve stock", err)
		}
		reserved = append(reserved, snap)
		totalAmount += snap.Price * float64(snap.Quantity)
	}

	order := &model.Order{
		EventID:     eventID,
		TotalAmount: totalAmount,
		Status:      model.OrderStatusPending,
	}

	order, err = s.repository.Create(ctx, tx, order)
	if err != nil {
		return nil, apperrors.WrapStorage("create order", err)
	}

	items, err := s.repository.CreateItems(ctx, tx, order.ID, reserved)
	if err != nil {
		return nil, apperrors.WrapStorage("create order items", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.WrapStorage("commit order", err)
	}

	s.publishEvent(queue.OrderEventCreated, order.ID, eventID)

	return &model.OrderWithItems{
		Order: *order,
		Items: items,
	}, nil
}

func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, eventID, orderID int, status model.OrderStatus) (*model.Order, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidOrderStatus
	}

	if status == model.OrderStatusCancelled {
		return s.cancel(ctx, eventID, orderID)
	}

	// pending 不是合法的轉移目標
	if status != model.OrderStatusCompleted {
		return nil, apperrors.ErrInvalidOrderStatus
	}

	return s.repository.UpdateStatus(ctx, orderID, eventID, status)
}

// cancel restores the stock of every line item and marks the order
// cancelled, all inside one transaction. Cancelling an already cancelled
// order is a no-op returning the current row, never a second restitution.
func (s *OrderServiceImpl) cancel(ctx context.Context, eventID, orderID int) (*model.Order, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, apperrors.WrapStorage("begin cancel transaction", err)
	}
	defer tx.Rollback(ctx)

	currentStatus, err := s.repository.FindStatusWithLock(ctx, tx, orderID, eventID)
	if err != nil {
		if errors.Is(err, apperrors.ErrOrderNotFound) {
			return nil, err
		}
		return nil, apperrors.WrapStorage("read order status", err)
	}

	if currentStatus == model.OrderStatusCancelled {
		return s.repository.FindByID(ctx, orderID, eventID)
	}

	items, err := s.repository.ItemQuantities(ctx, tx, orderID)
	if err != nil {
		return nil, apperrors.WrapStorage("read order items", err)
	}

	// pending 與 completed 都可取消：兩者都佔用了庫存
	for _, item := range items {
		if err := s.productRepo.RestoreStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return nil, apperrors.WrapStorage("restore stock", err)
		}
	}

	order, err := s.repository.UpdateStatusWithLock(ctx, tx, orderID, model.OrderStatusCancelled)
	if err != nil {
		return nil, apperrors.WrapStorage("mark order cancelled", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.WrapStorage("commit cancel", err)
	}

	s.publishEvent(queue.OrderEventCancelled, orderID, eventID)

	return order, nil
}

func (s *OrderServiceImpl) List(ctx context.Context, eventID int, status *model.OrderStatus) ([]*model.OrderWithItems, error) {
	if status != nil && !status.IsValid() {
		return nil, apperrors.ErrInvalidOrderStatus
	}

	orders, err := s.repository.ListByEvent(ctx, eventID, status)
	if err != nil {
		return nil, apperrors.WrapStorage("list orders", err)
	}

	result := make([]*model.OrderWithItems, 0, len(orders))
	if len(orders) == 0 {
		return result, nil
	}

	orderIDs := make([]int, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}

	items, err := s.repository.ListItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, apperrors.WrapStorage("list order items", err)
	}

	itemsByOrder := make(map[int][]model.OrderItem, len(orders))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], *item)
	}

	for _, order := range orders {
		grouped := itemsByOrder[order.ID]
		if grouped == nil {
			// 異常資料：沒有明細的訂單以空列表呈現
			grouped = []model.OrderItem{}
		}
		result = append(result, &model.OrderWithItems{
			Order: *order,
			Items: grouped,
		})
	}

	return result, nil
}

// publishEvent runs after commit with a background context so a client
// disconnect cannot drop the notification. Publish failure only loses cache
// freshness, the TTL covers it.
func (s *OrderServiceImpl) publishEvent(eventType string, orderID, eventID int) {
	err := s.eventQueue.Publish(context.Background(), &queue.OrderEvent{
		Type:    eventType,
		OrderID: orderID,
		EventID: eventID,
	})
	if err != nil {
		logger.WithComponent("order_service").Warn("publish order event failed",
			zap.String("type", eventType),
			zap.Int("order_id", orderID),
			zap.Error(err))
	}
}

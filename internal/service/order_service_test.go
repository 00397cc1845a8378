package service_test

import (
	"context"
	"testing"

	"booth-pos-backend/internal/model"
	"booth-pos-backend/internal/queue"
	apperrors "booth-pos-backend/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		setupTestWithTruncate(t)
		stub := &stubOrderEventQueue{}
		orderService := newTestOrderService(stub)

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 10)

		req := model.CreateOrderRequest{Items: []model.CreateOrderItemRequest{
			{ProductID: productID, Quantity: 3},
		}}

		order, err := orderService.Create(ctx, eventID, req)
		require.NoError(t, err)
		require.NotNil(t, order)

		assert.Equal(t, model.OrderStatusPending, order.Status)
		assert.Equal(t, 150.0, order.TotalAmount)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Badge", order.Items[0].ProductName)
		assert.Equal(t, 50.0, order.Items[0].ProductPrice)
		assert.Equal(t, 3, order.Items[0].Quantity)

		_, current := getProductStock(t, productID)
		assert.Equal(t, 7, current)

		events := stub.published()
		require.Len(t, events, 1)
		assert.Equal(t, queue.OrderEventCreated, events[0].Type)
		assert.Equal(t, order.ID, events[0].OrderID)
	})

	t.Run("MultipleItemsTotal", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")
		badgeMaster := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		printMaster := createTestMasterProduct(t, "PRINT-01", "Print", 120)
		badgeID := createTestProduct(t, eventID, badgeMaster, 50, 10, 10)
		printID := createTestProduct(t, eventID, printMaster, 120, 5, 5)

		req := model.CreateOrderRequest{Items: []model.CreateOrderItemRequest{
			{ProductID: badgeID, Quantity: 2},
			{ProductID: printID, Quantity: 1},
		}}

		order, err := orderService.Create(ctx, eventID, req)
		require.NoError(t, err)
		assert.Equal(t, 220.0, order.TotalAmount)
		assert.Len(t, order.Items, 2)
	})

	t.Run("Failed - ErrEmptyOrder", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")

		_, err := orderService.Create(ctx, eventID, model.CreateOrderRequest{})
		assert.ErrorIs(t, err, apperrors.ErrEmptyOrder)
	})

	t.Run("Failed - ErrInvalidInput on zero quantity", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 10)

		req := model.CreateOrderRequest{Items: []model.CreateOrderItemRequest{
			{ProductID: productID, Quantity: 0},
		}}

		_, err := orderService.Create(ctx, eventID, req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - ErrProductNotFound", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")

		req := model.CreateOrderRequest{Items: []model.CreateOrderItemRequest{
			{ProductID: 9999, Quantity: 1},
		}}

		_, err := orderService.Create(ctx, eventID, req)
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})

	t.Run("Failed - product of another event", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")
		otherEventID := createTestEvent(t, "Winter Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, otherEventID, masterID, 50, 10, 10)

		req := model.CreateOrderRequest{Items: []model.CreateOrderItemRequest{
			{ProductID: productID, Quantity: 1},
		}}

		_, err := orderService.Create(ctx, eventID, req)
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})

	t.Run("Failed - ErrInsufficientStock", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 2)

		req := model.CreateOrderRequest{Items: []model.CreateOrderItemRequest{
			{ProductID: productID, Quantity: 3},
		}}

		_, err := orderService.Create(ctx, eventID, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

		var stockErr *apperrors.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Badge", stockErr.ProductName)

		// 庫存不變
		_, current := getProductStock(t, productID)
		assert.Equal(t, 2, current)
	})

	t.Run("Atomic - second item shortfall rolls back the first", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")
		badgeMaster := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		printMaster := createTestMasterProduct(t, "PRINT-01", "Print", 120)
		badgeID := createTestProduct(t, eventID, badgeMaster, 50, 10, 10)
		printID := createTestProduct(t, eventID, printMaster, 120, 5, 1)

		req := model.CreateOrderRequest{Items: []model.CreateOrderItemRequest{
			{ProductID: badgeID, Quantity: 2},
			{ProductID: printID, Quantity: 3},
		}}

		_, err := orderService.Create(ctx, eventID, req)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

		_, badgeStock := getProductStock(t, badgeID)
		_, printStock := getProductStock(t, printID)
		assert.Equal(t, 10, badgeStock)
		assert.Equal(t, 1, printStock)
		assert.Equal(t, 0, countOrders(t, eventID))
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending to completed", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 10)

		created, err := orderService.Create(ctx, eventID, model.CreateOrderRequest{
			Items: []model.CreateOrderItemRequest{{ProductID: productID, Quantity: 1}},
		})
		require.NoError(t, err)

		order, err := orderService.UpdateStatus(ctx, eventID, created.ID, model.OrderStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCompleted, order.Status)

		// 完成不歸還庫存
		_, current := getProductStock(t, productID)
		assert.Equal(t, 9, current)
	})

	t.Run("Cancel pending restores stock", func(t *testing.T) {
		setupTestWithTruncate(t)
		stub := &stubOrderEventQueue{}
		orderService := newTestOrderService(stub)

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 10)

		created, err := orderService.Create(ctx, eventID, model.CreateOrderRequest{
			Items: []model.CreateOrderItemRequest{{ProductID: productID, Quantity: 4}},
		})
		require.NoError(t, err)

		order, err := orderService.UpdateStatus(ctx, eventID, created.ID, model.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCancelled, order.Status)

		_, current := getProductStock(t, productID)
		assert.Equal(t, 10, current)

		events := stub.published()
		require.Len(t, events, 2)
		assert.Equal(t, queue.OrderEventCancelled, events[1].Type)
	})

	t.Run("Cancel completed restores stock", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 10)

		created, err := orderService.Create(ctx, eventID, model.CreateOrderRequest{
			Items: []model.CreateOrderItemRequest{{ProductID: productID, Quantity: 4}},
		})
		require.NoError(t, err)

		_, err = orderService.UpdateStatus(ctx, eventID, created.ID, model.OrderStatusCompleted)
		require.NoError(t, err)

		order, err := orderService.UpdateStatus(ctx, eventID, created.ID, model.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCancelled, order.Status)

		_, current := getProductStock(t, productID)
		assert.Equal(t, 10, current)
	})

	t.Run("Cancel twice is idempotent", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 10)

		created, err := orderService.Create(ctx, eventID, model.CreateOrderRequest{
			Items: []model.CreateOrderItemRequest{{ProductID: productID, Quantity: 4}},
		})
		require.NoError(t, err)

		_, err = orderService.UpdateStatus(ctx, eventID, created.ID, model.OrderStatusCancelled)
		require.NoError(t, err)

		// 第二次取消不得再次歸還庫存
		order, err := orderService.UpdateStatus(ctx, eventID, created.ID, model.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCancelled, order.Status)

		_, current := getProductStock(t, productID)
		assert.Equal(t, 10, current)
	})

	t.Run("Failed - cancelled order cannot complete", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 10)

		created, err := orderService.Create(ctx, eventID, model.CreateOrderRequest{
			Items: []model.CreateOrderItemRequest{{ProductID: productID, Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = orderService.UpdateStatus(ctx, eventID, created.ID, model.OrderStatusCancelled)
		require.NoError(t, err)

		_, err = orderService.UpdateStatus(ctx, eventID, created.ID, model.OrderStatusCompleted)
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrderStatus)
	})

	t.Run("Failed - ErrOrderNotFound", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")

		_, err := orderService.UpdateStatus(ctx, eventID, 9999, model.OrderStatusCompleted)
		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	})

	t.Run("Failed - order of another event is not visible", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")
		otherEventID := createTestEvent(t, "Winter Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 10)

		created, err := orderService.Create(ctx, eventID, model.CreateOrderRequest{
			Items: []model.CreateOrderItemRequest{{ProductID: productID, Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = orderService.UpdateStatus(ctx, otherEventID, created.ID, model.OrderStatusCancelled)
		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)

		assert.Equal(t, model.OrderStatusPending, getOrderStatus(t, created.ID))
	})

	t.Run("Failed - invalid target status", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")

		_, err := orderService.UpdateStatus(ctx, eventID, 1, model.OrderStatus("shipped"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidOrderStatus)
	})
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Groups items per order", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")
		badgeMaster := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		printMaster := createTestMasterProduct(t, "PRINT-01", "Print", 120)
		badgeID := createTestProduct(t, eventID, badgeMaster, 50, 10, 10)
		printID := createTestProduct(t, eventID, printMaster, 120, 5, 5)

		first, err := orderService.Create(ctx, eventID, model.CreateOrderRequest{
			Items: []model.CreateOrderItemRequest{
				{ProductID: badgeID, Quantity: 1},
				{ProductID: printID, Quantity: 2},
			},
		})
		require.NoError(t, err)

		second, err := orderService.Create(ctx, eventID, model.CreateOrderRequest{
			Items: []model.CreateOrderItemRequest{{ProductID: badgeID, Quantity: 3}},
		})
		require.NoError(t, err)

		orders, err := orderService.List(ctx, eventID, nil)
		require.NoError(t, err)
		require.Len(t, orders, 2)

		// 最新的訂單在前
		assert.Equal(t, second.ID, orders[0].ID)
		assert.Len(t, orders[0].Items, 1)
		assert.Equal(t, first.ID, orders[1].ID)
		assert.Len(t, orders[1].Items, 2)
	})

	t.Run("Status filter", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 10)

		created, err := orderService.Create(ctx, eventID, model.CreateOrderRequest{
			Items: []model.CreateOrderItemRequest{{ProductID: productID, Quantity: 1}},
		})
		require.NoError(t, err)
		_, err = orderService.Create(ctx, eventID, model.CreateOrderRequest{
			Items: []model.CreateOrderItemRequest{{ProductID: productID, Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = orderService.UpdateStatus(ctx, eventID, created.ID, model.OrderStatusCancelled)
		require.NoError(t, err)

		cancelled := model.OrderStatusCancelled
		orders, err := orderService.List(ctx, eventID, &cancelled)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, created.ID, orders[0].ID)
	})

	t.Run("Empty event returns empty slice", func(t *testing.T) {
		setupTestWithTruncate(t)
		orderService := newTestOrderService(&stubOrderEventQueue{})

		eventID := createTestEvent(t, "Summer Con")

		orders, err := orderService.List(ctx, eventID, nil)
		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Len(t, orders, 0)
	})
}

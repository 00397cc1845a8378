package model

import "time"

// OrderStatus 訂單狀態類型
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid 驗證狀態是否有效
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:   {OrderStatusCompleted, OrderStatusCancelled},
		OrderStatusCompleted: {OrderStatusCancelled},
		OrderStatusCancelled: {}, // cancelled 為終態
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// Order 訂單模型
type Order struct {
	ID          int         `json:"id" db:"id"`
	EventID     int         `json:"event_id" db:"event_id"`
	TotalAmount float64     `json:"total_amount" db:"total_amount"`
	Status      OrderStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"timestamp" db:"created_at"`
}

// OrderItem 訂單明細，name/price 為下單時快照
type OrderItem struct {
	ID           int     `json:"id" db:"id"`
	OrderID      int     `json:"order_id" db:"order_id"`
	ProductID    int     `json:"product_id" db:"product_id"`
	ProductName  string  `json:"product_name" db:"product_name"`
	ProductPrice float64 `json:"product_price" db:"product_price"`
	Quantity     int     `json:"quantity" db:"quantity"`

	ProductImageURL *string `json:"product_image_url,omitempty" db:"-"`
}

// OrderWithItems 含明細的完整訂單
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// CreateOrderRequest 創建訂單請求
type CreateOrderRequest struct {
	Items []CreateOrderItemRequest `json:"items" binding:"required,dive"`
}

type CreateOrderItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

// UpdateOrderStatusRequest 更新訂單狀態請求
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

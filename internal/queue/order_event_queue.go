package queue

import "context"

const (
	OrderEventCreated   = "created"
	OrderEventCancelled = "cancelled"
)

// OrderEvent is published after an order transaction commits. It carries ids
// only; consumers re-read whatever state they need.
type OrderEvent struct {
	Type    string `json:"type"`
	OrderID int    `json:"order_id"`
	EventID int    `json:"event_id"`
}

type Delivery struct {
	Data *OrderEvent
	Ack  func()
	Nack func(requeue bool)
}

type OrderEventQueue interface {
	// 發送訂單事件到隊列
	Publish(ctx context.Context, event *OrderEvent) error
	// 訂閱訂單事件
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

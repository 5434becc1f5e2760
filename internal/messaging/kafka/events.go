package kafka

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	// Order события
	EventTypeOrderCreated EventType = "order.created"
)

// Topics для Kafka
const (
	TopicOrderEvents = "storefront.order.events"
)

// OrderEventItem — позиция заказа в событии (без данных товара).
type OrderEventItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
}

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType     EventType        `json:"event_type"`
	OrderID       string           `json:"order_id"`
	UserID        string           `json:"user_id"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	PaymentStatus string           `json:"payment_status"`
	OrderStatus   string           `json:"order_status"`
	Items         []OrderEventItem `json:"items"`
	Timestamp     time.Time        `json:"timestamp"`
}

// NewOrderCreatedEvent создает событие order.created по принятому заказу
func NewOrderCreatedEvent(order domain.Order) *OrderEvent {
	items := make([]OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderEventItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return &OrderEvent{
		EventType:     EventTypeOrderCreated,
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalAmount:   order.TotalAmount,
		PaymentStatus: string(order.PaymentStatus),
		OrderStatus:   string(order.OrderStatus),
		Items:         items,
		Timestamp:     time.Now().UTC(),
	}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа в витрине.
type OrderStatus string

const (
	// OrderStatusProcessing — заказ принят и готовится к отправке.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered — заказ доставлен покупателю.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus описывает состояние оплаты заказа.
type PaymentStatus string

const (
	// PaymentStatusPending — оплата ещё не подтверждена.
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusCompleted — оплата прошла успешно.
	PaymentStatusCompleted PaymentStatus = "completed"
	// PaymentStatusFailed — оплата отклонена.
	PaymentStatusFailed PaymentStatus = "failed"
)

// DefaultPaymentMethod используется, когда покупатель не указал способ оплаты.
const DefaultPaymentMethod = "UPI"

// ShippingAddress — адрес доставки; задаётся при создании заказа и не меняется.
type ShippingAddress struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// OrderItem представляет одну позицию заказа.
// Name, Price и Image — снимок данных товара на момент покупки.
type OrderItem struct {
	// ID позиции нужен для однозначной идентификации и аудита.
	ID string `json:"id"`
	// ProductID — слабая ссылка на товар; товар может быть удалён независимо от заказа.
	ProductID string `json:"productId"`
	// Name — название товара на момент заказа.
	Name string `json:"name"`
	// Price — цена за единицу на момент заказа.
	Price decimal.Decimal `json:"price"`
	// Quantity — количество единиц товара.
	Quantity int32 `json:"quantity"`
	// Image — ссылка на изображение товара.
	Image string `json:"image,omitempty"`
	// Product заполняется при отдаче заказа наружу (join по ProductID).
	// nil, если товар снят с продажи или удалён.
	Product *Product `json:"product,omitempty"`
}

// Order агрегирует состояние покупки и её позиции.
// После создания заказ неизменяем для этого сервиса.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	OrderStatus     OrderStatus     `json:"orderStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.UserID == "" {
		errs = append(errs, ErrUserRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if o.TotalAmount.IsNegative() {
		errs = append(errs, ErrTotalAmountNegative)
	}
	if o.ShippingAddress == (ShippingAddress{}) {
		errs = append(errs, ErrShippingAddressRequired)
	}

	for _, item := range o.Items {
		if item.ProductID == "" {
			errs = append(errs, ErrItemProductRequired)
		}
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.Price.IsNegative() {
			errs = append(errs, ErrItemPriceInvalid)
		}
	}

	return errs
}

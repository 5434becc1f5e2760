package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка отсутствующего идентификатора покупателя.
	ErrUserRequired = errors.New("user id is required")
	// Ошибка отсутствия хотя бы одного товара в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отсутствующей или нулевой суммы заказа.
	ErrTotalAmountRequired = errors.New("total amount is required")
	// Ошибка отрицательной суммы заказа.
	ErrTotalAmountNegative = errors.New("total amount must be non-negative")
	// Ошибка отсутствующего адреса доставки.
	ErrShippingAddressRequired = errors.New("shipping address is required")
	// Ошибка позиции без ссылки на товар.
	ErrItemProductRequired = errors.New("item product reference is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderExists возвращается при попытке создать заказ с занятым ID.
	ErrOrderExists = errors.New("order already exists")
	// ErrProductNotFound возвращается, если товар не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientInventory возвращается при нехватке остатка под списание.
	ErrInsufficientInventory = errors.New("insufficient inventory")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// ValidationError оборачивает нарушение предусловий запроса.
// Наружу транслируется как HTTP 400.
type ValidationError struct {
	Reason error
}

func (e *ValidationError) Error() string {
	if e.Reason == nil {
		return "please provide all required fields"
	}
	return e.Reason.Error()
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// NewValidationError создаёт ValidationError с конкретной причиной.
func NewValidationError(reason error) error {
	return &ValidationError{Reason: reason}
}

// ProductNotFoundError сообщает, что товар из позиции заказа не существует.
// Name — отображаемое имя из запроса, чтобы сообщение было понятно покупателю.
type ProductNotFoundError struct {
	Name string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.Name)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrProductNotFound }

// InsufficientInventoryError сообщает, что остатка товара не хватает под заказ.
type InsufficientInventoryError struct {
	Title string
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for %s", e.Title)
}

func (e *InsufficientInventoryError) Unwrap() error { return ErrInsufficientInventory }

// IsValidation проверяет, является ли ошибка нарушением предусловий запроса.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

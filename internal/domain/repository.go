package domain

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ вместе с позициями.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// ListByUser возвращает заказы покупателя, новые первыми.
	ListByUser(userID string) ([]Order, error)
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// Get возвращает товар по идентификатору или ErrProductNotFound, если его нет.
	Get(id string) (Product, error)
	// DecrementInventory атомарно списывает qty единиц остатка.
	// Возвращает ErrProductNotFound, если товара нет, и ErrInsufficientInventory,
	// если остатка меньше qty; остаток никогда не уходит в минус.
	DecrementInventory(id string, qty int32) error
}

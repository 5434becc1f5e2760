package memory

import (
	"sync"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepositoryInMemory — in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий товаров.
func NewProductRepository() *productRepositoryInMemory {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Put добавляет или заменяет товар (наполнение каталога в dev/тестах).
func (r *productRepositoryInMemory) Put(product domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[product.ID] = product
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (r *productRepositoryInMemory) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// DecrementInventory списывает остаток под мьютексом: проверка и списание
// выполняются атомарно, остаток не уходит в минус.
func (r *productRepositoryInMemory) DecrementInventory(id string, qty int32) error {
	if qty <= 0 {
		return domain.ErrItemQtyInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.items[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if product.CurrentInventory < qty {
		return domain.ErrInsufficientInventory
	}

	product.CurrentInventory -= qty
	product.UpdatedAt = time.Now().UTC()
	r.items[id] = product
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)

package memory_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newProduct(id string, inventory int32) domain.Product {
	return domain.Product{
		ID:               id,
		Title:            "Lavender Soy Candle",
		Price:            decimal.NewFromInt(450),
		CurrentInventory: inventory,
	}
}

func TestProductRepository_GetMissing(t *testing.T) {
	repo := memory.NewProductRepository()

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_Decrement(t *testing.T) {
	repo := memory.NewProductRepository()
	repo.Put(newProduct("p1", 5))

	if err := repo.DecrementInventory("p1", 3); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}

	product, err := repo.Get("p1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product.CurrentInventory != 2 {
		t.Fatalf("expected inventory 2, got %d", product.CurrentInventory)
	}
}

func TestProductRepository_DecrementInsufficient(t *testing.T) {
	repo := memory.NewProductRepository()
	repo.Put(newProduct("p1", 2))

	if err := repo.DecrementInventory("p1", 3); !errors.Is(err, domain.ErrInsufficientInventory) {
		t.Fatalf("expected ErrInsufficientInventory, got %v", err)
	}

	// Неудачное списание не должно менять остаток.
	product, err := repo.Get("p1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product.CurrentInventory != 2 {
		t.Fatalf("expected inventory 2, got %d", product.CurrentInventory)
	}
}

func TestProductRepository_DecrementMissing(t *testing.T) {
	repo := memory.NewProductRepository()

	if err := repo.DecrementInventory("missing", 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_DecrementInvalidQty(t *testing.T) {
	repo := memory.NewProductRepository()
	repo.Put(newProduct("p1", 5))

	if err := repo.DecrementInventory("p1", 0); !errors.Is(err, domain.ErrItemQtyInvalid) {
		t.Fatalf("expected ErrItemQtyInvalid, got %v", err)
	}
}

// Конкурентные списания никогда не уводят остаток в минус:
// часть запросов завершается ErrInsufficientInventory, остальные — успехом.
func TestProductRepository_ConcurrentDecrement(t *testing.T) {
	repo := memory.NewProductRepository()
	repo.Put(newProduct("p1", 10))

	const workers = 20

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.DecrementInventory("p1", 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 {
		t.Fatalf("expected exactly 10 successful decrements, got %d", succeeded)
	}

	product, err := repo.Get("p1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product.CurrentInventory != 0 {
		t.Fatalf("expected inventory 0, got %d", product.CurrentInventory)
	}
}

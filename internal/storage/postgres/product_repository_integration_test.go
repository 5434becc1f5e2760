package postgres

import (
	"errors"
	"sync"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestProductRepository_PostgresGetAndDecrement(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)

	insertProductForIntegrationTest(t, store, "lavender-candle", 5)

	product, err := repo.Get("lavender-candle")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if product.CurrentInventory != 5 {
		t.Fatalf("inventory = %d, want 5", product.CurrentInventory)
	}

	if err := repo.DecrementInventory("lavender-candle", 3); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	product, err = repo.Get("lavender-candle")
	if err != nil {
		t.Fatalf("get after decrement: %v", err)
	}
	if product.CurrentInventory != 2 {
		t.Fatalf("inventory = %d, want 2", product.CurrentInventory)
	}

	// Второе списание на 3 единицы не проходит, остаток не меняется.
	if err := repo.DecrementInventory("lavender-candle", 3); !errors.Is(err, domain.ErrInsufficientInventory) {
		t.Fatalf("expected ErrInsufficientInventory, got %v", err)
	}
	product, err = repo.Get("lavender-candle")
	if err != nil {
		t.Fatalf("get after failed decrement: %v", err)
	}
	if product.CurrentInventory != 2 {
		t.Fatalf("inventory = %d, want 2 after rejected decrement", product.CurrentInventory)
	}
}

func TestProductRepository_PostgresErrors(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := repo.DecrementInventory("missing", 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on decrement, got %v", err)
	}
	if err := repo.DecrementInventory("missing", 0); !errors.Is(err, domain.ErrItemQtyInvalid) {
		t.Fatalf("expected ErrItemQtyInvalid, got %v", err)
	}
}

// Конкурентные списания не уводят остаток в минус: при остатке 10
// из 20 конкурентных списаний по единице проходят ровно 10.
func TestProductRepository_PostgresConcurrentDecrement(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewProductRepository(store)

	insertProductForIntegrationTest(t, store, "limited", 10)

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.DecrementInventory("limited", 1)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientInventory):
			rejected++
		default:
			t.Fatalf("unexpected decrement error: %v", err)
		}
	}

	if succeeded != 10 || rejected != 10 {
		t.Fatalf("succeeded=%d rejected=%d, want 10/10", succeeded, rejected)
	}

	product, err := repo.Get("limited")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if product.CurrentInventory != 0 {
		t.Fatalf("inventory = %d, want 0", product.CurrentInventory)
	}
}

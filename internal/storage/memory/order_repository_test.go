package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newOrder(id, userID string, createdAt time.Time) domain.Order {
	return domain.Order{
		ID:     id,
		UserID: userID,
		Items: []domain.OrderItem{
			{ID: id + "-item-1", ProductID: "lavender-candle", Name: "Lavender Soy Candle", Price: decimal.NewFromInt(450), Quantity: 1},
		},
		TotalAmount: decimal.NewFromInt(450),
		ShippingAddress: domain.ShippingAddress{
			Name:    "Asha",
			Email:   "asha@example.com",
			Address: "12 MG Road, Bengaluru",
		},
		PaymentMethod: domain.DefaultPaymentMethod,
		PaymentStatus: domain.PaymentStatusPending,
		OrderStatus:   domain.OrderStatusProcessing,
		CreatedAt:     createdAt,
	}
}

func TestOrderRepository_CreateGet(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder("order-1", "user-1", time.Now().UTC())

	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.ID != order.ID {
		t.Fatalf("expected id %s, got %s", order.ID, stored.ID)
	}
	if len(stored.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(stored.Items))
	}
}

func TestOrderRepository_CreateDuplicate(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder("order-1", "user-1", time.Now().UTC())

	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(order); !errors.Is(err, domain.ErrOrderExists) {
		t.Fatalf("expected ErrOrderExists, got %v", err)
	}
}

func TestOrderRepository_GetMissing(t *testing.T) {
	repo := memory.NewOrderRepository()

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListByUserSortedDesc(t *testing.T) {
	repo := memory.NewOrderRepository()
	now := time.Now().UTC()

	oldest := newOrder("order-1", "user-1", now.Add(-2*time.Hour))
	middle := newOrder("order-2", "user-1", now.Add(-time.Hour))
	newest := newOrder("order-3", "user-1", now)
	foreign := newOrder("order-4", "user-2", now)

	for _, order := range []domain.Order{oldest, newest, middle, foreign} {
		if err := repo.Create(order); err != nil {
			t.Fatalf("create %s failed: %v", order.ID, err)
		}
	}

	orders, err := repo.ListByUser("user-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	for i := 1; i < len(orders); i++ {
		if orders[i].CreatedAt.After(orders[i-1].CreatedAt) {
			t.Fatalf("orders are not sorted newest-first: %s before %s", orders[i-1].ID, orders[i].ID)
		}
	}
	for _, order := range orders {
		if order.UserID != "user-1" {
			t.Fatalf("order %s belongs to %s, expected user-1", order.ID, order.UserID)
		}
	}
}

func TestOrderRepository_ListByUserEmpty(t *testing.T) {
	repo := memory.NewOrderRepository()

	orders, err := repo.ListByUser("nobody")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected empty result, got %d orders", len(orders))
	}
}

func TestOrderRepository_StoredCopyIsIsolated(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder("order-1", "user-1", time.Now().UTC())
	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Мутация возвращённой копии не должна менять хранимый заказ.
	stored, err := repo.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	stored.Items[0].Name = "mutated"

	fresh, err := repo.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if fresh.Items[0].Name != "Lavender Soy Candle" {
		t.Fatalf("stored order was mutated through returned copy: %s", fresh.Items[0].Name)
	}
}

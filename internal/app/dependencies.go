package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

// Dependencies агрегирует хранилища, выбранные по конфигурации.
type Dependencies struct {
	Orders   domain.OrderRepository
	Products domain.ProductRepository
	Outbox   domain.OutboxRepository

	// Store != nil только при работе с PostgreSQL.
	Store *postgres.Store
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d.Store == nil {
		return nil
	}
	return d.Store.Close()
}

// buildDependencies выбирает PostgreSQL или in-memory хранилище.
// In-memory режим наполняется демо-каталогом, чтобы витрина работала из коробки.
func buildDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if cfg.PostgresDSN == "" {
		logger.Info("postgres dsn is empty, using in-memory storage")
		products := memory.NewProductRepository()
		seedDemoProducts(products)
		return &Dependencies{
			Orders:   memory.NewOrderRepository(),
			Products: products,
			Outbox:   memory.NewOutboxRepository(),
		}, nil
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := store.MigrateUp(migrateCtx, 0); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	logger.Info("postgres storage initialized")
	return &Dependencies{
		Orders:   postgres.NewOrderRepository(store),
		Products: postgres.NewProductRepository(store),
		Outbox:   postgres.NewOutboxRepository(store),
		Store:    store,
	}, nil
}

// seedDemoProducts повторяет каталог из seed-миграции.
func seedDemoProducts(products interface{ Put(domain.Product) }) {
	now := time.Now().UTC()
	demo := []domain.Product{
		{
			ID:               "lavender-candle",
			Title:            "Lavender Soy Candle",
			Description:      "Hand-poured soy wax candle with lavender essential oil",
			Price:            decimal.NewFromInt(450),
			Image:            "/images/lavender.jpg",
			CurrentInventory: 25,
		},
		{
			ID:               "sandalwood-candle",
			Title:            "Sandalwood Candle",
			Description:      "Warm sandalwood fragrance in a glass jar",
			Price:            decimal.NewFromInt(520),
			Image:            "/images/sandalwood.jpg",
			CurrentInventory: 18,
		},
		{
			ID:               "rose-diffuser",
			Title:            "Rose Reed Diffuser",
			Description:      "Long lasting rose aroma diffuser",
			Price:            decimal.NewFromInt(780),
			Image:            "/images/rose-diffuser.jpg",
			CurrentInventory: 12,
		},
	}
	for _, product := range demo {
		product.CreatedAt = now
		product.UpdatedAt = now
		products.Put(product)
	}
}

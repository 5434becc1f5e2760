package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// ItemRequest — одна позиция из запроса на создание заказа.
type ItemRequest struct {
	ProductID string          `json:"product"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
	Image     string          `json:"image"`
}

// CreateOrderRequest — типизированное тело запроса на создание заказа.
type CreateOrderRequest struct {
	Items           []ItemRequest          `json:"items"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// Validate проверяет предусловия запроса до любых обращений к хранилищу.
func (r *CreateOrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return domain.NewValidationError(domain.ErrItemsRequired)
	}
	if r.TotalAmount.IsZero() {
		return domain.NewValidationError(domain.ErrTotalAmountRequired)
	}
	if r.TotalAmount.IsNegative() {
		return domain.NewValidationError(domain.ErrTotalAmountNegative)
	}
	if r.ShippingAddress == (domain.ShippingAddress{}) {
		return domain.NewValidationError(domain.ErrShippingAddressRequired)
	}
	for _, item := range r.Items {
		if item.ProductID == "" {
			return domain.NewValidationError(domain.ErrItemProductRequired)
		}
		if item.Quantity <= 0 {
			return domain.NewValidationError(domain.ErrItemQtyInvalid)
		}
		if item.Price.IsNegative() {
			return domain.NewValidationError(domain.ErrItemPriceInvalid)
		}
	}
	return nil
}

// Service реализует приём заказов и выдачу истории покупателя.
type Service struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	outbox   domain.OutboxRepository
	metrics  *metrics.OrderMetrics
	logger   *log.Entry
}

// Option настраивает Service.
type Option func(*Service)

// WithOutbox подключает transactional outbox для событий order.created.
func WithOutbox(repo domain.OutboxRepository) Option {
	return func(s *Service) {
		s.outbox = repo
	}
}

// WithMetrics подключает метрики приёма заказов.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService конструирует сервис с зависимостями.
func NewService(orders domain.OrderRepository, products domain.ProductRepository, logger *log.Entry, options ...Option) *Service {
	if logger == nil {
		logger = log.WithField("component", "orders-service")
	}
	s := &Service{
		orders:   orders,
		products: products,
		logger:   logger,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Create принимает заказ: валидация, проверка остатков по каждой позиции,
// сохранение, списание остатков и join данных товара в ответ.
//
// Последовательность намеренно не обёрнута в одну транзакцию: проверка и
// списание разнесены, откат частично принятого заказа не выполняется.
// Гонку между проверкой и списанием закрывает условное атомарное списание
// в ProductRepository.
func (s *Service) Create(ctx context.Context, userID string, req CreateOrderRequest) (domain.Order, error) {
	start := time.Now()

	if userID == "" {
		return domain.Order{}, domain.NewValidationError(domain.ErrUserRequired)
	}
	if err := req.Validate(); err != nil {
		s.recordRejected("validation")
		return domain.Order{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	// Проверяем существование и остаток каждой позиции в порядке запроса.
	// Первая неудача прерывает приём; ничего ещё не записано.
	checked := make(map[string]domain.Product, len(req.Items))
	for _, item := range req.Items {
		product, err := s.products.Get(item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				s.recordRejected("product_not_found")
				return domain.Order{}, &domain.ProductNotFoundError{Name: itemDisplayName(item)}
			}
			return domain.Order{}, fmt.Errorf("lookup product %s: %w", item.ProductID, err)
		}
		if !product.HasInventory(item.Quantity) {
			s.recordRejected("insufficient_inventory")
			return domain.Order{}, &domain.InsufficientInventoryError{Title: product.Title}
		}
		checked[product.ID] = product
	}

	order := s.buildOrder(userID, req, checked)
	if err := s.orders.Create(order); err != nil {
		return domain.Order{}, fmt.Errorf("persist order: %w", err)
	}

	// Списание идёт после записи заказа; условие в хранилище гарантирует,
	// что остаток не уйдёт в минус даже при конкурентных заказах.
	// Проигранная гонка отдаётся как нехватка остатка, заказ не откатывается.
	for _, item := range order.Items {
		if err := s.products.DecrementInventory(item.ProductID, item.Quantity); err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"order_id":   order.ID,
				"product_id": item.ProductID,
			}).Warn("inventory decrement failed after order was persisted")

			switch {
			case errors.Is(err, domain.ErrInsufficientInventory):
				s.recordRejected("insufficient_inventory")
				return domain.Order{}, &domain.InsufficientInventoryError{Title: item.Name}
			case errors.Is(err, domain.ErrProductNotFound):
				s.recordRejected("product_not_found")
				return domain.Order{}, &domain.ProductNotFoundError{Name: item.Name}
			default:
				return domain.Order{}, fmt.Errorf("decrement inventory for %s: %w", item.ProductID, err)
			}
		}
	}

	s.enqueueCreatedEvent(order)
	s.populateFromCache(&order, checked)

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
		s.metrics.RecordIntakeDuration(time.Since(start))
	}
	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"items":    len(order.Items),
	}).Info("order created")

	return order, nil
}

// List возвращает все заказы покупателя, новые первыми, с данными товаров
// по каждой позиции. Пагинации нет.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, domain.NewValidationError(domain.ErrUserRequired)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	orders, err := s.orders.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list orders for %s: %w", userID, err)
	}
	if s.metrics != nil {
		s.metrics.RecordHistoryQuery()
	}

	// Товары подставляются отдельным шагом после выборки заказов.
	cache := make(map[string]*domain.Product)
	for i := range orders {
		s.populateOrder(&orders[i], cache)
	}

	return orders, nil
}

func (s *Service) buildOrder(userID string, req CreateOrderRequest, products map[string]domain.Product) domain.Order {
	now := time.Now().UTC()

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.DefaultPaymentMethod
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		name := item.Name
		price := item.Price
		image := item.Image
		// Снимок берётся из запроса; пропуски добираем из карточки товара.
		if product, ok := products[item.ProductID]; ok {
			if name == "" {
				name = product.Title
			}
			if price.IsZero() {
				price = product.Price
			}
			if image == "" {
				image = product.Image
			}
		}
		items = append(items, domain.OrderItem{
			ID:        uuid.NewString(),
			ProductID: item.ProductID,
			Name:      name,
			Price:     price,
			Quantity:  item.Quantity,
			Image:     image,
		})
	}

	return domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   domain.PaymentStatusPending,
		OrderStatus:     domain.OrderStatusProcessing,
		CreatedAt:       now,
	}
}

// enqueueCreatedEvent ставит событие order.created в outbox.
// Ошибка логируется и не влияет на результат приёма заказа.
func (s *Service) enqueueCreatedEvent(order domain.Order) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(kafka.NewOrderCreatedEvent(order))
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to marshal order.created event")
		return
	}

	if _, err := s.outbox.Enqueue(domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   order.ID,
		EventType:     string(kafka.EventTypeOrderCreated),
		Payload:       payload,
	}); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to enqueue order.created event")
		return
	}

	if s.metrics != nil {
		s.metrics.RecordOutboxEvent()
	}
}

func (s *Service) populateFromCache(order *domain.Order, products map[string]domain.Product) {
	for i := range order.Items {
		if product, ok := products[order.Items[i].ProductID]; ok {
			p := product
			order.Items[i].Product = &p
		}
	}
}

// populateOrder подставляет данные товара по слабой ссылке ProductID.
// Удалённый или снятый с продажи товар оставляет Product == nil; промах
// кэшируется как nil, чтобы не дёргать хранилище по каждой позиции.
func (s *Service) populateOrder(order *domain.Order, cache map[string]*domain.Product) {
	for i := range order.Items {
		id := order.Items[i].ProductID

		product, seen := cache[id]
		if !seen {
			loaded, err := s.products.Get(id)
			switch {
			case err == nil:
				product = &loaded
			case errors.Is(err, domain.ErrProductNotFound):
				product = nil
			default:
				// Временная ошибка хранилища не кэшируется.
				s.logger.WithError(err).WithField("product_id", id).Warn("failed to populate product")
				continue
			}
			cache[id] = product
		}

		if product == nil {
			continue
		}
		p := *product
		order.Items[i].Product = &p
	}
}

func (s *Service) recordRejected(reason string) {
	if s.metrics != nil {
		s.metrics.RecordOrderRejected(reason)
	}
}

func itemDisplayName(item ItemRequest) string {
	if item.Name != "" {
		return item.Name
	}
	return item.ProductID
}

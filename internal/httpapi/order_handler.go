package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/orders"
)

// Handler обрабатывает HTTP-запросы к /orders.
type Handler struct {
	service *orders.Service
	logger  *log.Entry
}

// NewHandler конструирует handler поверх сервиса заказов.
func NewHandler(service *orders.Service, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http-handler")
	}
	return &Handler{service: service, logger: logger}
}

// ListOrders возвращает историю заказов аутентифицированного покупателя.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", identity.UserID).Error("get orders failed")
		writeError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	if result == nil {
		result = []domain.Order{}
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Orders: &result})
}

// CreateOrder принимает новый заказ.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req orders.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	// Неизвестные поля отклоняются: тело запроса обязано соответствовать схеме.
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	order, err := h.service.Create(r.Context(), identity.UserID, req)
	if err != nil {
		h.writeCreateError(w, identity.UserID, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Order created successfully",
		Order:   &order,
	})
}

// MethodNotAllowed отвечает на неподдерживаемые методы маршрута.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// writeCreateError транслирует доменные ошибки в HTTP-статусы:
// валидация и нехватка остатка — 400, отсутствующий товар — 404,
// всё остальное — непрозрачная 500.
func (h *Handler) writeCreateError(w http.ResponseWriter, userID string, err error) {
	var notFound *domain.ProductNotFoundError
	var insufficient *domain.InsufficientInventoryError

	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, "Please provide all required fields")
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, capitalized(notFound.Error()))
	case errors.As(err, &insufficient):
		writeError(w, http.StatusBadRequest, capitalized(insufficient.Error()))
	default:
		h.logger.WithError(err).WithField("user_id", userID).Error("create order failed")
		writeError(w, http.StatusInternalServerError, "Error creating order")
	}
}

func capitalized(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

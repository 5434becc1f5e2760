package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/auth"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/httpapi"
	"github.com/vladislavdragonenkov/storefront/internal/service/orders"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

type apiResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Order   *domain.Order  `json:"order"`
	Orders  []domain.Order `json:"orders"`
}

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	entry := logger.WithField("component", "test")

	products := memory.NewProductRepository()
	products.Put(domain.Product{
		ID:               "lavender-candle",
		Title:            "Lavender Soy Candle",
		Price:            decimal.NewFromInt(450),
		CurrentInventory: 5,
	})

	service := orders.NewService(memory.NewOrderRepository(), products, entry)

	authenticator := auth.NewStaticTokens(map[string]auth.Identity{
		"token-asha": {UserID: "user-asha", Email: "asha@example.com"},
	})

	return httpapi.NewRouter(httpapi.NewHandler(service, entry), authenticator)
}

func doRequest(t *testing.T, api http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	var parsed apiResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

const validOrderBody = `{
	"items": [
		{"product": "lavender-candle", "name": "Lavender Soy Candle", "price": "450", "quantity": 2}
	],
	"totalAmount": "900",
	"shippingAddress": {"name": "Asha", "email": "asha@example.com", "address": "12 MG Road, Bengaluru"}
}`

func TestAPI_RequiresAuthentication(t *testing.T) {
	api := newTestAPI(t)

	for _, tc := range []struct {
		method string
		token  string
	}{
		{http.MethodGet, ""},
		{http.MethodPost, ""},
		{http.MethodGet, "wrong-token"},
	} {
		rec, parsed := doRequest(t, api, tc.method, "/orders", tc.token, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s with token %q", tc.method, tc.token)
		require.False(t, parsed.Success)
		require.Equal(t, "authentication required", parsed.Message)
	}
}

func TestAPI_ListEmptyHistory(t *testing.T) {
	api := newTestAPI(t)

	rec, parsed := doRequest(t, api, http.MethodGet, "/orders", "token-asha", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, parsed.Success)

	// Пустая история — это `"orders": []` в теле, а не отсутствующее поле.
	require.Contains(t, rec.Body.String(), `"orders":[]`)
	require.NotNil(t, parsed.Orders)
	require.Empty(t, parsed.Orders)
}

func TestAPI_CreateOrder(t *testing.T) {
	api := newTestAPI(t)

	rec, parsed := doRequest(t, api, http.MethodPost, "/orders", "token-asha", validOrderBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, parsed.Success)
	require.Equal(t, "Order created successfully", parsed.Message)
	require.NotNil(t, parsed.Order)
	require.NotEmpty(t, parsed.Order.ID)
	require.Equal(t, "user-asha", parsed.Order.UserID)
	require.Equal(t, "UPI", parsed.Order.PaymentMethod)
	require.Equal(t, domain.OrderStatusProcessing, parsed.Order.OrderStatus)
	// Ответ на создание не содержит списка заказов.
	require.NotContains(t, rec.Body.String(), `"orders"`)

	// Созданный заказ виден в истории того же покупателя.
	rec, parsed = doRequest(t, api, http.MethodGet, "/orders", "token-asha", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, parsed.Orders, 1)
}

func TestAPI_CreateOrderValidation(t *testing.T) {
	api := newTestAPI(t)

	for name, body := range map[string]string{
		"empty items":      `{"items": [], "totalAmount": "900", "shippingAddress": {"name": "A", "email": "a@b.c", "address": "x"}}`,
		"missing total":    `{"items": [{"product": "lavender-candle", "quantity": 1}], "shippingAddress": {"name": "A", "email": "a@b.c", "address": "x"}}`,
		"missing shipping": `{"items": [{"product": "lavender-candle", "quantity": 1}], "totalAmount": "450"}`,
		"malformed json":   `{"items": [`,
	} {
		rec, parsed := doRequest(t, api, http.MethodPost, "/orders", "token-asha", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, name)
		require.False(t, parsed.Success, name)
		require.Equal(t, "Please provide all required fields", parsed.Message, name)
	}
}

func TestAPI_CreateOrderRejectsUnknownFields(t *testing.T) {
	api := newTestAPI(t)

	body := `{"items": [{"product": "lavender-candle", "quantity": 1}], "totalAmount": "450",
		"shippingAddress": {"name": "A", "email": "a@b.c", "address": "x"}, "coupon": "SAVE10"}`

	rec, parsed := doRequest(t, api, http.MethodPost, "/orders", "token-asha", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Please provide all required fields", parsed.Message)
}

func TestAPI_CreateOrderUnknownProduct(t *testing.T) {
	api := newTestAPI(t)

	body := `{
		"items": [{"product": "ghost", "name": "Ghost Candle", "price": "100", "quantity": 1}],
		"totalAmount": "100",
		"shippingAddress": {"name": "A", "email": "a@b.c", "address": "x"}
	}`

	rec, parsed := doRequest(t, api, http.MethodPost, "/orders", "token-asha", body)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.False(t, parsed.Success)
	require.Equal(t, "Product Ghost Candle not found", parsed.Message)
}

func TestAPI_CreateOrderInsufficientInventory(t *testing.T) {
	api := newTestAPI(t)

	body := `{
		"items": [{"product": "lavender-candle", "quantity": 50}],
		"totalAmount": "22500",
		"shippingAddress": {"name": "A", "email": "a@b.c", "address": "x"}
	}`

	rec, parsed := doRequest(t, api, http.MethodPost, "/orders", "token-asha", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, parsed.Success)
	require.Equal(t, "Insufficient inventory for Lavender Soy Candle", parsed.Message)
}

func TestAPI_MethodNotAllowed(t *testing.T) {
	api := newTestAPI(t)

	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		rec, parsed := doRequest(t, api, method, "/orders", "token-asha", "")
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		require.Equal(t, "Method not allowed", parsed.Message, method)
	}
}

func TestAPI_HistoryIsScopedToCaller(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	entry := logger.WithField("component", "test")

	products := memory.NewProductRepository()
	products.Put(domain.Product{
		ID:               "lavender-candle",
		Title:            "Lavender Soy Candle",
		Price:            decimal.NewFromInt(450),
		CurrentInventory: 10,
	})
	service := orders.NewService(memory.NewOrderRepository(), products, entry)

	authenticator := auth.NewStaticTokens(map[string]auth.Identity{
		"token-asha": {UserID: "user-asha"},
		"token-ravi": {UserID: "user-ravi"},
	})
	api := httpapi.NewRouter(httpapi.NewHandler(service, entry), authenticator)

	rec, _ := doRequest(t, api, http.MethodPost, "/orders", "token-asha", validOrderBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Второй покупатель не видит чужих заказов.
	recOther, parsedOther := doRequest(t, api, http.MethodGet, "/orders", "token-ravi", "")
	require.Equal(t, http.StatusOK, recOther.Code)
	require.True(t, parsedOther.Success)
	require.Empty(t, parsedOther.Orders)

	recOwner, parsedOwner := doRequest(t, api, http.MethodGet, "/orders", "token-asha", "")
	require.Equal(t, http.StatusOK, recOwner.Code)
	require.Len(t, parsedOwner.Orders, 1)
}

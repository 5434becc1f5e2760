package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// envelope — единый формат ответа API: { success, message, ... }.
// Orders — указатель, чтобы пустая история отдавалась как `"orders": []`,
// а ответы без списка (создание, ошибки) не содержали поля вовсе.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Order   *domain.Order   `json:"order,omitempty"`
	Orders  *[]domain.Order `json:"orders,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

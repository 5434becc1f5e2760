package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product представляет товар витрины.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	// CurrentInventory — доступный остаток; никогда не уходит в минус.
	CurrentInventory int32     `json:"currentInventory"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// HasInventory сообщает, хватает ли остатка под запрошенное количество.
func (p *Product) HasInventory(qty int32) bool {
	return p.CurrentInventory >= qty
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto do catálogo. Stock é o único campo mutado
// repetidamente ao longo da vida do registro, e somente através do motor de
// estoque (nunca por escrita direta).
type Product struct {
	ID        int64
	Name      string
	SKU       string
	Cost      decimal.Decimal
	Price     decimal.Decimal
	Stock     decimal.Decimal // nunca negativo
	Ativo     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento de estoque.
const (
	MovementEntrada = "entrada"
	MovementSaida   = "saida"
)

// InventoryMovement é o registro imutável de uma alteração de estoque.
// Sempre criado na mesma transação que a alteração; nunca atualizado nem
// removido. ReferenceID agrupa os movimentos de uma mesma operação (venda,
// recebimento de compra, ajuste manual).
type InventoryMovement struct {
	ID          int64
	ReferenceID string
	ProductID   int64
	Type        string // entrada | saida
	Quantity    decimal.Decimal // sempre positiva; o sinal vem do Type
	Reason      string
	Branch      string
	CreatedBy   int64 // 0 = sem ator identificado
	CreatedAt   time.Time
}

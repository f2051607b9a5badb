package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de venda. O fluxo do PDV fecha a venda num único passo: ela nasce
// já em "fechada" (não há estado intermediário de reserva).
const SaleStatusFechada = "fechada"

// Sale é o cabeçalho de uma venda. Total é fixado no fechamento como a soma
// de Quantity*UnitPrice dos itens, recalculada no servidor.
type Sale struct {
	ID        int64
	Status    string
	Total     decimal.Decimal
	CreatedBy int64
	CreatedAt time.Time
}

// SaleItem é uma linha imutável da venda.
type SaleItem struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// SalePayment é um pagamento registrado no fechamento da venda
// (dinheiro, cartão, pix...). A soma dos pagamentos pode diferir do total,
// salvo quando o fechamento exige conferência (configurável).
type SalePayment struct {
	ID     int64
	SaleID int64
	Method string
	Amount decimal.Decimal
}

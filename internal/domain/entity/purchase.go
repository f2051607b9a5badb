package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de pedido de compra.
const (
	OrderStatusDraft    = "draft"
	OrderStatusOrdered  = "ordered"
	OrderStatusPartial  = "partial"
	OrderStatusReceived = "received"
	OrderStatusCanceled = "canceled"
)

// PurchaseOrder é o cabeçalho de um pedido de compra. Status é recalculado a
// cada recebimento comparando o acumulado recebido com o pedido, por produto,
// sobre o pedido inteiro.
type PurchaseOrder struct {
	ID         int64
	SupplierID int64
	Status     string
	Total      decimal.Decimal
	CreatedBy  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderItem é uma linha pedida (imutável após a criação do pedido).
type PurchaseOrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}

// PurchaseReceipt registra um recebimento parcial ou total de um produto do
// pedido. Append-only: recebimentos sucessivos do mesmo produto geram linhas
// novas, nunca são fundidos.
type PurchaseReceipt struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ReceivedQty decimal.Decimal
	Branch      string
	Note        string
	CreatedBy   int64
	CreatedAt   time.Time
}

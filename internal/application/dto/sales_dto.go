package dto

import "github.com/shopspring/decimal"

// SaleItemRequest linha de venda enviada pelo PDV.
type SaleItemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SalePaymentRequest pagamento informado no fechamento.
type SalePaymentRequest struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// FinalizeSaleRequest corpo de POST /api/sales.
type FinalizeSaleRequest struct {
	Items    []SaleItemRequest    `json:"items"`
	Payments []SalePaymentRequest `json:"payments"`
}

// FinalizeSaleResponse resultado do fechamento.
type FinalizeSaleResponse struct {
	SaleID int64           `json:"sale_id"`
	Total  decimal.Decimal `json:"total"`
}

// SaleResponse venda completa (cabeçalho + itens + pagamentos).
type SaleResponse struct {
	ID        int64                 `json:"id"`
	Status    string                `json:"status"`
	Total     decimal.Decimal       `json:"total"`
	CreatedBy int64                 `json:"created_by,omitempty"`
	CreatedAt string                `json:"created_at"`
	Items     []SaleItemResponse    `json:"items"`
	Payments  []SalePaymentResponse `json:"payments"`
}

// SaleItemResponse linha persistida da venda.
type SaleItemResponse struct {
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SalePaymentResponse pagamento persistido da venda.
type SalePaymentResponse struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

package dto

import "github.com/shopspring/decimal"

// StockDeltaRequest corpo de POST /api/inventory/movements.
type StockDeltaRequest struct {
	ProductID int64           `json:"product_id"`
	Type      string          `json:"type"` // in | out
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
	Branch    string          `json:"branch"`
}

// StockDeltaResponse resultado da mutação de estoque.
type StockDeltaResponse struct {
	NewStock decimal.Decimal `json:"new_stock"`
}

// MovementResponse linha do histórico de movimentos de um produto.
type MovementResponse struct {
	ID          int64           `json:"id"`
	ReferenceID string          `json:"reference_id,omitempty"`
	ProductID   int64           `json:"product_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason,omitempty"`
	Branch      string          `json:"branch,omitempty"`
	CreatedBy   int64           `json:"created_by,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

package dto

import "github.com/shopspring/decimal"

// CreateOrderItemRequest linha pedida (quantidade e custo por produto).
type CreateOrderItemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreateOrderRequest corpo de POST /api/purchases.
type CreateOrderRequest struct {
	SupplierID int64                    `json:"supplier_id"`
	Items      []CreateOrderItemRequest `json:"items"`
}

// OrderResponse cabeçalho do pedido após criação ou mudança de status.
type OrderResponse struct {
	OrderID int64           `json:"order_id"`
	Status  string          `json:"status"`
	Total   decimal.Decimal `json:"total"`
}

// ReceivePurchaseRequest corpo de POST /api/purchases/:id/receipts.
type ReceivePurchaseRequest struct {
	ProductID   int64           `json:"product_id"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
	Branch      string          `json:"branch"`
	Note        string          `json:"note"`
}

// ReceivePurchaseResponse resultado de um recebimento.
type ReceivePurchaseResponse struct {
	ReceiptID   int64           `json:"receipt_id"`
	NewStock    decimal.Decimal `json:"new_stock"`
	OrderStatus string          `json:"order_status"`
}

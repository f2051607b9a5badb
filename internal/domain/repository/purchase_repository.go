package repository

import "github.com/gestaofacil/erp-api/internal/domain/entity"

// PurchaseRepository persiste pedidos de compra, seus itens e recebimentos.
// Itens são imutáveis após a criação; recebimentos são append-only.
type PurchaseRepository interface {
	// CreateOrder insere cabeçalho e itens, preenchendo os IDs.
	CreateOrder(o *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error
	// GetOrder devolve nil, nil se o pedido não existe.
	GetOrder(id int64) (*entity.PurchaseOrder, error)
	// GetOrderForUpdate lê o pedido bloqueando a linha.
	GetOrderForUpdate(id int64) (*entity.PurchaseOrder, error)
	// GetItemForUpdate lê a linha pedida de um produto bloqueando-a;
	// nil, nil se o produto não pertence ao pedido.
	GetItemForUpdate(orderID, productID int64) (*entity.PurchaseOrderItem, error)
	ListItems(orderID int64) ([]*entity.PurchaseOrderItem, error)
	CreateReceipt(r *entity.PurchaseReceipt) error
	ListReceipts(orderID int64) ([]*entity.PurchaseReceipt, error)
	UpdateOrderStatus(orderID int64, status string) error
}

// Package purchasing implementa o ciclo de pedidos de compra: criação,
// emissão, cancelamento e recebimentos parciais com entrada de estoque e
// recálculo de status sobre o pedido inteiro.
package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/erp-api/internal/application/inventory"
	"github.com/gestaofacil/erp-api/internal/application/ports"
	"github.com/gestaofacil/erp-api/internal/domain"
	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

const reasonCompra = "recebimento de compra"

// OrderLineInput linha pedida na criação.
type OrderLineInput struct {
	ProductID int64
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}

// CreateOrderInput entrada de criação de pedido.
type CreateOrderInput struct {
	SupplierID int64
	Items      []OrderLineInput
	ActorID    int64
}

// ReceiveInput entrada de um recebimento.
type ReceiveInput struct {
	OrderID     int64
	ProductID   int64
	ReceivedQty decimal.Decimal
	Branch      string
	Note        string
	ActorID     int64
}

// ReceiveResult resultado de um recebimento.
type ReceiveResult struct {
	ReceiptID   int64
	NewStock    decimal.Decimal
	OrderStatus string
}

// OrderResult cabeçalho após criação ou transição de status.
type OrderResult struct {
	OrderID int64
	Status  string
	Total   decimal.Decimal
}

// PurchaseUseCase orquestra pedidos de compra e seus recebimentos.
type PurchaseUseCase struct {
	txRunner     ports.TxRunner
	stock        *inventory.StockUseCase
	purchaseRepo repository.PurchaseRepository // ligado ao pool, caminho de leitura
}

// NewPurchaseUseCase constrói o caso de uso.
func NewPurchaseUseCase(txRunner ports.TxRunner, stock *inventory.StockUseCase, purchaseRepo repository.PurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, stock: stock, purchaseRepo: purchaseRepo}
}

// CreateOrder cria um pedido em rascunho com suas linhas. O total é calculado
// no servidor a partir das linhas.
func (uc *PurchaseUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderResult, error) {
	if in.SupplierID <= 0 || len(in.Items) == 0 {
		return OrderResult{}, domain.ErrInvalidInput
	}
	total := decimal.Zero
	for _, line := range in.Items {
		if line.ProductID <= 0 || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitCost.IsNegative() {
			return OrderResult{}, domain.ErrInvalidInput
		}
		total = total.Add(line.Quantity.Mul(line.UnitCost))
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		SupplierID: in.SupplierID,
		Status:     entity.OrderStatusDraft,
		Total:      total,
		CreatedBy:  in.ActorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	items := make([]*entity.PurchaseOrderItem, len(in.Items))
	for i, line := range in.Items {
		items[i] = &entity.PurchaseOrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
		}
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		return r.Purchases.CreateOrder(order, items)
	})
	if err != nil {
		return OrderResult{}, err
	}
	return OrderResult{OrderID: order.ID, Status: order.Status, Total: order.Total}, nil
}

// MarkOrdered emite um pedido em rascunho (draft → ordered).
func (uc *PurchaseUseCase) MarkOrdered(ctx context.Context, orderID int64) (OrderResult, error) {
	if orderID <= 0 {
		return OrderResult{}, domain.ErrInvalidInput
	}
	var result OrderResult
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		order, err := r.Purchases.GetOrderForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if order.Status != entity.OrderStatusDraft {
			return domain.ErrOrderClosed
		}
		if err := r.Purchases.UpdateOrderStatus(order.ID, entity.OrderStatusOrdered); err != nil {
			return err
		}
		result = OrderResult{OrderID: order.ID, Status: entity.OrderStatusOrdered, Total: order.Total}
		return nil
	})
	return result, err
}

// CancelOrder cancela um pedido sem recebimentos (draft/ordered → canceled).
// Um pedido já recebido, ainda que parcialmente, não pode mais ser cancelado.
func (uc *PurchaseUseCase) CancelOrder(ctx context.Context, orderID int64) (OrderResult, error) {
	if orderID <= 0 {
		return OrderResult{}, domain.ErrInvalidInput
	}
	var result OrderResult
	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		order, err := r.Purchases.GetOrderForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if order.Status != entity.OrderStatusDraft && order.Status != entity.OrderStatusOrdered {
			return domain.ErrOrderClosed
		}
		receipts, err := r.Purchases.ListReceipts(order.ID)
		if err != nil {
			return err
		}
		if len(receipts) > 0 {
			return domain.ErrOrderClosed
		}
		if err := r.Purchases.UpdateOrderStatus(order.ID, entity.OrderStatusCanceled); err != nil {
			return err
		}
		result = OrderResult{OrderID: order.ID, Status: entity.OrderStatusCanceled, Total: order.Total}
		return nil
	})
	return result, err
}

// Receive registra um recebimento parcial ou total: insere o recibo
// (append-only), dá entrada no estoque e recalcula o status comparando o
// acumulado recebido com o pedido, produto a produto, sobre o pedido inteiro.
// Recibo, estoque e status saem no mesmo Commit ou em nenhum.
func (uc *PurchaseUseCase) Receive(ctx context.Context, in ReceiveInput) (ReceiveResult, error) {
	if in.OrderID <= 0 || in.ProductID <= 0 || !in.ReceivedQty.GreaterThan(decimal.Zero) {
		return ReceiveResult{}, domain.ErrInvalidInput
	}

	now := time.Now()
	refID := uuid.New().String()
	var result ReceiveResult

	err := uc.txRunner.Run(ctx, func(r ports.Repos) error {
		order, err := r.Purchases.GetOrderForUpdate(in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if order.Status == entity.OrderStatusCanceled {
			return domain.ErrOrderClosed
		}
		item, err := r.Purchases.GetItemForUpdate(in.OrderID, in.ProductID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotInOrder
		}

		receipt := &entity.PurchaseReceipt{
			OrderID:     in.OrderID,
			ProductID:   in.ProductID,
			ReceivedQty: in.ReceivedQty,
			Branch:      in.Branch,
			Note:        in.Note,
			CreatedBy:   in.ActorID,
			CreatedAt:   now,
		}
		if err := r.Purchases.CreateReceipt(receipt); err != nil {
			return err
		}

		newStock, err := uc.stock.ApplyDeltaInTx(r, inventory.StockDeltaInput{
			ProductID:   in.ProductID,
			Type:        entity.MovementEntrada,
			Quantity:    in.ReceivedQty,
			Reason:      reasonCompra,
			Branch:      in.Branch,
			ActorID:     in.ActorID,
			ReferenceID: refID,
		}, now)
		if err != nil {
			return err
		}

		status, err := uc.recomputeStatus(r, in.OrderID)
		if err != nil {
			return err
		}
		if err := r.Purchases.UpdateOrderStatus(in.OrderID, status); err != nil {
			return err
		}

		result = ReceiveResult{ReceiptID: receipt.ID, NewStock: newStock, OrderStatus: status}
		return nil
	})
	return result, err
}

// GetOrder devolve o cabeçalho de um pedido (caminho de leitura).
func (uc *PurchaseUseCase) GetOrder(ctx context.Context, orderID int64) (*entity.PurchaseOrder, error) {
	order, err := uc.purchaseRepo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// recomputeStatus agrega Σ recebido vs Σ pedido por produto no pedido inteiro:
// um único recebimento pode completar o pedido se for a última linha pendente.
func (uc *PurchaseUseCase) recomputeStatus(r ports.Repos, orderID int64) (string, error) {
	items, err := r.Purchases.ListItems(orderID)
	if err != nil {
		return "", err
	}
	receipts, err := r.Purchases.ListReceipts(orderID)
	if err != nil {
		return "", err
	}

	ordered := make(map[int64]decimal.Decimal, len(items))
	for _, item := range items {
		ordered[item.ProductID] = ordered[item.ProductID].Add(item.Quantity)
	}
	received := make(map[int64]decimal.Decimal, len(items))
	for _, rc := range receipts {
		received[rc.ProductID] = received[rc.ProductID].Add(rc.ReceivedQty)
	}

	for productID, qty := range ordered {
		if received[productID].LessThan(qty) {
			// Este caminho só roda após inserir um recibo, logo existe ao
			// menos um recebimento: pendência implica partial.
			return entity.OrderStatusPartial, nil
		}
	}
	return entity.OrderStatusReceived, nil
}

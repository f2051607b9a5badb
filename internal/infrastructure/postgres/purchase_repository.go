package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementação de PurchaseRepository sobre PostgreSQL (usável
// com pool ou tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const orderColumns = "id, supplier_id, status, total, created_by, created_at, updated_at"

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var createdBy *int64
	err := row.Scan(&o.ID, &o.SupplierID, &o.Status, &o.Total, &createdBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if createdBy != nil {
		o.CreatedBy = *createdBy
	}
	return &o, nil
}

// CreateOrder insere o cabeçalho e as linhas do pedido, preenchendo os IDs.
func (r *PurchaseRepo) CreateOrder(o *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchase_orders (supplier_id, status, total, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	createdBy := (*int64)(nil)
	if o.CreatedBy != 0 {
		createdBy = &o.CreatedBy
	}
	err := r.q.QueryRow(ctx, query, o.SupplierID, o.Status, o.Total, createdBy, o.CreatedAt, o.UpdatedAt).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("create purchase order: %w", err)
	}
	for _, item := range items {
		item.OrderID = o.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO purchase_order_items (order_id, product_id, quantity, unit_cost)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity, item.UnitCost).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("create purchase order item: %w", err)
		}
	}
	return nil
}

// GetOrder obtém o pedido; nil se não existe.
func (r *PurchaseRepo) GetOrder(id int64) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return o, nil
}

// GetOrderForUpdate obtém o pedido bloqueando a linha.
func (r *PurchaseRepo) GetOrderForUpdate(id int64) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get purchase order for update: %w", err)
	}
	return o, nil
}

// GetItemForUpdate obtém a linha pedida de um produto bloqueando-a;
// nil se o produto não pertence ao pedido.
func (r *PurchaseRepo) GetItemForUpdate(orderID, productID int64) (*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_cost
		FROM purchase_order_items
		WHERE order_id = $1 AND product_id = $2
		FOR UPDATE`
	var i entity.PurchaseOrderItem
	err := r.q.QueryRow(context.Background(), query, orderID, productID).
		Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Quantity, &i.UnitCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item for update: %w", err)
	}
	return &i, nil
}

// ListItems lista as linhas pedidas.
func (r *PurchaseRepo) ListItems(orderID int64) ([]*entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, product_id, quantity, unit_cost
		FROM purchase_order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderItem
	for rows.Next() {
		var i entity.PurchaseOrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Quantity, &i.UnitCost); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// CreateReceipt insere um recebimento (append-only).
func (r *PurchaseRepo) CreateReceipt(rc *entity.PurchaseReceipt) error {
	query := `
		INSERT INTO purchase_receipts (order_id, product_id, received_qty, branch, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	createdBy := (*int64)(nil)
	if rc.CreatedBy != 0 {
		createdBy = &rc.CreatedBy
	}
	err := r.q.QueryRow(context.Background(), query,
		rc.OrderID, rc.ProductID, rc.ReceivedQty, rc.Branch, rc.Note, createdBy, rc.CreatedAt).Scan(&rc.ID)
	if err != nil {
		return fmt.Errorf("create purchase receipt: %w", err)
	}
	return nil
}

// ListReceipts lista os recebimentos do pedido, em ordem de criação.
func (r *PurchaseRepo) ListReceipts(orderID int64) ([]*entity.PurchaseReceipt, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, product_id, received_qty, branch, note, created_by, created_at
		FROM purchase_receipts WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseReceipt
	for rows.Next() {
		var rc entity.PurchaseReceipt
		var createdBy *int64
		if err := rows.Scan(&rc.ID, &rc.OrderID, &rc.ProductID, &rc.ReceivedQty,
			&rc.Branch, &rc.Note, &createdBy, &rc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		if createdBy != nil {
			rc.CreatedBy = *createdBy
		}
		list = append(list, &rc)
	}
	return list, rows.Err()
}

// UpdateOrderStatus grava o status recalculado do pedido.
func (r *PurchaseRepo) UpdateOrderStatus(orderID int64, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, orderID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

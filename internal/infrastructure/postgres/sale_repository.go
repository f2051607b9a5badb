package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementação de SaleRepository sobre PostgreSQL (usável com pool ou tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// CreateSale insere o cabeçalho da venda e preenche s.ID.
func (r *SaleRepo) CreateSale(s *entity.Sale) error {
	query := `
		INSERT INTO sales (status, total, created_by, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	createdBy := (*int64)(nil)
	if s.CreatedBy != 0 {
		createdBy = &s.CreatedBy
	}
	err := r.q.QueryRow(context.Background(), query, s.Status, s.Total, createdBy, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// CreateItem insere uma linha da venda.
func (r *SaleRepo) CreateItem(i *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (sale_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query, i.SaleID, i.ProductID, i.Quantity, i.UnitPrice).Scan(&i.ID)
	if err != nil {
		return fmt.Errorf("create sale item: %w", err)
	}
	return nil
}

// CreatePayment insere um pagamento da venda.
func (r *SaleRepo) CreatePayment(p *entity.SalePayment) error {
	query := `
		INSERT INTO sale_payments (sale_id, method, amount)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query, p.SaleID, p.Method, p.Amount).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create sale payment: %w", err)
	}
	return nil
}

// GetSale devolve cabeçalho, itens e pagamentos; nil se a venda não existe.
func (r *SaleRepo) GetSale(id int64) (*entity.Sale, []*entity.SaleItem, []*entity.SalePayment, error) {
	ctx := context.Background()
	var s entity.Sale
	var createdBy *int64
	err := r.q.QueryRow(ctx, `SELECT id, status, total, created_by, created_at FROM sales WHERE id = $1`, id).
		Scan(&s.ID, &s.Status, &s.Total, &createdBy, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil, nil
		}
		return nil, nil, nil, fmt.Errorf("get sale: %w", err)
	}
	if createdBy != nil {
		s.CreatedBy = *createdBy
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	payments, err := r.listPayments(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	return &s, items, payments, nil
}

func (r *SaleRepo) listItems(ctx context.Context, saleID int64) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `SELECT id, sale_id, product_id, quantity, unit_price FROM sale_items WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var i entity.SaleItem
		if err := rows.Scan(&i.ID, &i.SaleID, &i.ProductID, &i.Quantity, &i.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

func (r *SaleRepo) listPayments(ctx context.Context, saleID int64) ([]*entity.SalePayment, error) {
	rows, err := r.q.Query(ctx, `SELECT id, sale_id, method, amount FROM sale_payments WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalePayment
	for rows.Next() {
		var p entity.SalePayment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Method, &p.Amount); err != nil {
			return nil, fmt.Errorf("scan sale payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

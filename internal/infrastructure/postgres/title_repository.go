package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

var _ repository.TitleRepository = (*TitleRepo)(nil)

// TitleRepo implementação de TitleRepository sobre PostgreSQL. Contas a pagar
// e a receber vivem em tabelas separadas com colunas próprias
// (amount_paid/supplier_id vs amount_received/customer_id); o Kind resolve
// tabela e colunas.
type TitleRepo struct {
	q Querier
}

// NewTitleRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewTitleRepository(q Querier) *TitleRepo {
	return &TitleRepo{q: q}
}

func titleTable(kind string) (table, amountCol, partyCol string) {
	if kind == entity.TitleKindReceivable {
		return "accounts_receivable", "amount_received", "customer_id"
	}
	return "accounts_payable", "amount_paid", "supplier_id"
}

// Create insere um título aberto e preenche t.ID.
func (r *TitleRepo) Create(t *entity.Title) error {
	table, amountCol, partyCol := titleTable(t.Kind)
	query := fmt.Sprintf(`
		INSERT INTO %s (description, %s, amount_total, %s, status, due_date, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`, table, partyCol, amountCol)
	err := r.q.QueryRow(context.Background(), query,
		t.Description, t.PartyID, t.AmountTotal, t.AmountPaid, t.Status,
		t.DueDate, t.Ativo, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create %s title: %w", t.Kind, err)
	}
	return nil
}

func (r *TitleRepo) get(kind string, id int64, forUpdate bool) (*entity.Title, error) {
	table, amountCol, partyCol := titleTable(kind)
	query := fmt.Sprintf(`
		SELECT id, description, %s, amount_total, %s, status, due_date,
		       COALESCE(method, ''), COALESCE(cash_account_id, 0), ativo, created_at, updated_at
		FROM %s WHERE id = $1 AND ativo`, partyCol, amountCol, table)
	if forUpdate {
		query += " FOR UPDATE"
	}
	var t entity.Title
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Description, &t.PartyID, &t.AmountTotal, &t.AmountPaid, &t.Status,
		&t.DueDate, &t.Method, &t.CashAccountID, &t.Ativo, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s title: %w", kind, err)
	}
	t.Kind = kind
	return &t, nil
}

// GetByID obtém o título; nil se não existe ou está inativo.
func (r *TitleRepo) GetByID(kind string, id int64) (*entity.Title, error) {
	return r.get(kind, id, false)
}

// GetForUpdate obtém o título bloqueando a linha para a baixa.
func (r *TitleRepo) GetForUpdate(kind string, id int64) (*entity.Title, error) {
	return r.get(kind, id, true)
}

// ApplySettlement grava status, valor acumulado, forma de pagamento e conta.
func (r *TitleRepo) ApplySettlement(t *entity.Title) error {
	table, amountCol, _ := titleTable(t.Kind)
	method := (*string)(nil)
	if t.Method != "" {
		method = &t.Method
	}
	cashAccountID := (*int64)(nil)
	if t.CashAccountID != 0 {
		cashAccountID = &t.CashAccountID
	}
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, status = $3,
		    method = COALESCE($4, method),
		    cash_account_id = COALESCE($5, cash_account_id),
		    updated_at = $6
		WHERE id = $1`, table, amountCol)
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.AmountPaid, t.Status, method, cashAccountID, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("apply settlement on %s: %w", t.Kind, err)
	}
	return nil
}

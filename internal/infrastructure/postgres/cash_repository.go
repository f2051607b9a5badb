package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

var _ repository.CashRepository = (*CashRepo)(nil)

// CashRepo implementação de CashRepository sobre PostgreSQL (usável com pool ou tx).
type CashRepo struct {
	q Querier
}

// NewCashRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCashRepository(q Querier) *CashRepo {
	return &CashRepo{q: q}
}

// GetAccount obtém a conta; nil se não existe ou está inativa.
func (r *CashRepo) GetAccount(id int64) (*entity.CashAccount, error) {
	query := `SELECT id, name, initial_balance, ativo, created_at FROM cash_accounts WHERE id = $1 AND ativo`
	var a entity.CashAccount
	err := r.q.QueryRow(context.Background(), query, id).
		Scan(&a.ID, &a.Name, &a.InitialBalance, &a.Ativo, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash account: %w", err)
	}
	return &a, nil
}

// CreateMovement insere um lançamento de caixa.
func (r *CashRepo) CreateMovement(m *entity.CashMovement) error {
	query := `
		INSERT INTO cash_movements (account_id, type, amount, description, origin_type, origin_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	createdBy := (*int64)(nil)
	if m.CreatedBy != 0 {
		createdBy = &m.CreatedBy
	}
	err := r.q.QueryRow(context.Background(), query,
		m.AccountID, m.Type, m.Amount, m.Description, m.OriginType, m.OriginID, createdBy, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create cash movement: %w", err)
	}
	return nil
}

// ListMovements lista todos os lançamentos da conta, em ordem de criação.
func (r *CashRepo) ListMovements(accountID int64) ([]*entity.CashMovement, error) {
	query := `
		SELECT id, account_id, type, amount, description, origin_type, origin_id, created_by, created_at
		FROM cash_movements WHERE account_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		var createdBy *int64
		if err := rows.Scan(&m.ID, &m.AccountID, &m.Type, &m.Amount, &m.Description,
			&m.OriginType, &m.OriginID, &createdBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

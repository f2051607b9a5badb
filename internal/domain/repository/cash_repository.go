package repository

import "github.com/gestaofacil/erp-api/internal/domain/entity"

// CashRepository persiste contas de caixa e seus lançamentos imutáveis.
type CashRepository interface {
	// GetAccount devolve nil, nil se a conta não existe ou está inativa.
	GetAccount(id int64) (*entity.CashAccount, error)
	CreateMovement(m *entity.CashMovement) error
	// ListMovements devolve todos os lançamentos da conta, em ordem de criação.
	ListMovements(accountID int64) ([]*entity.CashMovement, error)
}

// Package ports define os contratos que a camada de aplicação espera da
// infraestrutura, em especial a unidade de trabalho transacional.
package ports

import (
	"context"

	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

// Repos agrupa os repositórios atados a uma mesma transação. Tudo que um caso
// de uso escreve dentro de TxRunner.Run sai pelo mesmo Commit ou Rollback.
type Repos struct {
	Products  repository.ProductRepository
	Movements repository.InventoryMovementRepository
	Sales     repository.SaleRepository
	Purchases repository.PurchaseRepository
	Titles    repository.TitleRepository
	Cash      repository.CashRepository
	Audit     repository.AuditLogRepository
}

// TxRunner executa fn dentro de uma transação: Commit se fn retorna nil,
// Rollback garantido em qualquer erro ou pânico. É a única forma de obter
// repositórios com garantia de atomicidade.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

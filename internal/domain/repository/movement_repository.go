package repository

import "github.com/gestaofacil/erp-api/internal/domain/entity"

// InventoryMovementRepository persiste o histórico de movimentos de estoque.
// Append-only: não há Update nem Delete.
type InventoryMovementRepository interface {
	Create(m *entity.InventoryMovement) error
	ListByProduct(productID int64, limit, offset int) ([]*entity.InventoryMovement, error)
}

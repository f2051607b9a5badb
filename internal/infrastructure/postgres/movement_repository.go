package postgres

import (
	"context"
	"fmt"

	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementação sobre PostgreSQL (usável com pool ou tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste um movimento de estoque.
func (r *InventoryMovementRepo) Create(m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (reference_id, product_id, type, quantity, reason, branch, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	createdBy := (*int64)(nil)
	if m.CreatedBy != 0 {
		createdBy = &m.CreatedBy
	}
	err := r.q.QueryRow(context.Background(), query,
		m.ReferenceID, m.ProductID, m.Type, m.Quantity, m.Reason, m.Branch, createdBy, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByProduct lista os movimentos de um produto, mais recentes primeiro.
func (r *InventoryMovementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, reference_id, product_id, type, quantity, reason, branch, created_by, created_at
		FROM inventory_movements
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var createdBy *int64
		if err := rows.Scan(&m.ID, &m.ReferenceID, &m.ProductID, &m.Type, &m.Quantity,
			&m.Reason, &m.Branch, &createdBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

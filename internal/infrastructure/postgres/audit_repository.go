package postgres

import (
	"context"
	"fmt"

	"github.com/gestaofacil/erp-api/internal/domain/entity"
	"github.com/gestaofacil/erp-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementação de AuditLogRepository sobre PostgreSQL (usável
// com pool ou tx).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create grava uma entrada de auditoria.
func (r *AuditLogRepo) Create(e *entity.AuditLogEntry) error {
	query := `
		INSERT INTO audit_log (entity_type, entity_id, action, from_status, to_status, changed_fields, user_id, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	userID := (*int64)(nil)
	if e.UserID != 0 {
		userID = &e.UserID
	}
	err := r.q.QueryRow(context.Background(), query,
		e.EntityType, e.EntityID, e.Action, e.FromStatus, e.ToStatus,
		e.ChangedFields, userID, e.Timestamp).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("create audit entry: %w", err)
	}
	return nil
}

// ListByEntity lista a trilha de um título, em ordem de gravação.
func (r *AuditLogRepo) ListByEntity(entityType string, entityID int64) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT id, entity_type, entity_id, action, from_status, to_status, changed_fields, user_id, ts
		FROM audit_log WHERE entity_type = $1 AND entity_id = $2 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		var userID *int64
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.FromStatus,
			&e.ToStatus, &e.ChangedFields, &userID, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if userID != nil {
			e.UserID = *userID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

package repository

import "github.com/gestaofacil/erp-api/internal/domain/entity"

// AuditLogRepository grava a trilha de auditoria das transições financeiras.
// Write-only: entradas nunca são alteradas.
type AuditLogRepository interface {
	Create(e *entity.AuditLogEntry) error
	ListByEntity(entityType string, entityID int64) ([]*entity.AuditLogEntry, error)
}

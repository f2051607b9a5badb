package entity

import "time"

// AuditLogEntry registra toda transição de estado de um título financeiro.
// Escrita uma única vez, na mesma transação da baixa; nunca alterada.
type AuditLogEntry struct {
	ID            int64
	EntityType    string // payable | receivable
	EntityID      int64
	Action        string
	FromStatus    string
	ToStatus      string
	ChangedFields string // resumo antes/depois dos campos alterados (JSON)
	UserID        int64
	Timestamp     time.Time
}

package entity

import "time"

// Papéis de usuário.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User é o operador autenticado; sua identidade vira o created_by dos
// movimentos e o user_id da trilha de auditoria.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Ativo        bool
	CreatedAt    time.Time
}

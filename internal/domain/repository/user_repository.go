package repository

import "github.com/gestaofacil/erp-api/internal/domain/entity"

// UserRepository é a porta mínima de usuários para o login.
type UserRepository interface {
	// FindByEmail devolve nil, nil se o usuário não existe.
	FindByEmail(email string) (*entity.User, error)
}

package repository

import "github.com/wmslabs/composicao-api/internal/domain/entity"

// UserRepository persistência de usuários (autenticação).
type UserRepository interface {
	Create(user *entity.User) error
	// GetByEmail devolve nil (sem erro) quando não existe.
	GetByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}

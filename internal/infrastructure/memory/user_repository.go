package memory

import (
	"fmt"

	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

// UserRepository implementação em memória de usuários.
type UserRepository struct {
	store *Store
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository cria o repositório de usuários.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create insere o usuário; e-mail repetido devolve ErrEmailExists.
func (r *UserRepository) Create(user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: %s", domain.ErrEmailExists, user.Email)
		}
	}
	cp := *user
	r.store.users[user.ID] = &cp
	return nil
}

// GetByEmail devolve uma cópia do usuário, ou nil.
func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID devolve uma cópia do usuário, ou nil.
func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

package repository

import "github.com/wmslabs/composicao-api/internal/domain/entity"

// PalletRepository porta de leitura dos dados mestres de palete.
type PalletRepository interface {
	// GetByID devolve nil (sem erro) quando o palete não existe.
	GetByID(id string) (*entity.Pallet, error)
}

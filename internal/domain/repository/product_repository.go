package repository

import "github.com/wmslabs/composicao-api/internal/domain/entity"

// ProductRepository porta de leitura dos dados mestres de produto.
type ProductRepository interface {
	// GetByID devolve nil (sem erro) quando o produto não existe.
	GetByID(id string) (*entity.Product, error)
}

package repository

import "github.com/wmslabs/composicao-api/internal/domain/entity"

// PackagingRepository porta de leitura da hierarquia de embalagens.
type PackagingRepository interface {
	// GetByID devolve nil (sem erro) quando a embalagem não existe.
	GetByID(id string) (*entity.PackagingType, error)
	// GetBaseUnit devolve a embalagem unidade-base do produto, ou nil.
	GetBaseUnit(productID string) (*entity.PackagingType, error)
	// ListByProduct devolve todas as embalagens (ativas ou não) do produto.
	ListByProduct(productID string) ([]entity.PackagingType, error)
}

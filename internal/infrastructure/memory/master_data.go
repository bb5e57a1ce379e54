package memory

import (
	"sort"

	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

// Repositórios de dados mestres (somente leitura para o núcleo).

// ProductRepository leitura de produtos.
type ProductRepository struct {
	store *Store
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository cria o repositório de produtos.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// GetByID devolve uma cópia do produto, ou nil.
func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// PackagingRepository leitura da hierarquia de embalagens.
type PackagingRepository struct {
	store *Store
}

var _ repository.PackagingRepository = (*PackagingRepository)(nil)

// NewPackagingRepository cria o repositório de embalagens.
func NewPackagingRepository(store *Store) *PackagingRepository {
	return &PackagingRepository{store: store}
}

// GetByID devolve uma cópia da embalagem, ou nil.
func (r *PackagingRepository) GetByID(id string) (*entity.PackagingType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	pt, ok := r.store.packagings[id]
	if !ok {
		return nil, nil
	}
	cp := *pt
	return &cp, nil
}

// GetBaseUnit devolve a embalagem unidade-base ativa do produto, ou nil.
func (r *PackagingRepository) GetBaseUnit(productID string) (*entity.PackagingType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, pt := range r.store.packagings {
		if pt.ProductID == productID && pt.IsBaseUnit {
			cp := *pt
			return &cp, nil
		}
	}
	return nil, nil
}

// ListByProduct devolve todas as embalagens do produto, por nível e nome.
func (r *PackagingRepository) ListByProduct(productID string) ([]entity.PackagingType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []entity.PackagingType
	for _, pt := range r.store.packagings {
		if pt.ProductID == productID {
			out = append(out, *pt)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Level != out[b].Level {
			return out[a].Level < out[b].Level
		}
		return out[a].Name < out[b].Name
	})
	return out, nil
}

// PalletRepository leitura de paletes.
type PalletRepository struct {
	store *Store
}

var _ repository.PalletRepository = (*PalletRepository)(nil)

// NewPalletRepository cria o repositório de paletes.
func NewPalletRepository(store *Store) *PalletRepository {
	return &PalletRepository{store: store}
}

// GetByID devolve uma cópia do palete, ou nil.
func (r *PalletRepository) GetByID(id string) (*entity.Pallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.pallets[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

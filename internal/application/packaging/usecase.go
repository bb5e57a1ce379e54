package packaging

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/packing"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

// Resolver resolve a hierarquia de embalagens de um produto: fator de conversão
// para unidades base e dimensões/peso nominais da embalagem escolhida.
type Resolver struct {
	productRepo   repository.ProductRepository
	packagingRepo repository.PackagingRepository
}

// NewResolver constrói o resolver.
func NewResolver(productRepo repository.ProductRepository, packagingRepo repository.PackagingRepository) *Resolver {
	return &Resolver{productRepo: productRepo, packagingRepo: packagingRepo}
}

// ResolvedPackaging resultado da resolução de uma embalagem para um produto.
type ResolvedPackaging struct {
	Product   *entity.Product
	Packaging *entity.PackagingType
	// Factor unidades base contidas em uma unidade da embalagem.
	Factor decimal.Decimal
	// Dimensões e peso nominais de UMA unidade da embalagem: base do produto
	// com altura e peso escalados pelo fator.
	UnitWeightKg float64
	UnitWidthCm  float64
	UnitLengthCm float64
	UnitHeightCm float64
}

// PackingItem converte a resolução em um item do núcleo de cálculo.
func (r *ResolvedPackaging) PackingItem(quantity int64) packing.Item {
	return packing.Item{
		ProductID:       r.Product.ID,
		PackagingTypeID: r.Packaging.ID,
		Quantity:        quantity,
		UnitWeightKg:    r.UnitWeightKg,
		UnitWidthCm:     r.UnitWidthCm,
		UnitLengthCm:    r.UnitLengthCm,
		UnitHeightCm:    r.UnitHeightCm,
	}
}

// Resolve localiza produto e embalagem e deriva fator e dimensões nominais.
// packagingTypeID vazio resolve a unidade base do produto.
// Erros: ErrNotFound quando produto/embalagem não existem ou a embalagem não
// pertence ao produto; ErrInactive quando produto ou embalagem estão inativos.
func (r *Resolver) Resolve(_ context.Context, productID, packagingTypeID string) (*ResolvedPackaging, error) {
	product, err := r.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: produto %s", domain.ErrNotFound, productID)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: produto %s", domain.ErrInactive, productID)
	}

	var pkg *entity.PackagingType
	if packagingTypeID == "" {
		pkg, err = r.packagingRepo.GetBaseUnit(productID)
		if err != nil {
			return nil, err
		}
		if pkg == nil {
			return nil, fmt.Errorf("%w: produto %s não possui embalagem unidade-base", domain.ErrNotFound, productID)
		}
	} else {
		pkg, err = r.packagingRepo.GetByID(packagingTypeID)
		if err != nil {
			return nil, err
		}
		if pkg == nil || pkg.ProductID != productID {
			return nil, fmt.Errorf("%w: embalagem %s não pertence ao produto %s", domain.ErrNotFound, packagingTypeID, productID)
		}
	}
	if !pkg.IsActive {
		return nil, fmt.Errorf("%w: embalagem %s", domain.ErrInactive, pkg.ID)
	}
	if !pkg.BaseUnitQuantity.IsPositive() {
		return nil, fmt.Errorf("%w: embalagem %s com quantidade base não positiva", domain.ErrInvalidInput, pkg.ID)
	}

	factor, _ := pkg.BaseUnitQuantity.Float64()
	baseWeight, _ := product.WeightKg.Float64()

	return &ResolvedPackaging{
		Product:      product,
		Packaging:    pkg,
		Factor:       pkg.BaseUnitQuantity,
		UnitWeightKg: baseWeight * factor,
		UnitWidthCm:  product.WidthCm,
		UnitLengthCm: product.LengthCm,
		UnitHeightCm: product.HeightCm * factor,
	}, nil
}

// Hierarchy devolve a árvore de embalagens do produto como lista ordenada por
// nível e nome, validando os invariantes estruturais: exatamente uma unidade
// base e fator múltiplo positivo do pai quando houver pai.
func (r *Resolver) Hierarchy(_ context.Context, productID string) ([]entity.PackagingType, error) {
	product, err := r.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: produto %s", domain.ErrNotFound, productID)
	}

	all, err := r.packagingRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}

	// Arena indexada por id; o pai é referenciado por id, nunca por ponteiro.
	byID := make(map[string]*entity.PackagingType, len(all))
	baseUnits := 0
	for i := range all {
		byID[all[i].ID] = &all[i]
		if all[i].IsBaseUnit {
			baseUnits++
		}
	}
	if baseUnits != 1 {
		return nil, fmt.Errorf("%w: produto %s possui %d embalagens unidade-base (esperado exatamente 1)",
			domain.ErrBusinessRule, productID, baseUnits)
	}
	for i := range all {
		p := &all[i]
		if p.ParentID == nil {
			continue
		}
		parent, ok := byID[*p.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: embalagem %s referencia pai inexistente %s",
				domain.ErrBusinessRule, p.ID, *p.ParentID)
		}
		if parent.BaseUnitQuantity.IsZero() ||
			!p.BaseUnitQuantity.Mod(parent.BaseUnitQuantity).IsZero() ||
			!p.BaseUnitQuantity.GreaterThan(parent.BaseUnitQuantity) {
			return nil, fmt.Errorf("%w: embalagem %s (%s un.) não é múltiplo do pai %s (%s un.)",
				domain.ErrBusinessRule, p.ID, p.BaseUnitQuantity, parent.ID, parent.BaseUnitQuantity)
		}
	}

	sort.SliceStable(all, func(a, b int) bool {
		if all[a].Level != all[b].Level {
			return all[a].Level < all[b].Level
		}
		return all[a].Name < all[b].Name
	})
	return all, nil
}

// Convert converte uma quantidade entre dois níveis de embalagem do mesmo
// produto, passando pelas unidades base. O resultado pode ser fracionário
// (ex.: 30 unidades = 2,5 caixas de 12).
func (r *Resolver) Convert(ctx context.Context, productID string, qty decimal.Decimal, fromID, toID string) (decimal.Decimal, error) {
	if qty.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: quantidade negativa", domain.ErrInvalidInput)
	}
	from, err := r.Resolve(ctx, productID, fromID)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := r.Resolve(ctx, productID, toID)
	if err != nil {
		return decimal.Zero, err
	}
	baseQty := qty.Mul(from.Factor)
	return baseQty.Div(to.Factor), nil
}

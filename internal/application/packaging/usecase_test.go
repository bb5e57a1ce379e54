package packaging_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmslabs/composicao-api/internal/application/packaging"
	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

// fixtureStore monta um produto com hierarquia unidade → caixa 12 → fardo 48.
func fixtureStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	store.PutProduct(&entity.Product{
		ID: "leite", SKU: "SKU-LEITE", Name: "Leite UHT 1L",
		WeightKg: decimal.NewFromFloat(1.05),
		WidthCm:  7, LengthCm: 7, HeightCm: 20,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	store.PutPackaging(&entity.PackagingType{
		ID: "leite-un", ProductID: "leite", Name: "Unidade",
		BaseUnitQuantity: decimal.NewFromInt(1), Level: 1,
		IsBaseUnit: true, IsActive: true,
	})
	store.PutPackaging(&entity.PackagingType{
		ID: "leite-cx", ProductID: "leite", Name: "Caixa 12un",
		BaseUnitQuantity: decimal.NewFromInt(12), ParentID: strPtr("leite-un"), Level: 2,
		IsActive: true,
	})
	store.PutPackaging(&entity.PackagingType{
		ID: "leite-fd", ProductID: "leite", Name: "Fardo 48un",
		BaseUnitQuantity: decimal.NewFromInt(48), ParentID: strPtr("leite-cx"), Level: 3,
		IsActive: true,
	})
	return store
}

func newResolver(store *memory.Store) *packaging.Resolver {
	return packaging.NewResolver(
		memory.NewProductRepository(store),
		memory.NewPackagingRepository(store),
	)
}

func TestResolve_EmbalagemVaziaResolveUnidadeBase(t *testing.T) {
	resolver := newResolver(fixtureStore(t))

	resolved, err := resolver.Resolve(context.Background(), "leite", "")
	require.NoError(t, err)

	assert.Equal(t, "leite-un", resolved.Packaging.ID)
	assert.True(t, resolved.Factor.Equal(decimal.NewFromInt(1)))
	assert.InDelta(t, 1.05, resolved.UnitWeightKg, 0.0001)
	assert.Equal(t, 20.0, resolved.UnitHeightCm)
}

func TestResolve_CaixaEscalaPesoEAltura(t *testing.T) {
	resolver := newResolver(fixtureStore(t))

	resolved, err := resolver.Resolve(context.Background(), "leite", "leite-cx")
	require.NoError(t, err)

	assert.True(t, resolved.Factor.Equal(decimal.NewFromInt(12)))
	assert.InDelta(t, 12.6, resolved.UnitWeightKg, 0.0001, "peso da caixa = 12 x 1,05kg")
	assert.Equal(t, 240.0, resolved.UnitHeightCm, "altura escala pelo fator")
	assert.Equal(t, 7.0, resolved.UnitWidthCm, "a base não escala")
}

func TestResolve_ProdutoInexistente(t *testing.T) {
	resolver := newResolver(fixtureStore(t))

	_, err := resolver.Resolve(context.Background(), "inexistente", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_EmbalagemDeOutroProduto(t *testing.T) {
	store := fixtureStore(t)
	store.PutProduct(&entity.Product{
		ID: "detergente", SKU: "SKU-DET", Name: "Detergente",
		WeightKg: decimal.NewFromFloat(0.55), WidthCm: 6, LengthCm: 6, HeightCm: 22,
		IsActive: true,
	})
	resolver := newResolver(store)

	_, err := resolver.Resolve(context.Background(), "detergente", "leite-cx")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_ProdutoInativo(t *testing.T) {
	store := fixtureStore(t)
	store.PutProduct(&entity.Product{
		ID: "leite", SKU: "SKU-LEITE", Name: "Leite UHT 1L",
		WeightKg: decimal.NewFromFloat(1.05), WidthCm: 7, LengthCm: 7, HeightCm: 20,
		IsActive: false,
	})
	resolver := newResolver(store)

	_, err := resolver.Resolve(context.Background(), "leite", "")
	assert.ErrorIs(t, err, domain.ErrInactive)
}

func TestResolve_EmbalagemInativa(t *testing.T) {
	store := fixtureStore(t)
	store.PutPackaging(&entity.PackagingType{
		ID: "leite-cx", ProductID: "leite", Name: "Caixa 12un",
		BaseUnitQuantity: decimal.NewFromInt(12), ParentID: strPtr("leite-un"), Level: 2,
		IsActive: false,
	})
	resolver := newResolver(store)

	_, err := resolver.Resolve(context.Background(), "leite", "leite-cx")
	assert.ErrorIs(t, err, domain.ErrInactive)
}

func TestHierarchy_OrdenadaPorNivel(t *testing.T) {
	resolver := newResolver(fixtureStore(t))

	types, err := resolver.Hierarchy(context.Background(), "leite")
	require.NoError(t, err)
	require.Len(t, types, 3)

	assert.Equal(t, "leite-un", types[0].ID)
	assert.Equal(t, "leite-cx", types[1].ID)
	assert.Equal(t, "leite-fd", types[2].ID)
}

func TestHierarchy_SemUnidadeBase(t *testing.T) {
	store := fixtureStore(t)
	store.PutPackaging(&entity.PackagingType{
		ID: "leite-un", ProductID: "leite", Name: "Unidade",
		BaseUnitQuantity: decimal.NewFromInt(1), Level: 1,
		IsBaseUnit: false, IsActive: true,
	})
	resolver := newResolver(store)

	_, err := resolver.Hierarchy(context.Background(), "leite")
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "unidade-base")
}

func TestHierarchy_FatorNaoMultiploDoPai(t *testing.T) {
	store := fixtureStore(t)
	store.PutPackaging(&entity.PackagingType{
		ID: "leite-fd", ProductID: "leite", Name: "Fardo 50un",
		BaseUnitQuantity: decimal.NewFromInt(50), ParentID: strPtr("leite-cx"), Level: 3,
		IsActive: true,
	})
	resolver := newResolver(store)

	_, err := resolver.Hierarchy(context.Background(), "leite")
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "múltiplo")
}

func TestConvert_EntreNiveis(t *testing.T) {
	resolver := newResolver(fixtureStore(t))
	ctx := context.Background()

	// 2 fardos de 48 = 96 unidades = 8 caixas de 12.
	out, err := resolver.Convert(ctx, "leite", decimal.NewFromInt(2), "leite-fd", "leite-cx")
	require.NoError(t, err)
	assert.True(t, out.Equal(decimal.NewFromInt(8)), "esperado 8, obtido %s", out)

	// 30 unidades = 2,5 caixas (fracionário permitido).
	out, err = resolver.Convert(ctx, "leite", decimal.NewFromInt(30), "", "leite-cx")
	require.NoError(t, err)
	assert.True(t, out.Equal(decimal.NewFromFloat(2.5)), "esperado 2,5, obtido %s", out)
}

func TestConvert_QuantidadeNegativa(t *testing.T) {
	resolver := newResolver(fixtureStore(t))

	_, err := resolver.Convert(context.Background(), "leite", decimal.NewFromInt(-1), "", "leite-cx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

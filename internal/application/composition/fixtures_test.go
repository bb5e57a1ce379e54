package composition_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wmslabs/composicao-api/internal/application/composition"
	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/application/packaging"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/infrastructure/memory"
)

const (
	testUserID  = "00000000-0000-0000-0000-000000000001"
	testAdminID = "00000000-0000-0000-0000-000000000002"
)

func strPtr(s string) *string { return &s }

// newFixtureStore monta os dados mestres dos testes: leite e detergente com
// unidade base + caixa, palete PBR e estoque de leite em duas UCPs (10 + 90,
// a primeira mais antiga para o consumo FIFO).
func newFixtureStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()

	store.PutProduct(&entity.Product{
		ID: "leite", SKU: "SKU-LEITE", Name: "Leite UHT 1L",
		WeightKg: decimal.NewFromFloat(1.05),
		WidthCm:  7, LengthCm: 7, HeightCm: 20,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	store.PutProduct(&entity.Product{
		ID: "detergente", SKU: "SKU-DET", Name: "Detergente Neutro 500ml",
		WeightKg: decimal.NewFromFloat(0.55),
		WidthCm:  6, LengthCm: 6, HeightCm: 22,
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
		ID: "det-un", ProductID: "detergente", Name: "Unidade",
		BaseUnitQuantity: decimal.NewFromInt(1), Level: 1,
		IsBaseUnit: true, IsActive: true,
	})

	store.PutPallet(&entity.Pallet{
		ID: "pbr-01", Code: "PBR-01",
		WidthCm: 100, LengthCm: 120, HeightCm: 180, MaxWeightKg: 1500,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	})

	store.PutInventory(&entity.InventoryRecord{
		ID: "inv-ucp1-leite", UcpID: "UCP-0001", ProductID: "leite", PackagingTypeID: "leite-un",
		Quantity:  decimal.NewFromInt(10),
		CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: now,
	})
	store.PutInventory(&entity.InventoryRecord{
		ID: "inv-ucp2-leite", UcpID: "UCP-0002", ProductID: "leite", PackagingTypeID: "leite-un",
		Quantity:  decimal.NewFromInt(90),
		CreatedAt: now.Add(-1 * time.Hour), UpdatedAt: now,
	})

	return store
}

// newTestUseCase liga o caso de uso aos repositórios em memória.
func newTestUseCase(store *memory.Store) *composition.UseCase {
	resolver := packaging.NewResolver(
		memory.NewProductRepository(store),
		memory.NewPackagingRepository(store),
	)
	return composition.NewUseCase(
		memory.NewTxRunner(store),
		memory.NewCompositionRepository(store),
		memory.NewPalletRepository(store),
		memory.NewReportRepository(store),
		resolver,
		nil, // renderização pdf coberta nos testes de infraestrutura
		nil,
	)
}

// milkRequest requisição padrão: 24 unidades de leite no palete PBR.
func milkRequest() dto.CompositionRequest {
	return dto.CompositionRequest{
		Lines: []dto.CompositionLine{
			{ProductID: "leite", PackagingTypeID: "leite-un", Quantity: 24},
		},
		PalletID: "pbr-01",
	}
}

// saveDraft persiste a composição padrão e devolve a entidade em draft.
func saveDraft(t *testing.T, uc *composition.UseCase) *entity.Composition {
	t.Helper()
	comp, err := uc.Save(context.Background(), testUserID, dto.SaveCompositionRequest{
		Name:               "Palete de leite",
		CompositionRequest: milkRequest(),
	})
	require.NoError(t, err)
	return comp
}

// approve leva a composição draft→validated→approved.
func approve(t *testing.T, uc *composition.UseCase, id string) *entity.Composition {
	t.Helper()
	ctx := context.Background()
	comp, err := uc.UpdateStatus(ctx, testUserID, id, dto.UpdateStatusRequest{Status: entity.CompositionValidated})
	require.NoError(t, err)
	comp, err = uc.UpdateStatus(ctx, testAdminID, id, dto.UpdateStatusRequest{Status: entity.CompositionApproved, Version: comp.Version})
	require.NoError(t, err)
	return comp
}

// assembleExecuted monta a composição padrão e a devolve executada.
func assembleExecuted(t *testing.T, uc *composition.UseCase) *entity.Composition {
	t.Helper()
	ctx := context.Background()
	comp := saveDraft(t, uc)
	approve(t, uc, comp.ID)
	_, err := uc.Assemble(ctx, testUserID, comp.ID, "UCP-MONTAGEM")
	require.NoError(t, err)
	comp, err = uc.GetByID(ctx, comp.ID)
	require.NoError(t, err)
	return comp
}

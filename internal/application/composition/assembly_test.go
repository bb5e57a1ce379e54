package composition_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/infrastructure/memory"
)

// totalStock soma o saldo de um produto/embalagem em todas as UCPs.
func totalStock(t *testing.T, store *memory.Store, productID, packagingTypeID string) decimal.Decimal {
	t.Helper()
	invRepo := memory.NewInventoryRepository(store)
	records, err := invRepo.ListAvailableForUpdate(productID, packagingTypeID)
	require.NoError(t, err)
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.Quantity)
	}
	return total
}

func TestAssemble_ConsomeFIFOComDivisao(t *testing.T) {
	store := newFixtureStore(t)
	uc := newTestUseCase(store)
	ctx := context.Background()

	comp := saveDraft(t, uc)
	approve(t, uc, comp.ID)

	// Estoque: UCP-0001 com 10 (mais antiga) e UCP-0002 com 90. A montagem de
	// 24 esvazia a primeira e tira 14 da segunda.
	outcome, err := uc.Assemble(ctx, testUserID, comp.ID, "UCP-MONTAGEM")
	require.NoError(t, err)

	assert.Equal(t, entity.CompositionExecuted, outcome.Status)
	require.Len(t, outcome.Movements, 2)
	assert.Equal(t, "UCP-0001", outcome.Movements[0].SourceUcpID)
	assert.Equal(t, "10", outcome.Movements[0].Quantity)
	assert.Equal(t, "UCP-0002", outcome.Movements[1].SourceUcpID)
	assert.Equal(t, "14", outcome.Movements[1].Quantity)

	assert.True(t, totalStock(t, store, "leite", "leite-un").Equal(decimal.NewFromInt(76)),
		"100 - 24 = 76 unidades restantes")

	// Movimentos registrados no ledger, um por dedução.
	movs, err := memory.NewMovementRepository(store).ListByComposition(comp.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementAssembly, movs[0].Type)
	assert.Equal(t, "UCP-MONTAGEM", movs[0].TargetUcpID)
	assert.Equal(t, testUserID, movs[0].PerformedBy)

	loaded, err := uc.GetByID(ctx, comp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CompositionExecuted, loaded.Status)
	assert.NotNil(t, loaded.ExecutedAt)
}

func TestAssemble_EstoqueInsuficienteNadaMuda(t *testing.T) {
	store := newFixtureStore(t)
	uc := newTestUseCase(store)
	ctx := context.Background()

	req := milkRequest()
	req.Lines[0].Quantity = 150 // estoque total é 100
	comp, err := uc.Save(ctx, testUserID, dto.SaveCompositionRequest{
		Name: "Palete grande", CompositionRequest: req,
	})
	require.NoError(t, err)
	approve(t, uc, comp.ID)

	_, err = uc.Assemble(ctx, testUserID, comp.ID, "UCP-MONTAGEM")

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, err, domain.ErrBusinessRule, "falta de estoque é uma regra de negócio")
	assert.Contains(t, err.Error(), "insuficiente")

	// Rollback completo: saldo intacto, status preservado, nenhum movimento.
	assert.True(t, totalStock(t, store, "leite", "leite-un").Equal(decimal.NewFromInt(100)))
	loaded, err := uc.GetByID(ctx, comp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CompositionApproved, loaded.Status)
	movs, err := memory.NewMovementRepository(store).ListByComposition(comp.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestAssemble_ApenasAprovadas(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	comp := saveDraft(t, uc)

	_, err := uc.Assemble(context.Background(), testUserID, comp.ID, "UCP-MONTAGEM")
	require.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "apenas composições aprovadas")
}

func TestAssemble_ConcorrenciaExatamenteUmaVence(t *testing.T) {
	store := newFixtureStore(t)
	uc := newTestUseCase(store)
	ctx := context.Background()

	// Reduz o estoque a 30: só cabe UMA montagem de 24.
	store.PutInventory(&entity.InventoryRecord{
		ID: "inv-ucp1-leite", UcpID: "UCP-0001", ProductID: "leite", PackagingTypeID: "leite-un",
		Quantity: decimal.NewFromInt(30),
	})
	store.PutInventory(&entity.InventoryRecord{
		ID: "inv-ucp2-leite", UcpID: "UCP-0002", ProductID: "leite", PackagingTypeID: "leite-un",
		Quantity: decimal.Zero,
	})

	var comps []*entity.Composition
	for i := 0; i < 3; i++ {
		comp := saveDraft(t, uc)
		approve(t, uc, comp.ID)
		comps = append(comps, comp)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(comps))
	for i, comp := range comps {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = uc.Assemble(ctx, testUserID, id, "UCP-MONTAGEM")
		}(i, comp.ID)
	}
	wg.Wait()

	var successes, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, successes, "cada unidade de estoque é concedida a exatamente um chamador")
	assert.Equal(t, 2, insufficient)
	assert.True(t, totalStock(t, store, "leite", "leite-un").Equal(decimal.NewFromInt(6)),
		"30 - 24 = 6 unidades restantes")
}

func TestDisassemble_DevolveEstoque(t *testing.T) {
	store := newFixtureStore(t)
	uc := newTestUseCase(store)
	ctx := context.Background()

	comp := assembleExecuted(t, uc)

	outcome, err := uc.Disassemble(ctx, testUserID, comp.ID, []dto.DisassemblyTarget{
		{ProductID: "leite", Quantity: 24, TargetUcpID: "UCP-0001"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CompositionDisassembled, outcome.Status)
	require.Len(t, outcome.Movements, 1)
	assert.Equal(t, comp.PalletID, outcome.Movements[0].SourceUcpID)

	// Ciclo completo montagem+desmontagem devolve o saldo total original.
	assert.True(t, totalStock(t, store, "leite", "leite-un").Equal(decimal.NewFromInt(100)),
		"o ciclo montar/desmontar é neutro para o saldo total")
}

func TestDisassemble_ParcialEmMultiplasUcps(t *testing.T) {
	store := newFixtureStore(t)
	uc := newTestUseCase(store)
	ctx := context.Background()

	comp := assembleExecuted(t, uc)

	outcome, err := uc.Disassemble(ctx, testUserID, comp.ID, []dto.DisassemblyTarget{
		{ProductID: "leite", Quantity: 10, TargetUcpID: "UCP-0001"},
		{ProductID: "leite", Quantity: 14, TargetUcpID: "UCP-NOVA"},
	})
	require.NoError(t, err)
	require.Len(t, outcome.Movements, 2)

	invRepo := memory.NewInventoryRepository(store)
	recs, err := invRepo.ListByUcp("UCP-NOVA")
	require.NoError(t, err)
	require.Len(t, recs, 1, "UCP sem registro prévio ganha um novo")
	assert.True(t, recs[0].Quantity.Equal(decimal.NewFromInt(14)))
}

func TestDisassemble_QuantidadeMaiorQueAContida(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	comp := assembleExecuted(t, uc)

	_, err := uc.Disassemble(context.Background(), testUserID, comp.ID, []dto.DisassemblyTarget{
		{ProductID: "leite", Quantity: 30, TargetUcpID: "UCP-0001"},
	})

	require.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "maior que a disponível",
		"a recusa deve citar a quantidade contida na composição")
}

func TestDisassemble_ApenasExecutadas(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	comp := saveDraft(t, uc)
	approve(t, uc, comp.ID)

	_, err := uc.Disassemble(context.Background(), testUserID, comp.ID, []dto.DisassemblyTarget{
		{ProductID: "leite", Quantity: 1, TargetUcpID: "UCP-0001"},
	})

	require.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "executadas",
		"somente composições executadas podem ser desmontadas")
}

func TestDisassemble_ProdutoForaDaComposicao(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	comp := assembleExecuted(t, uc)

	_, err := uc.Disassemble(context.Background(), testUserID, comp.ID, []dto.DisassemblyTarget{
		{ProductID: "detergente", Quantity: 1, TargetUcpID: "UCP-0001"},
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "não faz parte da composição")
}

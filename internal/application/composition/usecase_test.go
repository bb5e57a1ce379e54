package composition_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
)

func TestCalculate_Deterministico(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	ctx := context.Background()

	first, err := uc.Calculate(ctx, milkRequest())
	require.NoError(t, err)
	require.True(t, first.IsValid)

	for i := 0; i < 5; i++ {
		again, err := uc.Calculate(ctx, milkRequest())
		require.NoError(t, err)
		assert.Equal(t, first, again, "o cálculo deve ser idempotente para a mesma entrada")
	}
}

func TestCalculate_PaleteInexistente(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))

	req := milkRequest()
	req.PalletID = "inexistente"
	_, err := uc.Calculate(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCalculate_MaisDe50Linhas(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))

	req := dto.CompositionRequest{PalletID: "pbr-01"}
	for i := 0; i < 51; i++ {
		req.Lines = append(req.Lines, dto.CompositionLine{
			ProductID: "leite", PackagingTypeID: "leite-un", Quantity: 1,
		})
	}
	_, err := uc.Calculate(context.Background(), req)

	require.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "50", "a recusa deve citar o limite de linhas")
}

func TestValidate_EcoaMetricas(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))

	out, err := uc.Validate(context.Background(), milkRequest())
	require.NoError(t, err)

	assert.True(t, out.IsValid)
	assert.InDelta(t, 25.2, out.Metrics.TotalWeightKg, 0.0001, "24 x 1,05kg")
	assert.Equal(t, 20.0, out.Metrics.TotalHeightCm)
}

func TestSave_PersisteDraftComSnapshot(t *testing.T) {
	store := newFixtureStore(t)
	uc := newTestUseCase(store)

	comp := saveDraft(t, uc)

	assert.Equal(t, entity.CompositionDraft, comp.Status)
	assert.Equal(t, 1, comp.Version)
	assert.Equal(t, testUserID, comp.CreatedBy)
	require.NotNil(t, comp.Result, "o draft guarda o snapshot do resultado")
	assert.True(t, comp.Result.IsValid)
	require.Len(t, comp.Items, 1)
	assert.Equal(t, int64(24), comp.Items[0].Quantity)
	assert.Equal(t, 1, comp.Items[0].Layer)

	loaded, err := uc.GetByID(context.Background(), comp.ID)
	require.NoError(t, err)
	assert.Equal(t, comp.ID, loaded.ID)
}

func TestSave_DraftComViolacoesEhPermitido(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))

	req := milkRequest()
	req.Lines[0].Quantity = 5000 // estoura peso e altura
	comp, err := uc.Save(context.Background(), testUserID, dto.SaveCompositionRequest{
		Name:               "Palete impossível",
		CompositionRequest: req,
	})
	require.NoError(t, err, "drafts inválidos podem ser salvos")
	assert.False(t, comp.Result.IsValid)

	// Mas não podem ser validados.
	_, err = uc.UpdateStatus(context.Background(), testUserID, comp.ID,
		dto.UpdateStatusRequest{Status: entity.CompositionValidated})
	require.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "violações")
}

func TestList_FiltraPorStatusEBusca(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.Save(ctx, testUserID, dto.SaveCompositionRequest{
			Name:               fmt.Sprintf("Composição %d", i),
			CompositionRequest: milkRequest(),
		})
		require.NoError(t, err)
	}

	items, total, err := uc.List(ctx, dto.CompositionListFilter{Status: entity.CompositionDraft})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 3)

	// Busca ignora acentos e caixa.
	items, total, err = uc.List(ctx, dto.CompositionListFilter{Search: "COMPOSICAO 1"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Composição 1", items[0].Name)

	_, _, err = uc.List(ctx, dto.CompositionListFilter{Status: "pending"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_FluxoCompleto(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	ctx := context.Background()

	comp := saveDraft(t, uc)

	comp, err := uc.UpdateStatus(ctx, testUserID, comp.ID, dto.UpdateStatusRequest{Status: entity.CompositionValidated})
	require.NoError(t, err)
	assert.Equal(t, entity.CompositionValidated, comp.Status)
	assert.Equal(t, 2, comp.Version)

	comp, err = uc.UpdateStatus(ctx, testAdminID, comp.ID, dto.UpdateStatusRequest{Status: entity.CompositionApproved, Version: 2})
	require.NoError(t, err)
	assert.Equal(t, entity.CompositionApproved, comp.Status)
	require.NotNil(t, comp.ApprovedBy)
	assert.Equal(t, testAdminID, *comp.ApprovedBy)
	assert.NotNil(t, comp.ApprovedAt)
}

func TestUpdateStatus_TransicaoInvalida(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))

	comp := saveDraft(t, uc)
	_, err := uc.UpdateStatus(context.Background(), testUserID, comp.ID,
		dto.UpdateStatusRequest{Status: entity.CompositionApproved})

	require.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "draft → approved")
}

func TestUpdateStatus_ExecutedSoPelaMontagem(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	comp := saveDraft(t, uc)
	approve(t, uc, comp.ID)

	_, err := uc.UpdateStatus(context.Background(), testUserID, comp.ID,
		dto.UpdateStatusRequest{Status: entity.CompositionExecuted})

	require.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "montagem")
}

func TestUpdateStatus_MesmoStatusEhNoOp(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	comp := saveDraft(t, uc)

	again, err := uc.UpdateStatus(context.Background(), testUserID, comp.ID,
		dto.UpdateStatusRequest{Status: entity.CompositionDraft})
	require.NoError(t, err)
	assert.Equal(t, 1, again.Version, "repetir a transição não avança a versão")
}

func TestUpdateStatus_ConflitoDeVersao(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	ctx := context.Background()
	comp := saveDraft(t, uc)

	// Outro escritor validou primeiro: a versão 1 do primeiro leitor caducou.
	_, err := uc.UpdateStatus(ctx, testUserID, comp.ID, dto.UpdateStatusRequest{Status: entity.CompositionValidated})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, testUserID, comp.ID, dto.UpdateStatusRequest{Status: entity.CompositionCancelled, Version: 1})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "desatualizada")
}

func TestSoftDelete(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	ctx := context.Background()
	comp := saveDraft(t, uc)

	require.NoError(t, uc.SoftDelete(ctx, comp.ID))

	_, err := uc.GetByID(ctx, comp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "composição excluída some das consultas")

	assert.ErrorIs(t, uc.SoftDelete(ctx, comp.ID), domain.ErrNotFound)
}

func TestSoftDelete_ExecutadaEhBloqueada(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	comp := assembleExecuted(t, uc)

	err := uc.SoftDelete(context.Background(), comp.ID)
	require.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "desmonte antes")
}

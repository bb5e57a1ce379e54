package composition_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmslabs/composicao-api/internal/application/composition"
	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/application/packaging"
	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/infrastructure/memory"
	"github.com/wmslabs/composicao-api/internal/infrastructure/xmlreport"
)

func TestReport_ApenasExecutadasOuPosteriores(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	comp := saveDraft(t, uc)

	_, err := uc.Report(context.Background(), testUserID, comp.ID, dto.ReportOptions{})

	require.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Contains(t, err.Error(), "executadas ou posteriores")
}

func TestReport_MetricasEResumo(t *testing.T) {
	store := newFixtureStore(t)
	uc := newTestUseCase(store)
	comp := assembleExecuted(t, uc)

	report, err := uc.Report(context.Background(), testUserID, comp.ID, dto.ReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, comp.ID, report.CompositionID)
	assert.Equal(t, testUserID, report.GeneratedBy)
	assert.Equal(t, 1, report.Metrics.ItemCount)
	assert.Equal(t, int64(24), report.Metrics.TotalUnits)
	assert.Equal(t, 1, report.Metrics.Layers)
	// 24 caixinhas de leite mal arranham o volume do palete.
	assert.Less(t, report.Metrics.SpaceUtilization, 5.0)
	assert.Equal(t, "baixo", report.Summary.OverallRating)
	assert.Equal(t, entity.CompositionExecuted, report.Summary.Status)
	assert.InDelta(t, 25.2, report.Summary.TotalWeightKg, 0.01)

	assert.Empty(t, report.Recommendations, "recomendações só quando solicitadas")
	assert.Nil(t, report.Costs, "custos só quando solicitados")
	assert.Empty(t, report.Document, "saída json não carrega bytes")

	// O snapshot fica persistido para consulta posterior.
	records, err := memory.NewReportRepository(store).ListByComposition(comp.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entity.ReportSummary, records[0].ReportType)
	assert.Equal(t, report.ID, records[0].ID)
}

func TestReport_ComCustosERecomendacoes(t *testing.T) {
	store := newFixtureStore(t)
	uc := newTestUseCase(store)
	comp := assembleExecuted(t, uc)

	report, err := uc.Report(context.Background(), testUserID, comp.ID, dto.ReportOptions{
		IncludeCosts:           true,
		IncludeRecommendations: true,
	})
	require.NoError(t, err)

	require.NotNil(t, report.Costs)
	assert.InDelta(t, 10.80, report.Costs.PackagingCost, 0.001, "24 unidades x R$0,45")
	assert.InDelta(t, 14.52, report.Costs.HandlingCost, 0.001, "1 camada + 25,2kg")
	assert.InDelta(t, 25.32, report.Costs.TotalCost, 0.001)

	require.NotEmpty(t, report.Recommendations)
	var mentionsSpace bool
	for _, rec := range report.Recommendations {
		if strings.Contains(rec, "espaço") {
			mentionsSpace = true
		}
	}
	assert.True(t, mentionsSpace, "aproveitamento baixo deve render recomendação de consolidação")

	records, err := memory.NewReportRepository(store).ListByComposition(comp.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entity.ReportFull, records[0].ReportType)
	assert.InDelta(t, 25.32, records[0].TotalCost, 0.001)
}

func TestReport_FormatoDesconhecido(t *testing.T) {
	uc := newTestUseCase(newFixtureStore(t))
	comp := assembleExecuted(t, uc)

	_, err := uc.Report(context.Background(), testUserID, comp.ID, dto.ReportOptions{Format: "csv"})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "formato desconhecido")
}

func TestReport_FormatoXML(t *testing.T) {
	store := newFixtureStore(t)
	resolver := packaging.NewResolver(
		memory.NewProductRepository(store),
		memory.NewPackagingRepository(store),
	)
	uc := composition.NewUseCase(
		memory.NewTxRunner(store),
		memory.NewCompositionRepository(store),
		memory.NewPalletRepository(store),
		memory.NewReportRepository(store),
		resolver,
		nil,
		xmlreport.NewRomaneioBuilder(),
	)
	comp := assembleExecuted(t, uc)

	report, err := uc.Report(context.Background(), testUserID, comp.ID, dto.ReportOptions{Format: "xml"})
	require.NoError(t, err)

	require.NotEmpty(t, report.Document)
	doc := string(report.Document)
	assert.Contains(t, doc, "<Romaneio")
	assert.Contains(t, doc, "<Composicao>")
	assert.Contains(t, doc, comp.ID)
	assert.Contains(t, doc, "Palete de leite")
}

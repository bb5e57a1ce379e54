package composition

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/packing"
)

// Tarifas do modelo de custo estimado. O detalhamento exposto é
// embalagem + manuseio = total; as tarifas em si são parâmetros internos.
const (
	packagingCostPerUnit = 0.45  // R$ por unidade embalada
	handlingCostPerLayer = 12.50 // R$ por camada montada
	handlingCostPerKg    = 0.08  // R$ por kg movimentado
)

// Report deriva o relatório de uma composição executada (ou posterior):
// métricas, recomendações, custos quando solicitados e resumo executivo.
// Além do snapshot persistido, Format seleciona a saída: json, pdf ou xml.
func (uc *UseCase) Report(ctx context.Context, userID, compositionID string, opts dto.ReportOptions) (*dto.CompositionReportDTO, error) {
	comp, err := uc.GetByID(ctx, compositionID)
	if err != nil {
		return nil, err
	}
	switch comp.Status {
	case entity.CompositionExecuted, entity.CompositionDisassembled, entity.CompositionArchived:
	default:
		return nil, fmt.Errorf("%w: relatório disponível apenas para composições executadas ou posteriores (status atual: %s)",
			domain.ErrBusinessRule, comp.Status)
	}

	items := activeItems(comp)
	var totalUnits int64
	for _, it := range items {
		totalUnits += it.Quantity
	}

	metrics := dto.ReportMetrics{
		Efficiency: round2(resultEfficiency(comp)),
		ItemCount:  len(items),
		TotalUnits: totalUnits,
	}
	if comp.Result != nil {
		metrics.SpaceUtilization = round2(comp.Result.Efficiency)
		metrics.Layers = comp.Result.Layers
		if comp.Result.WeightLimitKg > 0 {
			metrics.WeightUtilization = round2(comp.TotalWeight / comp.Result.WeightLimitKg * 100)
		}
	}
	if metrics.WeightUtilization == 0 && comp.TotalWeight > 0 {
		metrics.WeightUtilization = round2(comp.TotalWeight / packing.MaxTotalWeightKg * 100)
	}

	report := &dto.CompositionReportDTO{
		ID:            uuid.New().String(),
		CompositionID: comp.ID,
		Name:          comp.Name,
		Metrics:       metrics,
		Summary: dto.ReportSummary{
			OverallRating: rating(metrics.Efficiency),
			Efficiency:    metrics.Efficiency,
			TotalWeightKg: round2(comp.TotalWeight),
			TotalHeightCm: round2(comp.TotalHeight),
			Status:        comp.Status,
		},
		GeneratedBy: userID,
	}

	if opts.IncludeRecommendations {
		report.Recommendations = recommendations(metrics)
	}
	if opts.IncludeCosts {
		packagingCost := round2(float64(totalUnits) * packagingCostPerUnit)
		handlingCost := round2(float64(metrics.Layers)*handlingCostPerLayer + comp.TotalWeight*handlingCostPerKg)
		report.Costs = &dto.ReportCosts{
			PackagingCost: packagingCost,
			HandlingCost:  handlingCost,
			TotalCost:     round2(packagingCost + handlingCost),
		}
	}

	record := &entity.CompositionReport{
		ID:                report.ID,
		CompositionID:     comp.ID,
		ReportType:        entity.ReportSummary,
		SpaceUtilization:  metrics.SpaceUtilization,
		WeightUtilization: metrics.WeightUtilization,
		Efficiency:        metrics.Efficiency,
		Recommendations:   report.Recommendations,
		OverallRating:     report.Summary.OverallRating,
		GeneratedBy:       userID,
		CreatedAt:         time.Now(),
	}
	if report.Costs != nil {
		record.ReportType = entity.ReportFull
		record.PackagingCost = report.Costs.PackagingCost
		record.HandlingCost = report.Costs.HandlingCost
		record.TotalCost = report.Costs.TotalCost
	}
	if err := uc.reportRepo.Create(record); err != nil {
		return nil, err
	}

	switch opts.Format {
	case "", "json":
	case "pdf":
		if uc.pdfRenderer == nil {
			return nil, fmt.Errorf("%w: saída pdf indisponível", domain.ErrInvalidInput)
		}
		doc, err := uc.pdfRenderer.Render(ctx, comp, report)
		if err != nil {
			return nil, fmt.Errorf("renderizar pdf: %w", err)
		}
		report.Document = doc
	case "xml":
		if uc.xmlBuilder == nil {
			return nil, fmt.Errorf("%w: saída xml indisponível", domain.ErrInvalidInput)
		}
		doc, err := uc.xmlBuilder.Build(comp, report)
		if err != nil {
			return nil, fmt.Errorf("montar xml: %w", err)
		}
		report.Document = doc
	default:
		return nil, fmt.Errorf("%w: formato desconhecido %q", domain.ErrInvalidInput, opts.Format)
	}

	return report, nil
}

func resultEfficiency(comp *entity.Composition) float64 {
	if comp.Result == nil {
		return 0
	}
	return comp.Result.Efficiency
}

// rating classifica o aproveitamento geral.
func rating(efficiency float64) string {
	switch {
	case efficiency >= 85:
		return "excelente"
	case efficiency >= 70:
		return "bom"
	case efficiency >= 50:
		return "regular"
	default:
		return "baixo"
	}
}

// recommendations gera orientações a partir das métricas.
func recommendations(m dto.ReportMetrics) []string {
	var recs []string
	if m.SpaceUtilization < 60 {
		recs = append(recs, fmt.Sprintf(
			"Aproveitamento de espaço em %.1f%%: considere consolidar mais produtos no mesmo palete.", m.SpaceUtilization))
	}
	if m.WeightUtilization > 90 {
		recs = append(recs, fmt.Sprintf(
			"Peso em %.1f%% do limite: distribua os itens mais pesados nas camadas inferiores.", m.WeightUtilization))
	}
	if m.Layers > 4 {
		recs = append(recs, fmt.Sprintf(
			"Composição com %d camadas: confira a estabilidade da carga antes do transporte.", m.Layers))
	}
	if len(recs) == 0 {
		recs = append(recs, "Composição dentro dos parâmetros recomendados.")
	}
	return recs
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

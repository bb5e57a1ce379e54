// Package pdf implementa a renderização do relatório de composição em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nome da composição  │  Status + Data               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MÉTRICAS: aproveitamento / peso / camadas / unidades        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Produto | Embalagem | Qtde | Camada | Peso | Volume │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUSTOS (opcional): embalagem / manuseio / total             │
//	│  RECOMENDAÇÕES (opcional)                                    │
//	│  FOOTER: código de barras da composição + avaliação geral    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/wmslabs/composicao-api/internal/application/composition"
	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ composition.ReportPDFRenderer = (*MarotoReportRenderer)(nil)

// MarotoReportRenderer implementa composition.ReportPDFRenderer usando Maroto v2.
type MarotoReportRenderer struct{}

// NewMarotoReportRenderer constrói o renderizador.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

// Render gera o PDF do relatório e devolve seus bytes.
func (g *MarotoReportRenderer) Render(
	_ context.Context,
	comp *entity.Composition,
	report *dto.CompositionReportDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Composição de Palete", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(comp))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metricsRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(comp) {
		m.AddRows(r)
	}

	if report.Costs != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(costsRow(report.Costs))
	}
	if len(report.Recommendations) > 0 {
		m.AddRows(line.NewRow(2))
		for _, r := range recommendationRows(report.Recommendations) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(comp, report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nome da composição (esq) e status + data (dir).
func headerRow(comp *entity.Composition) core.Row {
	date := comp.UpdatedAt.Format("02/01/2006")
	if comp.ExecutedAt != nil {
		date = comp.ExecutedAt.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(comp.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Palete: "+comp.PalletID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RELATÓRIO DE COMPOSIÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(comp.Status, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// metricsRow: indicadores principais em quatro colunas.
func metricsRow(report *dto.CompositionReportDTO) core.Row {
	m := report.Metrics
	metric := func(label, value string) []core.Col {
		return []core.Col{col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		)}
	}
	cols := metric("Aproveitamento de espaço", fmt.Sprintf("%.1f%%", m.SpaceUtilization))
	cols = append(cols, metric("Peso sobre o limite", fmt.Sprintf("%.1f%%", m.WeightUtilization))...)
	cols = append(cols, metric("Camadas", fmt.Sprintf("%d", m.Layers))...)
	cols = append(cols, metric("Unidades", fmt.Sprintf("%d", m.TotalUnits))...)
	return row.New(12).Add(cols...)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, al align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: al, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		header(4, "Produto", align.Left),
		header(3, "Embalagem", align.Left),
		header(1, "Qtde", align.Right),
		header(1, "Camada", align.Right),
		header(1, "Peso (kg)", align.Right),
		header(2, "Volume (cm³)", align.Right),
	)
}

func tableItemRows(comp *entity.Composition) []core.Row {
	cell := func(size int, value string, al align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: al, Top: 1}))
	}
	var rows []core.Row
	for _, it := range comp.Items {
		if !it.IsActive {
			continue
		}
		rows = append(rows, row.New(6).Add(
			cell(4, it.ProductID, align.Left),
			cell(3, it.PackagingTypeID, align.Left),
			cell(1, fmt.Sprintf("%d", it.Quantity), align.Right),
			cell(1, fmt.Sprintf("%d", it.Layer), align.Right),
			cell(1, fmt.Sprintf("%.2f", it.Weight), align.Right),
			cell(2, fmt.Sprintf("%.0f", it.Volume), align.Right),
		))
	}
	return rows
}

func costsRow(costs *dto.ReportCosts) core.Row {
	return row.New(10).Add(
		col.New(6).Add(
			text.New("Custos estimados", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
			text.New(fmt.Sprintf("Embalagem: R$ %.2f   Manuseio: R$ %.2f", costs.PackagingCost, costs.HandlingCost),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("TOTAL: R$ %.2f", costs.TotalCost), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 3,
			}),
		),
	)
}

func recommendationRows(recs []string) []core.Row {
	rows := []core.Row{row.New(6).Add(col.New(12).Add(
		text.New("Recomendações", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))}
	for _, rec := range recs {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("• "+rec, props.Text{Size: 8, Top: 1}),
		)))
	}
	return rows
}

// footerRow: código de barras da composição + avaliação geral + geração.
func footerRow(comp *entity.Composition, report *dto.CompositionReportDTO) core.Row {
	return row.New(20).Add(
		col.New(4).Add(
			code.NewBar(comp.ID, props.Barcode{Percent: 75}),
		),
		col.New(8).Add(
			text.New("Avaliação geral: "+report.Summary.OverallRating, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 4,
			}),
			text.New(fmt.Sprintf("Gerado em %s por %s",
				time.Now().Format("02/01/2006 15:04"), report.GeneratedBy), props.Text{
				Size: 7, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

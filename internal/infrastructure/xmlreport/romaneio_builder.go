// Package xmlreport monta o romaneio XML de uma composição finalizada,
// no formato trocado com transportadoras e sistemas de conferência.
package xmlreport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/wmslabs/composicao-api/internal/application/composition"
	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
)

var _ composition.ReportXMLBuilder = (*RomaneioBuilder)(nil)

// RomaneioBuilder implementa composition.ReportXMLBuilder usando etree.
type RomaneioBuilder struct{}

// NewRomaneioBuilder constrói o montador de romaneio.
func NewRomaneioBuilder() *RomaneioBuilder { return &RomaneioBuilder{} }

// Build gera o documento e devolve os bytes com indentação de dois espaços.
func (b *RomaneioBuilder) Build(comp *entity.Composition, report *dto.CompositionReportDTO) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Romaneio")
	root.CreateAttr("versao", "1.0")
	root.CreateAttr("gerado", time.Now().Format(time.RFC3339))

	header := root.CreateElement("Composicao")
	header.CreateElement("Id").SetText(comp.ID)
	header.CreateElement("Nome").SetText(comp.Name)
	header.CreateElement("Palete").SetText(comp.PalletID)
	header.CreateElement("Status").SetText(comp.Status)
	header.CreateElement("PesoTotalKg").SetText(formatFloat(comp.TotalWeight))
	header.CreateElement("AlturaTotalCm").SetText(formatFloat(comp.TotalHeight))
	header.CreateElement("VolumeTotalCm3").SetText(formatFloat(comp.TotalVolume))
	if comp.ExecutedAt != nil {
		header.CreateElement("ExecutadaEm").SetText(comp.ExecutedAt.Format(time.RFC3339))
	}

	items := root.CreateElement("Itens")
	for _, it := range comp.Items {
		if !it.IsActive {
			continue
		}
		item := items.CreateElement("Item")
		item.CreateAttr("produto", it.ProductID)
		item.CreateAttr("embalagem", it.PackagingTypeID)
		item.CreateElement("Quantidade").SetText(strconv.FormatInt(it.Quantity, 10))
		item.CreateElement("Camada").SetText(strconv.Itoa(it.Layer))
		item.CreateElement("PesoKg").SetText(formatFloat(it.Weight))
		item.CreateElement("VolumeCm3").SetText(formatFloat(it.Volume))
	}

	metrics := root.CreateElement("Metricas")
	metrics.CreateElement("AproveitamentoEspaco").SetText(formatFloat(report.Metrics.SpaceUtilization))
	metrics.CreateElement("AproveitamentoPeso").SetText(formatFloat(report.Metrics.WeightUtilization))
	metrics.CreateElement("Camadas").SetText(strconv.Itoa(report.Metrics.Layers))
	metrics.CreateElement("Unidades").SetText(strconv.FormatInt(report.Metrics.TotalUnits, 10))
	metrics.CreateElement("AvaliacaoGeral").SetText(report.Summary.OverallRating)

	if report.Costs != nil {
		costs := root.CreateElement("Custos")
		costs.CreateElement("Embalagem").SetText(formatFloat(report.Costs.PackagingCost))
		costs.CreateElement("Manuseio").SetText(formatFloat(report.Costs.HandlingCost))
		costs.CreateElement("Total").SetText(formatFloat(report.Costs.TotalCost))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar romaneio: %w", err)
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

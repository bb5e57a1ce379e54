package dto

// ReportOptions opções de geração de relatório.
type ReportOptions struct {
	IncludeCosts           bool   `json:"includeCosts"`
	IncludeRecommendations bool   `json:"includeRecommendations"`
	Format                 string `json:"format"` // json (padrão) | pdf | xml
}

// ReportMetrics métricas do relatório.
type ReportMetrics struct {
	SpaceUtilization  float64 `json:"spaceUtilization"`  // %
	WeightUtilization float64 `json:"weightUtilization"` // %
	Efficiency        float64 `json:"efficiency"`        // 0-100
	Layers            int     `json:"layers"`
	ItemCount         int     `json:"itemCount"`
	TotalUnits        int64   `json:"totalUnits"`
}

// ReportCosts decomposição de custos estimados.
type ReportCosts struct {
	PackagingCost float64 `json:"packagingCost"`
	HandlingCost  float64 `json:"handlingCost"`
	TotalCost     float64 `json:"totalCost"`
}

// ReportSummary resumo executivo.
type ReportSummary struct {
	OverallRating string  `json:"overallRating"` // excelente | bom | regular | baixo
	Efficiency    float64 `json:"efficiency"`
	TotalWeightKg float64 `json:"totalWeight"`
	TotalHeightCm float64 `json:"totalHeight"`
	Status        string  `json:"status"`
}

// CompositionReportDTO relatório completo devolvido ao chamador.
type CompositionReportDTO struct {
	ID              string        `json:"id"`
	CompositionID   string        `json:"compositionId"`
	Name            string        `json:"name"`
	Metrics         ReportMetrics `json:"metrics"`
	Recommendations []string      `json:"recommendations,omitempty"`
	Costs           *ReportCosts  `json:"costs,omitempty"`
	Summary         ReportSummary `json:"summary"`
	GeneratedBy     string        `json:"generatedBy"`
	// Document carrega os bytes quando Format é pdf ou xml.
	Document []byte `json:"document,omitempty"`
}

package entity

import "time"

// Tipos de relatório gerados a partir de uma composição finalizada.
const (
	ReportSummary = "summary"
	ReportFull    = "full"
)

// CompositionReport registro persistido de um relatório gerado.
// Os campos estruturados ficam em JSONB; aqui guardamos o essencial tipado.
type CompositionReport struct {
	ID              string
	CompositionID   string
	ReportType      string
	SpaceUtilization  float64 // %
	WeightUtilization float64 // %
	Efficiency        float64 // 0-100
	Recommendations []string
	PackagingCost   float64
	HandlingCost    float64
	TotalCost       float64
	OverallRating   string // "excelente" | "bom" | "regular" | "baixo"
	GeneratedBy     string
	CreatedAt       time.Time
}

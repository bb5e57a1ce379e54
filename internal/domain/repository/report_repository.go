package repository

import "github.com/wmslabs/composicao-api/internal/domain/entity"

// ReportRepository persistência dos relatórios gerados.
type ReportRepository interface {
	Create(report *entity.CompositionReport) error
	ListByComposition(compositionID string) ([]entity.CompositionReport, error)
}

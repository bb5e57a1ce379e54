package postgres

import (
	"context"
	"fmt"

	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo persistência dos relatórios gerados sobre PostgreSQL (pool ou tx).
type ReportRepo struct {
	q Querier
}

// NewReportRepository constrói o adaptador de relatórios. Passar pool ou tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Create insere o relatório gerado.
func (r *ReportRepo) Create(report *entity.CompositionReport) error {
	query := `
		INSERT INTO composition_reports (
			id, composition_id, report_type, space_utilization, weight_utilization,
			efficiency, recommendations, packaging_cost, handling_cost, total_cost,
			overall_rating, generated_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		report.ID, report.CompositionID, report.ReportType, report.SpaceUtilization, report.WeightUtilization,
		report.Efficiency, report.Recommendations, report.PackagingCost, report.HandlingCost, report.TotalCost,
		report.OverallRating, report.GeneratedBy, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// ListByComposition devolve os relatórios da composição na ordem de geração.
func (r *ReportRepo) ListByComposition(compositionID string) ([]entity.CompositionReport, error) {
	query := `
		SELECT id, composition_id, report_type, space_utilization, weight_utilization,
		       efficiency, recommendations, packaging_cost, handling_cost, total_cost,
		       overall_rating, generated_by, created_at
		FROM composition_reports
		WHERE composition_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, compositionID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []entity.CompositionReport
	for rows.Next() {
		var rep entity.CompositionReport
		err := rows.Scan(
			&rep.ID, &rep.CompositionID, &rep.ReportType, &rep.SpaceUtilization, &rep.WeightUtilization,
			&rep.Efficiency, &rep.Recommendations, &rep.PackagingCost, &rep.HandlingCost, &rep.TotalCost,
			&rep.OverallRating, &rep.GeneratedBy, &rep.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

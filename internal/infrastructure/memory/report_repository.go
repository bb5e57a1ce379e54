package memory

import (
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

// ReportRepository implementação em memória dos relatórios gerados.
type ReportRepository struct {
	store *Store
}

var _ repository.ReportRepository = (*ReportRepository)(nil)

// NewReportRepository cria o repositório de relatórios.
func NewReportRepository(store *Store) *ReportRepository {
	return &ReportRepository{store: store}
}

// Create anexa o relatório ao histórico.
func (r *ReportRepository) Create(report *entity.CompositionReport) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *report
	cp.Recommendations = append([]string(nil), report.Recommendations...)
	r.store.reports = append(r.store.reports, cp)
	return nil
}

// ListByComposition devolve os relatórios da composição na ordem de geração.
func (r *ReportRepository) ListByComposition(compositionID string) ([]entity.CompositionReport, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []entity.CompositionReport
	for _, rep := range r.store.reports {
		if rep.CompositionID == compositionID {
			out = append(out, rep)
		}
	}
	return out, nil
}

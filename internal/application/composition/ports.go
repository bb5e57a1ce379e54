package composition

import (
	"context"

	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados a essa transação. Garante atomicidade ao Stock Ledger:
// qualquer erro no callback desfaz toda a mutação de saldo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		compRepo repository.CompositionRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// ReportPDFRenderer renderiza o relatório de uma composição em PDF.
type ReportPDFRenderer interface {
	Render(ctx context.Context, comp *entity.Composition, report *dto.CompositionReportDTO) ([]byte, error)
}

// ReportXMLBuilder monta o romaneio XML de uma composição finalizada.
type ReportXMLBuilder interface {
	Build(comp *entity.Composition, report *dto.CompositionReportDTO) ([]byte, error)
}

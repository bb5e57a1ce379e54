package repository

import "github.com/wmslabs/composicao-api/internal/domain/entity"

// CompositionFilter filtros da listagem de composições.
// Search é casado contra o nome normalizado (sem acentos, minúsculas).
type CompositionFilter struct {
	Status   string
	PalletID string
	Search   string
	Limit    int
	Offset   int
}

// CompositionRepository persistência de composições e seus itens.
// Composições soft-deletadas (is_active=false) não são devolvidas.
type CompositionRepository interface {
	// Create persiste a composição em draft junto com seus itens.
	Create(comp *entity.Composition) error
	// GetByID devolve a composição ativa com itens, ou nil se ausente/inativa.
	GetByID(id string) (*entity.Composition, error)
	// GetForUpdate é GetByID com bloqueio da fila da composição (dentro de tx).
	GetForUpdate(id string) (*entity.Composition, error)
	// List devolve a página filtrada e o total de registros.
	List(filter CompositionFilter) ([]entity.Composition, int, error)
	// UpdateStatus grava status e campos de auditoria com checagem otimista:
	// devolve domain.ErrConflict quando expectedVersion não é mais a corrente.
	UpdateStatus(comp *entity.Composition, expectedVersion int) error
	// SoftDelete desativa a composição e seus itens; ErrNotFound se ausente.
	SoftDelete(id string) error
}

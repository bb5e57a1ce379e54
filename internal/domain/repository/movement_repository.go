package repository

import "github.com/wmslabs/composicao-api/internal/domain/entity"

// MovementRepository registro dos movimentos feitos pelo Stock Ledger.
type MovementRepository interface {
	Create(mov *entity.StockMovement) error
	ListByComposition(compositionID string) ([]entity.StockMovement, error)
}

package repository

import (
	"github.com/shopspring/decimal"

	"github.com/wmslabs/composicao-api/internal/domain/entity"
)

// InventoryRepository persistência dos saldos de estoque por UCP.
// Toda mutação de Quantity acontece dentro de transação; as variantes
// ForUpdate bloqueiam as filas lidas até o commit.
type InventoryRepository interface {
	// ListAvailableForUpdate devolve, bloqueados e em ordem FIFO
	// (created_at, id), os registros com saldo do produto na embalagem dada.
	ListAvailableForUpdate(productID, packagingTypeID string) ([]*entity.InventoryRecord, error)
	// GetForUpdate devolve bloqueado o registro da UCP para produto/embalagem,
	// ou nil se não existir.
	GetForUpdate(ucpID, productID, packagingTypeID string) (*entity.InventoryRecord, error)
	// UpdateQuantity grava o novo saldo de um registro existente.
	UpdateQuantity(recordID string, quantity decimal.Decimal) error
	// Create insere um novo registro de saldo.
	Create(rec *entity.InventoryRecord) error
	// ListByUcp devolve os registros de uma UCP (consulta, sem bloqueio).
	ListByUcp(ucpID string) ([]*entity.InventoryRecord, error)
}

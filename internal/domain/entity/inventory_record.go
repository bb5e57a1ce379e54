package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord é o saldo de um produto/lote/embalagem dentro de uma UCP
// (unidade de carga paletizada). O Stock Ledger é o único que muta Quantity,
// sempre sob transação com bloqueio de fila.
type InventoryRecord struct {
	ID              string
	UcpID           string
	ProductID       string
	PackagingTypeID string
	Lot             *string
	Quantity        decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento do ledger de composição.
const (
	MovementAssembly    = "assembly"    // consumo de estoque na montagem
	MovementDisassembly = "disassembly" // devolução de estoque na desmontagem
)

// StockMovement registra cada deslocamento de saldo feito pelo Stock Ledger,
// com origem, destino e o usuário que executou a operação.
type StockMovement struct {
	ID              string
	CompositionID   string
	ProductID       string
	PackagingTypeID string
	Type            string // assembly | disassembly
	SourceUcpID     string
	TargetUcpID     string
	Quantity        decimal.Decimal
	PerformedBy     string
	CreatedAt       time.Time
}

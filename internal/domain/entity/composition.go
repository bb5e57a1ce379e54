package entity

import (
	"time"

	"github.com/wmslabs/composicao-api/internal/domain/packing"
)

// Status do ciclo de vida de uma composição.
const (
	CompositionDraft        = "draft"
	CompositionValidated    = "validated"
	CompositionApproved     = "approved"
	CompositionExecuted     = "executed"
	CompositionDisassembled = "disassembled"
	CompositionArchived     = "archived"
	CompositionCancelled    = "cancelled"
)

// statusTransitions transições permitidas via atualização direta de status.
// approved→executed acontece apenas via montagem e executed→disassembled apenas
// via desmontagem (Stock Ledger), por isso não constam aqui.
var statusTransitions = map[string][]string{
	CompositionDraft:        {CompositionValidated, CompositionCancelled},
	CompositionValidated:    {CompositionApproved, CompositionCancelled},
	CompositionApproved:     {},
	CompositionExecuted:     {CompositionArchived},
	CompositionDisassembled: {CompositionArchived},
	CompositionArchived:     {},
	CompositionCancelled:    {},
}

// ValidStatus indica se o valor é um status conhecido.
func ValidStatus(s string) bool {
	switch s {
	case CompositionDraft, CompositionValidated, CompositionApproved,
		CompositionExecuted, CompositionDisassembled, CompositionArchived, CompositionCancelled:
		return true
	}
	return false
}

// CanTransition indica se a transição direta from→to é permitida.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Composition é o arranjo planejado/executado de produtos sobre um palete,
// com snapshot do resultado do cálculo e controle de versão otimista.
type Composition struct {
	ID          string
	Name        string
	Description string
	PalletID    string
	Status      string
	Constraints *packing.Constraints // snapshot das restrições informadas
	Result      *packing.Result      // snapshot do resultado calculado
	TotalWeight float64              // kg
	TotalVolume float64              // cm³
	TotalHeight float64              // cm
	CreatedBy   string
	ApprovedBy  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ApprovedAt  *time.Time
	ExecutedAt  *time.Time
	Version     int // versão otimista: escritores desatualizados recebem conflito
	IsActive    bool
	Items       []CompositionItem
}

// QuantityOfProduct soma a quantidade dos itens ativos de um produto.
func (c *Composition) QuantityOfProduct(productID string) int64 {
	var total int64
	for _, it := range c.Items {
		if it.IsActive && it.ProductID == productID {
			total += it.Quantity
		}
	}
	return total
}

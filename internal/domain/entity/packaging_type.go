package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackagingType é um nó da hierarquia de embalagens de um produto
// (ex.: unidade → caixa → pallet-pack). O pai é guardado como ID opcional,
// formando uma árvore por índice em vez de ponteiros.
type PackagingType struct {
	ID               string
	ProductID        string
	Name             string
	BaseUnitQuantity decimal.Decimal // quantas unidades base esta embalagem contém
	ParentID         *string
	Level            int // profundidade na árvore (unidade base = 1)
	Barcode          *string
	IsBaseUnit       bool // exatamente uma por produto
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

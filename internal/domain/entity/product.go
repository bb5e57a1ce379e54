package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto (SKU) do armazém. Dados mestres de leitura
// para o núcleo de composição: dimensões e peso referem-se à unidade base.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	WeightKg    decimal.Decimal // peso da unidade base
	WidthCm     float64
	LengthCm    float64
	HeightCm    float64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UnitVolumeCm3 volume nominal da unidade base (cm³).
func (p *Product) UnitVolumeCm3() float64 {
	return p.WidthCm * p.LengthCm * p.HeightCm
}

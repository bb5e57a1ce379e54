package entity

import "time"

// Pallet dados mestres de capacidade de um palete (somente leitura aqui).
type Pallet struct {
	ID          string
	Code        string
	WidthCm     float64
	LengthCm    float64
	HeightCm    float64
	MaxWeightKg float64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NominalVolumeCm3 volume nominal do palete (cm³), base do cálculo de aproveitamento.
func (p *Pallet) NominalVolumeCm3() float64 {
	return p.WidthCm * p.LengthCm * p.HeightCm
}

// Package packing contém o núcleo puro de cálculo de composições: dado um
// conjunto de itens já resolvidos (produto + embalagem + dimensões nominais)
// e a capacidade de um palete, produz um layout determinístico por camadas e
// os agregados de peso, volume e altura, validados contra os tetos de segurança.
//
// Calculate e Validate são funções puras: sem estado compartilhado, seguras
// para execução paralela e idempotentes para a mesma entrada.
package packing

// Item é uma linha da requisição já resolvida pelo resolver de embalagens.
// As dimensões e o peso referem-se a UMA unidade da embalagem escolhida.
type Item struct {
	ProductID       string  `json:"productId"`
	PackagingTypeID string  `json:"packagingTypeId"`
	Quantity        int64   `json:"quantity"`
	UnitWeightKg    float64 `json:"unitWeightKg"`
	UnitWidthCm     float64 `json:"unitWidthCm"`
	UnitLengthCm    float64 `json:"unitLengthCm"`
	UnitHeightCm    float64 `json:"unitHeightCm"`
}

// FootprintCm2 área plana ocupada por uma unidade.
func (i Item) FootprintCm2() float64 {
	return i.UnitWidthCm * i.UnitLengthCm
}

// UnitVolumeCm3 volume de uma unidade.
func (i Item) UnitVolumeCm3() float64 {
	return i.UnitWidthCm * i.UnitLengthCm * i.UnitHeightCm
}

// Pallet capacidade do palete alvo.
type Pallet struct {
	WidthCm     float64 `json:"widthCm"`
	LengthCm    float64 `json:"lengthCm"`
	HeightCm    float64 `json:"heightCm"`
	MaxWeightKg float64 `json:"maxWeightKg"`
}

// NominalVolumeCm3 volume nominal do palete, base do índice de aproveitamento.
func (p Pallet) NominalVolumeCm3() float64 {
	return p.WidthCm * p.LengthCm * p.HeightCm
}

// Constraints restrições opcionais informadas pelo chamador.
// Nunca podem exceder os tetos absolutos de segurança.
type Constraints struct {
	MaxWeightKg  *float64 `json:"maxWeightKg,omitempty"`
	MaxHeightCm  *float64 `json:"maxHeightCm,omitempty"`
	MaxVolumeCm3 *float64 `json:"maxVolumeCm3,omitempty"`
}

// LayoutEntry posição de uma unidade no palete. Layer começa em 1; X cresce na
// largura, Y no comprimento e Z é a base acumulada das camadas anteriores.
type LayoutEntry struct {
	ProductID       string  `json:"productId"`
	PackagingTypeID string  `json:"packagingTypeId"`
	Layer           int     `json:"layer"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Z               float64 `json:"z"`
	WidthCm         float64 `json:"widthCm"`
	LengthCm        float64 `json:"lengthCm"`
	HeightCm        float64 `json:"heightCm"`
}

// Result resultado completo do cálculo. Sempre retornado, mesmo inválido:
// a validade e os motivos são preenchidos pelo Validate, exceto impossibilidade
// geométrica, reportada pelo próprio Calculate.
type Result struct {
	IsValid    bool    `json:"isValid"`
	Efficiency float64 `json:"efficiency"` // 0-100
	Layers     int     `json:"layers"`

	Layout []LayoutEntry `json:"layout"`

	TotalWeightKg  float64 `json:"totalWeightKg"`
	TotalVolumeCm3 float64 `json:"totalVolumeCm3"`
	TotalHeightCm  float64 `json:"totalHeightCm"`

	// Limites efetivamente aplicados (teto absoluto, capacidade do palete ou
	// restrição do chamador, o que for mais apertado).
	WeightLimitKg  float64 `json:"weightLimitKg"`
	HeightLimitCm  float64 `json:"heightLimitCm"`
	VolumeLimitCm3 float64 `json:"volumeLimitCm3"`

	Violations []string `json:"violations"`
	Warnings   []string `json:"warnings"`
}

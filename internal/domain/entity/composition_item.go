package entity

// CompositionItem é uma linha da composição: um produto em uma embalagem,
// com a posição agregada atribuída pelo cálculo (camada e coordenadas da
// primeira unidade posicionada).
type CompositionItem struct {
	ID              string
	CompositionID   string
	ProductID       string
	PackagingTypeID string
	Quantity        int64 // unidades da embalagem escolhida
	Layer           int
	SortOrder       int
	PositionX       float64
	PositionY       float64
	PositionZ       float64
	Weight          float64 // kg, total da linha
	Volume          float64 // cm³, total da linha
	IsActive        bool
}

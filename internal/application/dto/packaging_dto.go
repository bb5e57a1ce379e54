package dto

// ConvertRequest conversão de quantidade entre dois níveis de embalagem
// do mesmo produto. IDs vazios resolvem para a unidade base.
type ConvertRequest struct {
	Quantity string `json:"quantity" validate:"required"`
	FromID   string `json:"fromPackagingTypeId"`
	ToID     string `json:"toPackagingTypeId"`
}

// ConvertResponse resultado da conversão.
type ConvertResponse struct {
	ProductID string `json:"productId"`
	FromID    string `json:"fromPackagingTypeId"`
	ToID      string `json:"toPackagingTypeId"`
	Quantity  string `json:"quantity"`
	Converted string `json:"converted"`
}

// PackagingTypeDTO nó da hierarquia devolvido ao chamador.
type PackagingTypeDTO struct {
	ID               string  `json:"id"`
	ProductID        string  `json:"productId"`
	Name             string  `json:"name"`
	BaseUnitQuantity string  `json:"baseUnitQuantity"`
	ParentID         *string `json:"parentId,omitempty"`
	Level            int     `json:"level"`
	Barcode          *string `json:"barcode,omitempty"`
	IsBaseUnit       bool    `json:"isBaseUnit"`
	IsActive         bool    `json:"isActive"`
}

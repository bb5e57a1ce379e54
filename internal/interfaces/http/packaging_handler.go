package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/application/packaging"
)

// PackagingHandler hierarquia de embalagens e conversão de quantidades.
type PackagingHandler struct {
	resolver *packaging.Resolver
}

// NewPackagingHandler constrói o handler.
func NewPackagingHandler(resolver *packaging.Resolver) *PackagingHandler {
	return &PackagingHandler{resolver: resolver}
}

// Hierarchy godoc
// @Summary      Hierarquia de embalagens de um produto
// @Tags         packaging
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Produto"
// @Success      200  {array}   dto.PackagingTypeDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/packaging [get]
func (h *PackagingHandler) Hierarchy(c *fiber.Ctx) error {
	types, err := h.resolver.Hierarchy(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.PackagingTypeDTO, 0, len(types))
	for _, pt := range types {
		out = append(out, dto.PackagingTypeDTO{
			ID:               pt.ID,
			ProductID:        pt.ProductID,
			Name:             pt.Name,
			BaseUnitQuantity: pt.BaseUnitQuantity.String(),
			ParentID:         pt.ParentID,
			Level:            pt.Level,
			Barcode:          pt.Barcode,
			IsBaseUnit:       pt.IsBaseUnit,
			IsActive:         pt.IsActive,
		})
	}
	return c.JSON(out)
}

// Convert godoc
// @Summary      Converter quantidade entre níveis de embalagem
// @Tags         packaging
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Produto"
// @Param        body  body  dto.ConvertRequest  true  "quantity, fromPackagingTypeId, toPackagingTypeId"
// @Success      200   {object}  dto.ConvertResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/packaging/convert [post]
func (h *PackagingHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConvertRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	qty, err := decimal.NewFromString(in.Quantity)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity deve ser numérico"})
	}
	productID := c.Params("id")
	converted, err := h.resolver.Convert(c.Context(), productID, qty, in.FromID, in.ToID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ConvertResponse{
		ProductID: productID,
		FromID:    in.FromID,
		ToID:      in.ToID,
		Quantity:  qty.String(),
		Converted: converted.String(),
	})
}

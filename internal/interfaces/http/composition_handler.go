package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wmslabs/composicao-api/internal/application/composition"
	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/domain"
)

// CompositionHandler expõe o núcleo de composição: cálculo, validação,
// persistência, ciclo de vida, montagem/desmontagem e relatório.
type CompositionHandler struct {
	uc *composition.UseCase
}

// NewCompositionHandler constrói o handler.
func NewCompositionHandler(uc *composition.UseCase) *CompositionHandler {
	return &CompositionHandler{uc: uc}
}

// mapDomainError traduz os erros sentinela para códigos HTTP.
// ErrInsufficientStock especializa ErrBusinessRule, então é checado antes.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "VERSION_CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrBusinessRule):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "BUSINESS_RULE", Message: err.Error()})
	case errors.Is(err, domain.ErrInactive):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INACTIVE", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Calculate godoc
// @Summary      Calcular composição (efêmero)
// @Tags         compositions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompositionRequest  true  "products, palletId, constraints (opcional)"
// @Success      200   {object}  packing.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/compositions/calculate [post]
func (h *CompositionHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CompositionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	result, err := h.uc.Calculate(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// Validate godoc
// @Summary      Validar composição contra os limites (efêmero)
// @Tags         compositions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompositionRequest  true  "products, palletId, constraints (opcional)"
// @Success      200   {object}  dto.ValidationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/compositions/validate [post]
func (h *CompositionHandler) Validate(c *fiber.Ctx) error {
	var in dto.CompositionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	result, err := h.uc.Validate(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// Save godoc
// @Summary      Salvar composição em draft
// @Tags         compositions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveCompositionRequest  true  "name, products, palletId"
// @Success      201   {object}  entity.Composition
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/compositions [post]
func (h *CompositionHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveCompositionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name é obrigatório"})
	}
	comp, err := h.uc.Save(c.Context(), GetUserID(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comp)
}

// List godoc
// @Summary      Listar composições
// @Tags         compositions
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "Filtrar por status"
// @Param        palletId  query  string  false  "Filtrar por palete"
// @Param        search    query  string  false  "Busca por nome (sem acentos)"
// @Param        limit     query  int     false  "Tamanho da página (padrão 20)"
// @Param        offset    query  int     false  "Deslocamento"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/compositions [get]
func (h *CompositionHandler) List(c *fiber.Ctx) error {
	var filter dto.CompositionListFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	filter.DefaultPage()
	items, total, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": items,
		"page":  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	})
}

// GetByID godoc
// @Summary      Buscar composição por id
// @Tags         compositions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Composição"
// @Success      200  {object}  entity.Composition
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compositions/{id} [get]
func (h *CompositionHandler) GetByID(c *fiber.Ctx) error {
	comp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(comp)
}

// UpdateStatus godoc
// @Summary      Transicionar status da composição
// @Description  Transições diretas do ciclo de vida (draft→validated→approved,
//               arquivamento, cancelamento). Montagem e desmontagem têm rotas próprias.
// @Tags         compositions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Composição"
// @Param        body  body  dto.UpdateStatusRequest  true  "status, version"
// @Success      200   {object}  entity.Composition
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/compositions/{id}/status [patch]
func (h *CompositionHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	comp, err := h.uc.UpdateStatus(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(comp)
}

// Assemble godoc
// @Summary      Montar composição (consome estoque)
// @Tags         compositions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Composição"
// @Param        body  body  dto.AssembleRequest  true  "targetUcpId"
// @Success      200   {object}  dto.AssemblyOutcome
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/compositions/{id}/assemble [post]
func (h *CompositionHandler) Assemble(c *fiber.Ctx) error {
	var in dto.AssembleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	outcome, err := h.uc.Assemble(c.Context(), GetUserID(c), c.Params("id"), in.TargetUcpID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(outcome)
}

// Disassemble godoc
// @Summary      Desmontar composição (devolve estoque)
// @Tags         compositions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Composição"
// @Param        body  body  dto.DisassembleRequest  true  "targets"
// @Success      200   {object}  dto.DisassemblyOutcome
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/compositions/{id}/disassemble [post]
func (h *CompositionHandler) Disassemble(c *fiber.Ctx) error {
	var in dto.DisassembleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	outcome, err := h.uc.Disassemble(c.Context(), GetUserID(c), c.Params("id"), in.Targets)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(outcome)
}

// Report godoc
// @Summary      Gerar relatório da composição
// @Description  Disponível para composições executadas ou posteriores. O formato
//               pdf/xml devolve o documento bruto; json devolve o relatório estruturado.
// @Tags         compositions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path   string  true   "Composição"
// @Param        format  query  string  false  "json (padrão) | pdf | xml"
// @Param        body    body   dto.ReportOptions  false  "includeCosts, includeRecommendations"
// @Success      200  {object}  dto.CompositionReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/compositions/{id}/report [post]
func (h *CompositionHandler) Report(c *fiber.Ctx) error {
	var opts dto.ReportOptions
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&opts); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
		}
	}
	if format := c.Query("format"); format != "" {
		opts.Format = format
	}
	report, err := h.uc.Report(c.Context(), GetUserID(c), c.Params("id"), opts)
	if err != nil {
		return mapDomainError(c, err)
	}
	switch opts.Format {
	case "pdf":
		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.Send(report.Document)
	case "xml":
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
		return c.Send(report.Document)
	default:
		return c.JSON(report)
	}
}

// SoftDelete godoc
// @Summary      Excluir composição (soft delete)
// @Tags         compositions
// @Security     Bearer
// @Param        id  path  string  true  "Composição"
// @Success      204  "sem conteúdo"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/compositions/{id} [delete]
func (h *CompositionHandler) SoftDelete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

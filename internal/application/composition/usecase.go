package composition

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/application/packaging"
	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/packing"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
	"github.com/wmslabs/composicao-api/pkg/textnorm"
)

// UseCase orquestra o ciclo de vida das composições: cálculo puro, validação,
// persistência do draft, transições de status com versão otimista e, via
// assembly.go, as operações transacionais do Stock Ledger.
type UseCase struct {
	txRunner   TxRunner
	compRepo   repository.CompositionRepository
	palletRepo repository.PalletRepository
	reportRepo repository.ReportRepository
	resolver   *packaging.Resolver

	pdfRenderer ReportPDFRenderer
	xmlBuilder  ReportXMLBuilder
}

// NewUseCase constrói o caso de uso de composições.
func NewUseCase(
	txRunner TxRunner,
	compRepo repository.CompositionRepository,
	palletRepo repository.PalletRepository,
	reportRepo repository.ReportRepository,
	resolver *packaging.Resolver,
	pdfRenderer ReportPDFRenderer,
	xmlBuilder ReportXMLBuilder,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		compRepo:    compRepo,
		palletRepo:  palletRepo,
		reportRepo:  reportRepo,
		resolver:    resolver,
		pdfRenderer: pdfRenderer,
		xmlBuilder:  xmlBuilder,
	}
}

// resolvedLine linha da requisição com a embalagem já resolvida.
type resolvedLine struct {
	line     dto.CompositionLine
	resolved *packaging.ResolvedPackaging
}

// resolveRequest valida a requisição, resolve cada linha e carrega o palete.
// A trava de 50 linhas é aplicada ANTES de qualquer cálculo.
func (uc *UseCase) resolveRequest(ctx context.Context, req dto.CompositionRequest) (*entity.Pallet, []resolvedLine, error) {
	if len(req.Lines) == 0 {
		return nil, nil, fmt.Errorf("%w: a composição precisa de ao menos um produto", domain.ErrInvalidInput)
	}
	if len(req.Lines) > packing.MaxProductLines {
		return nil, nil, fmt.Errorf("%w: a composição possui %d linhas de produto e excede o limite máximo de %d",
			domain.ErrBusinessRule, len(req.Lines), packing.MaxProductLines)
	}
	if req.PalletID == "" {
		return nil, nil, fmt.Errorf("%w: palletId obrigatório", domain.ErrInvalidInput)
	}

	pallet, err := uc.palletRepo.GetByID(req.PalletID)
	if err != nil {
		return nil, nil, err
	}
	if pallet == nil {
		return nil, nil, fmt.Errorf("%w: palete %s", domain.ErrNotFound, req.PalletID)
	}
	if !pallet.IsActive {
		return nil, nil, fmt.Errorf("%w: palete %s", domain.ErrInactive, req.PalletID)
	}

	lines := make([]resolvedLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: quantidade do produto %s deve ser positiva", domain.ErrInvalidInput, line.ProductID)
		}
		resolved, err := uc.resolver.Resolve(ctx, line.ProductID, line.PackagingTypeID)
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines, resolvedLine{line: line, resolved: resolved})
	}
	return pallet, lines, nil
}

// Calculate resolve a requisição e devolve o resultado completo do cálculo,
// já validado contra tetos e restrições. Função sem efeitos colaterais:
// entradas idênticas produzem resultados idênticos.
func (uc *UseCase) Calculate(ctx context.Context, req dto.CompositionRequest) (*packing.Result, error) {
	pallet, lines, err := uc.resolveRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	items := make([]packing.Item, 0, len(lines))
	for _, rl := range lines {
		items = append(items, rl.resolved.PackingItem(rl.line.Quantity))
	}

	capacity := packing.Pallet{
		WidthCm:     pallet.WidthCm,
		LengthCm:    pallet.LengthCm,
		HeightCm:    pallet.HeightCm,
		MaxWeightKg: pallet.MaxWeightKg,
	}
	result := packing.Calculate(items, capacity)
	packing.Validate(result, capacity, req.Constraints, len(req.Lines))
	return result, nil
}

// Validate devolve apenas o veredito da validação com métricas agregadas.
func (uc *UseCase) Validate(ctx context.Context, req dto.CompositionRequest) (*dto.ValidationResult, error) {
	result, err := uc.Calculate(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.ValidationResult{
		IsValid:    result.IsValid,
		Violations: result.Violations,
		Warnings:   result.Warnings,
		Metrics: dto.ValidationMetrics{
			TotalWeightKg:  result.TotalWeightKg,
			TotalVolumeCm3: result.TotalVolumeCm3,
			TotalHeightCm:  result.TotalHeightCm,
			Efficiency:     result.Efficiency,
		},
	}, nil
}

// Save calcula e persiste a composição em draft, com snapshot das restrições e
// do resultado. Drafts com violações podem ser salvos; a transição para
// validated é que exige resultado válido.
func (uc *UseCase) Save(ctx context.Context, userID string, req dto.SaveCompositionRequest) (*entity.Composition, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: nome obrigatório", domain.ErrInvalidInput)
	}
	pallet, lines, err := uc.resolveRequest(ctx, req.CompositionRequest)
	if err != nil {
		return nil, err
	}

	items := make([]packing.Item, 0, len(lines))
	for _, rl := range lines {
		items = append(items, rl.resolved.PackingItem(rl.line.Quantity))
	}
	capacity := packing.Pallet{
		WidthCm:     pallet.WidthCm,
		LengthCm:    pallet.LengthCm,
		HeightCm:    pallet.HeightCm,
		MaxWeightKg: pallet.MaxWeightKg,
	}
	result := packing.Calculate(items, capacity)
	packing.Validate(result, capacity, req.Constraints, len(req.Lines))

	now := time.Now()
	comp := &entity.Composition{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		PalletID:    req.PalletID,
		Status:      entity.CompositionDraft,
		Constraints: req.Constraints,
		Result:      result,
		TotalWeight: result.TotalWeightKg,
		TotalVolume: result.TotalVolumeCm3,
		TotalHeight: result.TotalHeightCm,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
		IsActive:    true,
	}

	// Posição agregada por linha: camada e coordenadas da primeira unidade
	// posicionada daquele produto/embalagem.
	firstEntry := make(map[string]*packing.LayoutEntry)
	for i := range result.Layout {
		e := &result.Layout[i]
		key := e.ProductID + "|" + e.PackagingTypeID
		if _, ok := firstEntry[key]; !ok {
			firstEntry[key] = e
		}
	}

	for i, rl := range lines {
		item := entity.CompositionItem{
			ID:              uuid.New().String(),
			CompositionID:   comp.ID,
			ProductID:       rl.line.ProductID,
			PackagingTypeID: rl.resolved.Packaging.ID,
			Quantity:        rl.line.Quantity,
			SortOrder:       i,
			Weight:          rl.resolved.UnitWeightKg * float64(rl.line.Quantity),
			Volume:          rl.resolved.UnitWidthCm * rl.resolved.UnitLengthCm * rl.resolved.UnitHeightCm * float64(rl.line.Quantity),
			IsActive:        true,
		}
		if e, ok := firstEntry[rl.line.ProductID+"|"+rl.resolved.Packaging.ID]; ok {
			item.Layer = e.Layer
			item.PositionX = e.X
			item.PositionY = e.Y
			item.PositionZ = e.Z
		}
		comp.Items = append(comp.Items, item)
	}

	if err := uc.compRepo.Create(comp); err != nil {
		return nil, err
	}
	return comp, nil
}

// GetByID devolve a composição ativa com itens.
func (uc *UseCase) GetByID(_ context.Context, id string) (*entity.Composition, error) {
	comp, err := uc.compRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comp == nil {
		return nil, fmt.Errorf("%w: composição %s", domain.ErrNotFound, id)
	}
	return comp, nil
}

// List devolve a página filtrada. O termo de busca é normalizado (sem acentos,
// minúsculas) antes de casar contra o nome.
func (uc *UseCase) List(_ context.Context, filter dto.CompositionListFilter) ([]entity.Composition, int, error) {
	filter.DefaultPage()
	if filter.Status != "" && !entity.ValidStatus(filter.Status) {
		return nil, 0, fmt.Errorf("%w: status desconhecido %q", domain.ErrInvalidInput, filter.Status)
	}
	return uc.compRepo.List(repository.CompositionFilter{
		Status:   filter.Status,
		PalletID: filter.PalletID,
		Search:   textnorm.Fold(filter.Search),
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	})
}

// UpdateStatus aplica uma transição direta de status com versão otimista.
// Transições que movimentam estoque (approved→executed, executed→disassembled)
// são recusadas aqui: acontecem apenas via montagem/desmontagem.
func (uc *UseCase) UpdateStatus(_ context.Context, userID, id string, req dto.UpdateStatusRequest) (*entity.Composition, error) {
	if !entity.ValidStatus(req.Status) {
		return nil, fmt.Errorf("%w: status desconhecido %q", domain.ErrInvalidInput, req.Status)
	}
	comp, err := uc.compRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comp == nil {
		return nil, fmt.Errorf("%w: composição %s", domain.ErrNotFound, id)
	}

	// Escritor que repete uma transição já aplicada recebe no-op de sucesso.
	if comp.Status == req.Status {
		return comp, nil
	}

	switch {
	case req.Status == entity.CompositionExecuted:
		return nil, fmt.Errorf("%w: a transição para executed ocorre apenas pela montagem da composição",
			domain.ErrBusinessRule)
	case req.Status == entity.CompositionDisassembled:
		return nil, fmt.Errorf("%w: a transição para disassembled ocorre apenas pela desmontagem da composição",
			domain.ErrBusinessRule)
	case !entity.CanTransition(comp.Status, req.Status):
		return nil, fmt.Errorf("%w: transição de status inválida: %s → %s",
			domain.ErrBusinessRule, comp.Status, req.Status)
	}

	if comp.Status == entity.CompositionDraft && req.Status == entity.CompositionValidated {
		if comp.Result == nil || !comp.Result.IsValid {
			return nil, fmt.Errorf("%w: a composição possui violações e não pode ser validada", domain.ErrBusinessRule)
		}
	}

	expectedVersion := comp.Version
	if req.Version > 0 {
		if req.Version != comp.Version {
			return nil, fmt.Errorf("%w: versão %d desatualizada (atual %d)", domain.ErrConflict, req.Version, comp.Version)
		}
		expectedVersion = req.Version
	}

	now := time.Now()
	comp.Status = req.Status
	comp.UpdatedAt = now
	if req.Status == entity.CompositionApproved {
		comp.ApprovedBy = &userID
		comp.ApprovedAt = &now
	}

	if err := uc.compRepo.UpdateStatus(comp, expectedVersion); err != nil {
		return nil, err
	}
	comp.Version = expectedVersion + 1
	return comp, nil
}

// SoftDelete desativa a composição e seus itens. Composições executadas devem
// ser desmontadas antes, senão o estoque consumido ficaria órfão.
func (uc *UseCase) SoftDelete(_ context.Context, id string) error {
	comp, err := uc.compRepo.GetByID(id)
	if err != nil {
		return err
	}
	if comp == nil {
		return fmt.Errorf("%w: composição %s", domain.ErrNotFound, id)
	}
	if comp.Status == entity.CompositionExecuted {
		return fmt.Errorf("%w: composições executadas não podem ser excluídas; desmonte antes", domain.ErrBusinessRule)
	}
	return uc.compRepo.SoftDelete(id)
}

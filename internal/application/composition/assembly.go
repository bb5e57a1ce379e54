package composition

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

// Assemble monta fisicamente a composição: dentro de uma única transação,
// bloqueia a fila da composição, exige status approved, bloqueia os registros
// de estoque de cada item em ordem determinística e deduz as quantidades em
// FIFO (com divisão entre UCPs). Tudo ou nada: qualquer falha desfaz todas as
// deduções. Sob concorrência, cada unidade de estoque disputada é concedida a
// exatamente um chamador; os demais recebem ErrInsufficientStock.
func (uc *UseCase) Assemble(ctx context.Context, userID, compositionID, targetUcpID string) (*dto.AssemblyOutcome, error) {
	if targetUcpID == "" {
		return nil, fmt.Errorf("%w: targetUcpId obrigatório", domain.ErrInvalidInput)
	}

	outcome := &dto.AssemblyOutcome{
		CompositionID: compositionID,
		TargetUcpID:   targetUcpID,
		Movements:     []dto.MovementSummary{},
	}

	err := uc.txRunner.Run(ctx, func(
		compRepo repository.CompositionRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error {
		comp, err := compRepo.GetForUpdate(compositionID)
		if err != nil {
			return err
		}
		if comp == nil {
			return fmt.Errorf("%w: composição %s", domain.ErrNotFound, compositionID)
		}
		if comp.Status != entity.CompositionApproved {
			return fmt.Errorf("%w: apenas composições aprovadas podem ser montadas (status atual: %s)",
				domain.ErrBusinessRule, comp.Status)
		}

		// Ordem determinística de aquisição de bloqueios entre montagens
		// concorrentes: por produto e embalagem.
		items := activeItems(comp)
		sort.SliceStable(items, func(a, b int) bool {
			if items[a].ProductID != items[b].ProductID {
				return items[a].ProductID < items[b].ProductID
			}
			return items[a].PackagingTypeID < items[b].PackagingTypeID
		})

		now := time.Now()
		for _, item := range items {
			required := decimal.NewFromInt(item.Quantity)

			records, err := invRepo.ListAvailableForUpdate(item.ProductID, item.PackagingTypeID)
			if err != nil {
				return err
			}

			available := decimal.Zero
			for _, rec := range records {
				available = available.Add(rec.Quantity)
			}
			if available.LessThan(required) {
				return fmt.Errorf("%w: estoque insuficiente para o produto %s (necessário %s, disponível %s)",
					domain.ErrInsufficientStock, item.ProductID, required, available)
			}

			// Dedução FIFO, dividindo entre registros quando necessário.
			remaining := required
			for _, rec := range records {
				if remaining.IsZero() {
					break
				}
				take := rec.Quantity
				if take.GreaterThan(remaining) {
					take = remaining
				}
				if take.IsZero() {
					continue
				}
				if err := invRepo.UpdateQuantity(rec.ID, rec.Quantity.Sub(take)); err != nil {
					return err
				}
				mov := &entity.StockMovement{
					ID:              uuid.New().String(),
					CompositionID:   comp.ID,
					ProductID:       item.ProductID,
					PackagingTypeID: item.PackagingTypeID,
					Type:            entity.MovementAssembly,
					SourceUcpID:     rec.UcpID,
					TargetUcpID:     targetUcpID,
					Quantity:        take,
					PerformedBy:     userID,
					CreatedAt:       now,
				}
				if err := movRepo.Create(mov); err != nil {
					return err
				}
				outcome.Movements = append(outcome.Movements, dto.MovementSummary{
					ProductID:       item.ProductID,
					PackagingTypeID: item.PackagingTypeID,
					SourceUcpID:     rec.UcpID,
					TargetUcpID:     targetUcpID,
					Quantity:        take.String(),
				})
				remaining = remaining.Sub(take)
			}
		}

		comp.Status = entity.CompositionExecuted
		comp.UpdatedAt = now
		comp.ExecutedAt = &now
		if err := compRepo.UpdateStatus(comp, comp.Version); err != nil {
			return err
		}
		comp.Version++
		outcome.Status = comp.Status
		return nil
	})
	if err != nil {
		// Movimentos acumulados antes da falha foram desfeitos pelo rollback.
		return nil, err
	}
	return outcome, nil
}

// Disassemble desfaz uma composição executada, devolvendo as quantidades aos
// registros de estoque das UCPs de destino indicadas. A soma solicitada por
// produto não pode exceder a quantidade contida na composição. Transacional:
// ou todos os créditos acontecem e o status vira disassembled, ou nada muda.
func (uc *UseCase) Disassemble(ctx context.Context, userID, compositionID string, targets []dto.DisassemblyTarget) (*dto.DisassemblyOutcome, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: informe ao menos um destino de desmontagem", domain.ErrInvalidInput)
	}

	outcome := &dto.DisassemblyOutcome{
		CompositionID: compositionID,
		Movements:     []dto.MovementSummary{},
	}

	err := uc.txRunner.Run(ctx, func(
		compRepo repository.CompositionRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error {
		comp, err := compRepo.GetForUpdate(compositionID)
		if err != nil {
			return err
		}
		if comp == nil {
			return fmt.Errorf("%w: composição %s", domain.ErrNotFound, compositionID)
		}
		if comp.Status != entity.CompositionExecuted {
			return fmt.Errorf("%w: apenas composições executadas podem ser desmontadas (status atual: %s)",
				domain.ErrBusinessRule, comp.Status)
		}

		// Embalagem de cada produto: a composição mantém o estoque na
		// embalagem com que foi montada.
		packagingOf := make(map[string]string)
		for _, item := range activeItems(comp) {
			packagingOf[item.ProductID] = item.PackagingTypeID
		}

		// A soma solicitada por produto não pode exceder o contido.
		requested := make(map[string]int64)
		for _, t := range targets {
			if t.Quantity <= 0 {
				return fmt.Errorf("%w: quantidade do produto %s deve ser positiva", domain.ErrInvalidInput, t.ProductID)
			}
			if t.TargetUcpID == "" {
				return fmt.Errorf("%w: targetUcpId obrigatório", domain.ErrInvalidInput)
			}
			if _, ok := packagingOf[t.ProductID]; !ok {
				return fmt.Errorf("%w: produto %s não faz parte da composição", domain.ErrNotFound, t.ProductID)
			}
			requested[t.ProductID] += t.Quantity
		}
		for productID, qty := range requested {
			held := comp.QuantityOfProduct(productID)
			if qty > held {
				return fmt.Errorf("%w: quantidade solicitada para o produto %s (%d) é maior que a disponível na composição (%d)",
					domain.ErrBusinessRule, productID, qty, held)
			}
		}

		now := time.Now()
		for _, t := range targets {
			packagingTypeID := packagingOf[t.ProductID]
			qty := decimal.NewFromInt(t.Quantity)

			rec, err := invRepo.GetForUpdate(t.TargetUcpID, t.ProductID, packagingTypeID)
			if err != nil {
				return err
			}
			if rec == nil {
				rec = &entity.InventoryRecord{
					ID:              uuid.New().String(),
					UcpID:           t.TargetUcpID,
					ProductID:       t.ProductID,
					PackagingTypeID: packagingTypeID,
					Quantity:        qty,
					CreatedAt:       now,
					UpdatedAt:       now,
				}
				if err := invRepo.Create(rec); err != nil {
					return err
				}
			} else {
				if err := invRepo.UpdateQuantity(rec.ID, rec.Quantity.Add(qty)); err != nil {
					return err
				}
			}

			mov := &entity.StockMovement{
				ID:              uuid.New().String(),
				CompositionID:   comp.ID,
				ProductID:       t.ProductID,
				PackagingTypeID: packagingTypeID,
				Type:            entity.MovementDisassembly,
				SourceUcpID:     comp.PalletID,
				TargetUcpID:     t.TargetUcpID,
				Quantity:        qty,
				PerformedBy:     userID,
				CreatedAt:       now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			outcome.Movements = append(outcome.Movements, dto.MovementSummary{
				ProductID:       t.ProductID,
				PackagingTypeID: packagingTypeID,
				SourceUcpID:     comp.PalletID,
				TargetUcpID:     t.TargetUcpID,
				Quantity:        qty.String(),
			})
		}

		comp.Status = entity.CompositionDisassembled
		comp.UpdatedAt = now
		if err := compRepo.UpdateStatus(comp, comp.Version); err != nil {
			return err
		}
		comp.Version++
		outcome.Status = comp.Status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// activeItems devolve apenas os itens ativos da composição.
func activeItems(comp *entity.Composition) []entity.CompositionItem {
	items := make([]entity.CompositionItem, 0, len(comp.Items))
	for _, it := range comp.Items {
		if it.IsActive {
			items = append(items, it)
		}
	}
	return items
}

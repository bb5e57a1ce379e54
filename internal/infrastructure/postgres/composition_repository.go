package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/packing"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
	"github.com/wmslabs/composicao-api/pkg/textnorm"
)

var _ repository.CompositionRepository = (*CompositionRepo)(nil)

// CompositionRepo persistência de composições sobre PostgreSQL (pool ou tx).
// Os snapshots de restrições e resultado do cálculo vão em colunas JSONB;
// o nome normalizado (search_name) alimenta a busca sem acentos.
type CompositionRepo struct {
	q Querier
}

// NewCompositionRepository constrói o adaptador de composições. Passar pool ou tx (Querier).
func NewCompositionRepository(q Querier) *CompositionRepo {
	return &CompositionRepo{q: q}
}

const compositionColumns = `
	id, name, description, pallet_id, status, constraints, result,
	total_weight_kg, total_volume_cm3, total_height_cm,
	created_by, approved_by, created_at, updated_at, approved_at, executed_at,
	version, is_active`

// Create persiste a composição em draft junto com seus itens.
func (r *CompositionRepo) Create(comp *entity.Composition) error {
	ctx := context.Background()

	constraintsJSON, resultJSON, err := marshalSnapshots(comp)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO compositions (` + compositionColumns + `, search_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err = r.q.Exec(ctx, query,
		comp.ID, comp.Name, comp.Description, comp.PalletID, comp.Status, constraintsJSON, resultJSON,
		comp.TotalWeight, comp.TotalVolume, comp.TotalHeight,
		comp.CreatedBy, comp.ApprovedBy, comp.CreatedAt, comp.UpdatedAt, comp.ApprovedAt, comp.ExecutedAt,
		comp.Version, comp.IsActive, textnorm.Fold(comp.Name),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: composição %s", domain.ErrDuplicate, comp.ID)
		}
		return fmt.Errorf("insert composition: %w", err)
	}

	itemQuery := `
		INSERT INTO composition_items (
			id, composition_id, product_id, packaging_type_id, quantity,
			layer, sort_order, position_x, position_y, position_z,
			weight_kg, volume_cm3, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for _, it := range comp.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, comp.ID, it.ProductID, it.PackagingTypeID, it.Quantity,
			it.Layer, it.SortOrder, it.PositionX, it.PositionY, it.PositionZ,
			it.Weight, it.Volume, it.IsActive,
		)
		if err != nil {
			return fmt.Errorf("insert composition item: %w", err)
		}
	}
	return nil
}

// GetByID devolve a composição ativa com itens, ou nil se ausente/inativa.
func (r *CompositionRepo) GetByID(id string) (*entity.Composition, error) {
	return r.get(id, false)
}

// GetForUpdate é GetByID com SELECT FOR UPDATE da fila da composição.
// Só tem efeito dentro de transação.
func (r *CompositionRepo) GetForUpdate(id string) (*entity.Composition, error) {
	return r.get(id, true)
}

func (r *CompositionRepo) get(id string, forUpdate bool) (*entity.Composition, error) {
	ctx := context.Background()
	query := `SELECT ` + compositionColumns + ` FROM compositions
		WHERE id = $1 AND is_active = true`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	comp, err := scanComposition(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get composition: %w", err)
	}
	if err := r.loadItems(ctx, comp); err != nil {
		return nil, err
	}
	return comp, nil
}

// List devolve a página filtrada (mais recentes primeiro) e o total.
func (r *CompositionRepo) List(filter repository.CompositionFilter) ([]entity.Composition, int, error) {
	ctx := context.Background()

	where := ` WHERE is_active = true`
	args := []any{}
	n := 0
	if filter.Status != "" {
		n++
		where += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, filter.Status)
	}
	if filter.PalletID != "" {
		n++
		where += fmt.Sprintf(" AND pallet_id = $%d", n)
		args = append(args, filter.PalletID)
	}
	if filter.Search != "" {
		n++
		where += fmt.Sprintf(" AND search_name LIKE $%d", n)
		args = append(args, "%"+textnorm.Fold(filter.Search)+"%")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM compositions`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count compositions: %w", err)
	}

	query := `SELECT ` + compositionColumns + ` FROM compositions` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list compositions: %w", err)
	}
	defer rows.Close()

	var out []entity.Composition
	for rows.Next() {
		comp, err := scanComposition(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan composition: %w", err)
		}
		out = append(out, *comp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for i := range out {
		if err := r.loadItems(ctx, &out[i]); err != nil {
			return nil, 0, err
		}
	}
	return out, total, nil
}

// UpdateStatus grava status e auditoria com checagem de versão otimista:
// a cláusula WHERE version = $n garante que escritores desatualizados não
// sobrescrevem; 0 linhas afetadas vira ErrConflict (ou ErrNotFound).
func (r *CompositionRepo) UpdateStatus(comp *entity.Composition, expectedVersion int) error {
	ctx := context.Background()
	query := `
		UPDATE compositions
		SET status = $1, approved_by = $2, approved_at = $3, executed_at = $4,
		    updated_at = $5, version = version + 1
		WHERE id = $6 AND is_active = true AND version = $7`
	tag, err := r.q.Exec(ctx, query,
		comp.Status, comp.ApprovedBy, comp.ApprovedAt, comp.ExecutedAt,
		comp.UpdatedAt, comp.ID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update composition status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var current int
		err := r.q.QueryRow(ctx,
			`SELECT version FROM compositions WHERE id = $1 AND is_active = true`, comp.ID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: composição %s", domain.ErrNotFound, comp.ID)
		}
		if err != nil {
			return fmt.Errorf("check composition version: %w", err)
		}
		return fmt.Errorf("%w: versão %d desatualizada (atual %d)", domain.ErrConflict, expectedVersion, current)
	}
	return nil
}

// SoftDelete desativa a composição e seus itens.
func (r *CompositionRepo) SoftDelete(id string) error {
	ctx := context.Background()
	tag, err := r.q.Exec(ctx,
		`UPDATE compositions SET is_active = false, updated_at = now() WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		return fmt.Errorf("soft delete composition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: composição %s", domain.ErrNotFound, id)
	}
	_, err = r.q.Exec(ctx,
		`UPDATE composition_items SET is_active = false WHERE composition_id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete composition items: %w", err)
	}
	return nil
}

func (r *CompositionRepo) loadItems(ctx context.Context, comp *entity.Composition) error {
	query := `
		SELECT id, composition_id, product_id, packaging_type_id, quantity,
		       layer, sort_order, position_x, position_y, position_z,
		       weight_kg, volume_cm3, is_active
		FROM composition_items
		WHERE composition_id = $1
		ORDER BY sort_order, id`
	rows, err := r.q.Query(ctx, query, comp.ID)
	if err != nil {
		return fmt.Errorf("list composition items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.CompositionItem
		err := rows.Scan(
			&it.ID, &it.CompositionID, &it.ProductID, &it.PackagingTypeID, &it.Quantity,
			&it.Layer, &it.SortOrder, &it.PositionX, &it.PositionY, &it.PositionZ,
			&it.Weight, &it.Volume, &it.IsActive,
		)
		if err != nil {
			return fmt.Errorf("scan composition item: %w", err)
		}
		comp.Items = append(comp.Items, it)
	}
	return rows.Err()
}

func marshalSnapshots(comp *entity.Composition) ([]byte, []byte, error) {
	var constraintsJSON, resultJSON []byte
	var err error
	if comp.Constraints != nil {
		if constraintsJSON, err = json.Marshal(comp.Constraints); err != nil {
			return nil, nil, fmt.Errorf("marshal constraints: %w", err)
		}
	}
	if comp.Result != nil {
		if resultJSON, err = json.Marshal(comp.Result); err != nil {
			return nil, nil, fmt.Errorf("marshal result: %w", err)
		}
	}
	return constraintsJSON, resultJSON, nil
}

func scanComposition(row pgx.Row) (*entity.Composition, error) {
	var comp entity.Composition
	var constraintsJSON, resultJSON []byte
	err := row.Scan(
		&comp.ID, &comp.Name, &comp.Description, &comp.PalletID, &comp.Status, &constraintsJSON, &resultJSON,
		&comp.TotalWeight, &comp.TotalVolume, &comp.TotalHeight,
		&comp.CreatedBy, &comp.ApprovedBy, &comp.CreatedAt, &comp.UpdatedAt, &comp.ApprovedAt, &comp.ExecutedAt,
		&comp.Version, &comp.IsActive,
	)
	if err != nil {
		return nil, err
	}
	if len(constraintsJSON) > 0 {
		comp.Constraints = &packing.Constraints{}
		if err := json.Unmarshal(constraintsJSON, comp.Constraints); err != nil {
			return nil, fmt.Errorf("unmarshal constraints: %w", err)
		}
	}
	if len(resultJSON) > 0 {
		comp.Result = &packing.Result{}
		if err := json.Unmarshal(resultJSON, comp.Result); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
	}
	return &comp, nil
}

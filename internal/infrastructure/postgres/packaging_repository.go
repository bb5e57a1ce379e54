package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

var _ repository.PackagingRepository = (*PackagingRepo)(nil)

// PackagingRepo leitura da hierarquia de embalagens sobre PostgreSQL.
type PackagingRepo struct {
	q Querier
}

// NewPackagingRepository constrói o adaptador de embalagens. Passar pool ou tx (Querier).
func NewPackagingRepository(q Querier) *PackagingRepo {
	return &PackagingRepo{q: q}
}

const packagingColumns = `
	id, product_id, name, base_unit_quantity, parent_id, level, barcode,
	is_base_unit, is_active, created_at, updated_at`

func scanPackaging(row pgx.Row) (*entity.PackagingType, error) {
	var pt entity.PackagingType
	err := row.Scan(
		&pt.ID, &pt.ProductID, &pt.Name, &pt.BaseUnitQuantity, &pt.ParentID, &pt.Level, &pt.Barcode,
		&pt.IsBaseUnit, &pt.IsActive, &pt.CreatedAt, &pt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

// GetByID devolve a embalagem ou nil se não existir.
func (r *PackagingRepo) GetByID(id string) (*entity.PackagingType, error) {
	query := `SELECT ` + packagingColumns + ` FROM packaging_types WHERE id = $1`
	pt, err := scanPackaging(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get packaging: %w", err)
	}
	return pt, nil
}

// GetBaseUnit devolve a embalagem unidade-base do produto, ou nil.
func (r *PackagingRepo) GetBaseUnit(productID string) (*entity.PackagingType, error) {
	query := `SELECT ` + packagingColumns + ` FROM packaging_types
		WHERE product_id = $1 AND is_base_unit = true`
	pt, err := scanPackaging(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get base unit: %w", err)
	}
	return pt, nil
}

// ListByProduct devolve todas as embalagens do produto, por nível e nome.
func (r *PackagingRepo) ListByProduct(productID string) ([]entity.PackagingType, error) {
	query := `SELECT ` + packagingColumns + ` FROM packaging_types
		WHERE product_id = $1
		ORDER BY level, name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list packaging: %w", err)
	}
	defer rows.Close()

	var out []entity.PackagingType
	for rows.Next() {
		pt, err := scanPackaging(rows)
		if err != nil {
			return nil, fmt.Errorf("scan packaging: %w", err)
		}
		out = append(out, *pt)
	}
	return out, rows.Err()
}

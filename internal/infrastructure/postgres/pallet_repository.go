package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

var _ repository.PalletRepository = (*PalletRepo)(nil)

// PalletRepo leitura de paletes sobre PostgreSQL.
type PalletRepo struct {
	q Querier
}

// NewPalletRepository constrói o adaptador de paletes. Passar pool ou tx (Querier).
func NewPalletRepository(q Querier) *PalletRepo {
	return &PalletRepo{q: q}
}

// GetByID devolve o palete ou nil se não existir.
func (r *PalletRepo) GetByID(id string) (*entity.Pallet, error) {
	query := `
		SELECT id, code, width_cm, length_cm, height_cm, max_weight_kg,
		       is_active, created_at, updated_at
		FROM pallets WHERE id = $1`
	var p entity.Pallet
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Code, &p.WidthCm, &p.LengthCm, &p.HeightCm, &p.MaxWeightKg,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pallet: %w", err)
	}
	return &p, nil
}

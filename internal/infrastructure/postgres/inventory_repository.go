package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/wmslabs/composicao-api/internal/domain"
	"github.com/wmslabs/composicao-api/internal/domain/entity"
	"github.com/wmslabs/composicao-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo saldos de estoque por UCP sobre PostgreSQL (pool ou tx).
// As variantes ForUpdate só cumprem sua função dentro de transação: o
// SELECT FOR UPDATE segura as filas lidas até o Commit/Rollback.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository constrói o adaptador de saldos. Passar pool ou tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `
	id, ucp_id, product_id, packaging_type_id, lot, quantity, created_at, updated_at`

func scanInventory(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(
		&rec.ID, &rec.UcpID, &rec.ProductID, &rec.PackagingTypeID, &rec.Lot,
		&rec.Quantity, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAvailableForUpdate devolve, bloqueados e em ordem FIFO, os registros
// com saldo do produto na embalagem dada.
func (r *InventoryRepo) ListAvailableForUpdate(productID, packagingTypeID string) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records
		WHERE product_id = $1 AND packaging_type_id = $2 AND quantity > 0
		ORDER BY created_at, id
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, productID, packagingTypeID)
	if err != nil {
		return nil, fmt.Errorf("list inventory for update: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetForUpdate devolve bloqueado o registro da UCP para produto/embalagem, ou nil.
func (r *InventoryRepo) GetForUpdate(ucpID, productID, packagingTypeID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records
		WHERE ucp_id = $1 AND product_id = $2 AND packaging_type_id = $3
		FOR UPDATE`
	rec, err := scanInventory(r.q.QueryRow(context.Background(), query, ucpID, productID, packagingTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return rec, nil
}

// UpdateQuantity grava o novo saldo de um registro existente.
func (r *InventoryRepo) UpdateQuantity(recordID string, quantity decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE inventory_records SET quantity = $1, updated_at = now() WHERE id = $2`,
		quantity, recordID)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: registro de estoque %s", domain.ErrNotFound, recordID)
	}
	return nil
}

// Create insere um novo registro de saldo.
func (r *InventoryRepo) Create(rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.UcpID, rec.ProductID, rec.PackagingTypeID, rec.Lot,
		rec.Quantity, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: registro de estoque %s", domain.ErrDuplicate, rec.ID)
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// ListByUcp devolve os registros de uma UCP (consulta, sem bloqueio).
func (r *InventoryRepo) ListByUcp(ucpID string) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records
		WHERE ucp_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, ucpID)
	if err != nil {
		return nil, fmt.Errorf("list inventory by ucp: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

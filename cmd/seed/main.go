// seed popula o banco com dados mestres de demonstração: um usuário admin,
// produtos com hierarquia de embalagens, um palete padrão PBR e saldos de
// estoque em duas UCPs.
//
// Uso: go run ./cmd/seed
// Idempotente: reexecutar não duplica registros.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/wmslabs/composicao-api/internal/infrastructure/postgres"
	"github.com/wmslabs/composicao-api/pkg/config"
)

// IDs fixos para que o seed seja idempotente e referenciável em demos.
const (
	adminID = "11111111-1111-1111-1111-111111111111"

	productCaixaLeiteID = "22222222-2222-2222-2222-222222222201"
	productDetergenteID = "22222222-2222-2222-2222-222222222202"

	pkgLeiteUnidadeID  = "33333333-3333-3333-3333-333333333301"
	pkgLeiteCaixaID    = "33333333-3333-3333-3333-333333333302"
	pkgLeiteFardoID    = "33333333-3333-3333-3333-333333333303"
	pkgDetergUnidadeID = "33333333-3333-3333-3333-333333333304"
	pkgDetergCaixaID   = "33333333-3333-3333-3333-333333333305"

	palletPBRID = "44444444-4444-4444-4444-444444444401"

	invLeiteUcp1ID  = "55555555-5555-5555-5555-555555555501"
	invLeiteUcp2ID  = "55555555-5555-5555-5555-555555555502"
	invDetergUcp1ID = "55555555-5555-5555-5555-555555555503"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("carregar configuração: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexão ao PostgreSQL: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("composicao123"), bcrypt.DefaultCost)
	if err != nil {
		fail("gerar hash: %v", err)
	}

	steps := []struct {
		desc string
		sql  string
		args []any
	}{
		{"usuário admin", `
			INSERT INTO users (id, name, email, password_hash, role, is_active)
			VALUES ($1, 'Administrador', 'admin@composicao.local', $2, 'admin', true)
			ON CONFLICT (email) DO NOTHING`,
			[]any{adminID, string(hash)}},

		{"produto caixa de leite", `
			INSERT INTO products (id, sku, name, description, weight_kg, width_cm, length_cm, height_cm)
			VALUES ($1, 'SKU-LEITE-1L', 'Leite UHT Integral 1L', 'Caixa longa vida 1 litro', 1.05, 7, 7, 20)
			ON CONFLICT (sku) DO NOTHING`,
			[]any{productCaixaLeiteID}},
		{"produto detergente", `
			INSERT INTO products (id, sku, name, description, weight_kg, width_cm, length_cm, height_cm)
			VALUES ($1, 'SKU-DETERG-500', 'Detergente Neutro 500ml', '', 0.55, 6, 6, 22)
			ON CONFLICT (sku) DO NOTHING`,
			[]any{productDetergenteID}},

		{"embalagens do leite", `
			INSERT INTO packaging_types (id, product_id, name, base_unit_quantity, parent_id, level, is_base_unit)
			VALUES
				($1, $4, 'Unidade', 1, NULL, 1, true),
				($2, $4, 'Caixa 12un', 12, $1, 2, false),
				($3, $4, 'Fardo 48un', 48, $2, 3, false)
			ON CONFLICT (id) DO NOTHING`,
			[]any{pkgLeiteUnidadeID, pkgLeiteCaixaID, pkgLeiteFardoID, productCaixaLeiteID}},
		{"embalagens do detergente", `
			INSERT INTO packaging_types (id, product_id, name, base_unit_quantity, parent_id, level, is_base_unit)
			VALUES
				($1, $3, 'Unidade', 1, NULL, 1, true),
				($2, $3, 'Caixa 24un', 24, $1, 2, false)
			ON CONFLICT (id) DO NOTHING`,
			[]any{pkgDetergUnidadeID, pkgDetergCaixaID, productDetergenteID}},

		{"palete PBR", `
			INSERT INTO pallets (id, code, width_cm, length_cm, height_cm, max_weight_kg)
			VALUES ($1, 'PBR-01', 100, 120, 180, 1500)
			ON CONFLICT (code) DO NOTHING`,
			[]any{palletPBRID}},

		{"estoque de leite (duas UCPs)", `
			INSERT INTO inventory_records (id, ucp_id, product_id, packaging_type_id, lot, quantity)
			VALUES
				($1, 'UCP-0001', $3, $4, 'L2026-08A', 60),
				($2, 'UCP-0002', $3, $4, 'L2026-08B', 40)
			ON CONFLICT (ucp_id, product_id, packaging_type_id) DO NOTHING`,
			[]any{invLeiteUcp1ID, invLeiteUcp2ID, productCaixaLeiteID, pkgLeiteCaixaID}},
		{"estoque de detergente", `
			INSERT INTO inventory_records (id, ucp_id, product_id, packaging_type_id, quantity)
			VALUES ($1, 'UCP-0001', $2, $3, 80)
			ON CONFLICT (ucp_id, product_id, packaging_type_id) DO NOTHING`,
			[]any{invDetergUcp1ID, productDetergenteID, pkgDetergCaixaID}},
	}

	for _, step := range steps {
		if _, err := pool.Exec(ctx, step.sql, step.args...); err != nil {
			fail("seed %s: %v", step.desc, err)
		}
		fmt.Printf("ok: %s\n", step.desc)
	}
	fmt.Println("seed concluído")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

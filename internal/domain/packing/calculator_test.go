package packing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmslabs/composicao-api/internal/domain/packing"
)

var palletPBR = packing.Pallet{WidthCm: 100, LengthCm: 120, HeightCm: 180, MaxWeightKg: 1500}

func caixa(productID string, qty int64) packing.Item {
	return packing.Item{
		ProductID:       productID,
		PackagingTypeID: "pkg-" + productID,
		Quantity:        qty,
		UnitWeightKg:    5,
		UnitWidthCm:     20,
		UnitLengthCm:    20,
		UnitHeightCm:    20,
	}
}

func TestCalculate_UmaCamadaCompleta(t *testing.T) {
	// 5 por fileira x 6 fileiras = 30 unidades por camada.
	res := packing.Calculate([]packing.Item{caixa("leite", 30)}, palletPBR)

	require.True(t, res.IsValid)
	assert.Equal(t, 1, res.Layers, "30 caixas de 20x20 preenchem exatamente uma camada")
	assert.Len(t, res.Layout, 30)
	assert.Equal(t, 150.0, res.TotalWeightKg)
	assert.Equal(t, 20.0, res.TotalHeightCm)
}

func TestCalculate_AbreSegundaCamada(t *testing.T) {
	res := packing.Calculate([]packing.Item{caixa("leite", 31)}, palletPBR)

	require.True(t, res.IsValid)
	assert.Equal(t, 2, res.Layers)
	assert.Equal(t, 40.0, res.TotalHeightCm, "a altura acumula a camada parcial inteira")

	last := res.Layout[len(res.Layout)-1]
	assert.Equal(t, 2, last.Layer)
	assert.Equal(t, 0.0, last.X)
	assert.Equal(t, 0.0, last.Y)
	assert.Equal(t, 20.0, last.Z, "a base da segunda camada é a altura da primeira")
}

func TestCalculate_Deterministico(t *testing.T) {
	items := []packing.Item{
		caixa("b-produto", 7),
		caixa("a-produto", 7),
		{ProductID: "c-produto", PackagingTypeID: "pkg-c", Quantity: 3,
			UnitWeightKg: 12, UnitWidthCm: 40, UnitLengthCm: 30, UnitHeightCm: 25},
	}

	first := packing.Calculate(items, palletPBR)
	for i := 0; i < 10; i++ {
		again := packing.Calculate(items, palletPBR)
		assert.Equal(t, first, again, "mesma entrada deve produzir exatamente o mesmo resultado")
	}

	// Itens de maior área de base vêm primeiro; empate desempata por produto.
	require.NotEmpty(t, first.Layout)
	assert.Equal(t, "c-produto", first.Layout[0].ProductID)
	assert.Equal(t, "a-produto", first.Layout[3].ProductID)
}

func TestCalculate_EmbalagemMaiorQueOPiso(t *testing.T) {
	grande := packing.Item{
		ProductID: "bombona", PackagingTypeID: "pkg-bombona", Quantity: 1,
		UnitWeightKg: 30, UnitWidthCm: 150, UnitLengthCm: 50, UnitHeightCm: 40,
	}
	res := packing.Calculate([]packing.Item{grande, caixa("leite", 2)}, palletPBR)

	assert.False(t, res.IsValid)
	require.Len(t, res.Violations, 1)
	assert.Contains(t, res.Violations[0], "não cabe no piso do palete")
	assert.Len(t, res.Layout, 2, "os demais itens continuam sendo posicionados")
}

func TestCalculate_PaleteSemPiso(t *testing.T) {
	res := packing.Calculate([]packing.Item{caixa("leite", 1)}, packing.Pallet{})

	assert.False(t, res.IsValid)
	assert.Contains(t, res.Violations[0], "sem dimensões de piso")
	assert.Empty(t, res.Layout)
}

func TestCalculate_Aproveitamento(t *testing.T) {
	cubo := packing.Item{
		ProductID: "cubo", PackagingTypeID: "pkg-cubo", Quantity: 4,
		UnitWeightKg: 10, UnitWidthCm: 50, UnitLengthCm: 50, UnitHeightCm: 50,
	}
	pallet := packing.Pallet{WidthCm: 100, LengthCm: 100, HeightCm: 100, MaxWeightKg: 500}

	res := packing.Calculate([]packing.Item{cubo}, pallet)

	require.True(t, res.IsValid)
	assert.InDelta(t, 50.0, res.Efficiency, 0.001, "4 cubos de 125L em 1m³ ocupam metade do volume")
}

func TestCalculate_QuantidadeZeroIgnorada(t *testing.T) {
	res := packing.Calculate([]packing.Item{caixa("leite", 0)}, palletPBR)

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Layout)
	assert.Equal(t, 0, res.Layers)
	assert.Equal(t, 0.0, res.TotalHeightCm)
}

package packing

import (
	"fmt"
	"sort"
)

// Calculate monta o layout por camadas usando empacotamento de prateleira
// (shelf packing): os itens são ordenados por área de base decrescente e as
// unidades preenchem a camada em fileiras, da esquerda para a direita e da
// frente para o fundo; esgotado o piso, abre-se nova camada. A altura de uma
// camada é a da unidade mais alta nela.
//
// O resultado é determinístico: a ordenação desempata por produto e embalagem,
// e o percurso das unidades é sequencial. Complexidade linear no total de
// unidades.
//
// Uma unidade cuja base não cabe no piso do palete jamais poderá ser
// posicionada; nesse caso IsValid=false e o layout fica parcial. Estouros de
// peso/altura NÃO interrompem o cálculo: são julgados pelo Validate.
func Calculate(items []Item, pallet Pallet) *Result {
	res := &Result{
		IsValid:    true,
		Layout:     []LayoutEntry{},
		Violations: []string{},
		Warnings:   []string{},
	}
	if pallet.WidthCm <= 0 || pallet.LengthCm <= 0 {
		res.IsValid = false
		res.Violations = append(res.Violations, "palete sem dimensões de piso definidas")
		return res
	}

	// Ordenação determinística: área de base decrescente, depois produto e embalagem.
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(a, b int) bool {
		fa, fb := sorted[a].FootprintCm2(), sorted[b].FootprintCm2()
		if fa != fb {
			return fa > fb
		}
		if sorted[a].ProductID != sorted[b].ProductID {
			return sorted[a].ProductID < sorted[b].ProductID
		}
		return sorted[a].PackagingTypeID < sorted[b].PackagingTypeID
	})

	var (
		layer       = 1
		cursorX     float64
		cursorY     float64
		rowDepth    float64 // comprimento da fileira atual
		layerHeight float64
		zBase       float64
		layerUsed   bool
	)

	newLayer := func() {
		zBase += layerHeight
		layer++
		cursorX, cursorY, rowDepth, layerHeight = 0, 0, 0, 0
		layerUsed = false
	}

	for _, it := range sorted {
		if it.Quantity <= 0 {
			continue
		}
		w, l, h := it.UnitWidthCm, it.UnitLengthCm, it.UnitHeightCm
		if w > pallet.WidthCm || l > pallet.LengthCm {
			res.IsValid = false
			res.Violations = append(res.Violations, fmt.Sprintf(
				"produto %s: a embalagem (%.0fx%.0fcm) não cabe no piso do palete (%.0fx%.0fcm)",
				it.ProductID, w, l, pallet.WidthCm, pallet.LengthCm))
			continue
		}

		for n := int64(0); n < it.Quantity; n++ {
			// Tenta a fileira atual, depois nova fileira, depois nova camada.
			if cursorX+w > pallet.WidthCm {
				cursorY += rowDepth
				cursorX, rowDepth = 0, 0
			}
			if cursorY+l > pallet.LengthCm {
				if !layerUsed {
					// Camada vazia e ainda assim não coube: inconsistência de
					// dimensões já tratada acima; protege contra loop.
					break
				}
				newLayer()
			}

			res.Layout = append(res.Layout, LayoutEntry{
				ProductID:       it.ProductID,
				PackagingTypeID: it.PackagingTypeID,
				Layer:           layer,
				X:               cursorX,
				Y:               cursorY,
				Z:               zBase,
				WidthCm:         w,
				LengthCm:        l,
				HeightCm:        h,
			})
			layerUsed = true
			cursorX += w
			if l > rowDepth {
				rowDepth = l
			}
			if h > layerHeight {
				layerHeight = h
			}

			res.TotalWeightKg += it.UnitWeightKg
			res.TotalVolumeCm3 += it.UnitVolumeCm3()
		}
	}

	res.TotalHeightCm = zBase + layerHeight
	if layerUsed {
		res.Layers = layer
	} else if layer > 1 {
		res.Layers = layer - 1
	}

	if nominal := pallet.NominalVolumeCm3(); nominal > 0 {
		res.Efficiency = res.TotalVolumeCm3 / nominal * 100
		if res.Efficiency > 100 {
			res.Efficiency = 100
		}
	}

	return res
}

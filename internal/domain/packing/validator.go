package packing

import "fmt"

// Tetos absolutos de segurança. Não podem ser afrouxados pelo chamador.
const (
	MaxTotalWeightKg = 2000.0
	MaxTotalHeightCm = 300.0
	MaxProductLines  = 50
)

// Limiar de aviso (não bloqueante) de aproveitamento do palete.
const minHealthyEfficiency = 60.0

// Validate confronta o resultado calculado com os tetos absolutos, a capacidade
// do palete e as restrições do chamador. Violações bloqueiam (IsValid=false) e
// carregam o limite violado por extenso; avisos são apenas orientativos.
// lineCount é o número de linhas de produto da requisição original.
func Validate(res *Result, pallet Pallet, c *Constraints, lineCount int) {
	weightLimit := MaxTotalWeightKg
	if pallet.MaxWeightKg > 0 && pallet.MaxWeightKg < weightLimit {
		weightLimit = pallet.MaxWeightKg
	}
	heightLimit := MaxTotalHeightCm
	if pallet.HeightCm > 0 && pallet.HeightCm < heightLimit {
		heightLimit = pallet.HeightCm
	}
	volumeLimit := pallet.NominalVolumeCm3()

	if c != nil {
		if c.MaxWeightKg != nil {
			if *c.MaxWeightKg > MaxTotalWeightKg {
				res.Violations = append(res.Violations, fmt.Sprintf(
					"limite de peso informado (%.0fkg) excede o máximo permitido de %.0fkg",
					*c.MaxWeightKg, MaxTotalWeightKg))
			} else if *c.MaxWeightKg > 0 && *c.MaxWeightKg < weightLimit {
				weightLimit = *c.MaxWeightKg
			}
		}
		if c.MaxHeightCm != nil {
			if *c.MaxHeightCm > MaxTotalHeightCm {
				res.Violations = append(res.Violations, fmt.Sprintf(
					"limite de altura informado (%.0fcm) excede o máximo permitido de %.0fcm",
					*c.MaxHeightCm, MaxTotalHeightCm))
			} else if *c.MaxHeightCm > 0 && *c.MaxHeightCm < heightLimit {
				heightLimit = *c.MaxHeightCm
			}
		}
		if c.MaxVolumeCm3 != nil && *c.MaxVolumeCm3 > 0 && *c.MaxVolumeCm3 < volumeLimit {
			volumeLimit = *c.MaxVolumeCm3
		}
	}

	res.WeightLimitKg = weightLimit
	res.HeightLimitCm = heightLimit
	res.VolumeLimitCm3 = volumeLimit

	if lineCount > MaxProductLines {
		res.Violations = append(res.Violations, fmt.Sprintf(
			"a composição possui %d linhas de produto e excede o limite máximo de %d",
			lineCount, MaxProductLines))
	}
	if res.TotalWeightKg > weightLimit {
		res.Violations = append(res.Violations, fmt.Sprintf(
			"peso total de %.2fkg excede o limite máximo de %.0fkg",
			res.TotalWeightKg, weightLimit))
	}
	if res.TotalHeightCm > heightLimit {
		res.Violations = append(res.Violations, fmt.Sprintf(
			"altura total de %.1fcm excede o limite máximo de %.0fcm",
			res.TotalHeightCm, heightLimit))
	}
	if volumeLimit > 0 && res.TotalVolumeCm3 > volumeLimit {
		res.Violations = append(res.Violations, fmt.Sprintf(
			"volume total de %.0fcm³ excede o limite de %.0fcm³",
			res.TotalVolumeCm3, volumeLimit))
	}

	if len(res.Layout) > 0 && res.Efficiency < minHealthyEfficiency {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"aproveitamento do palete em %.1f%%, abaixo do recomendado de %.0f%%",
			res.Efficiency, minHealthyEfficiency))
	}
	if weightLimit > 0 && res.TotalWeightKg > 0.9*weightLimit && res.TotalWeightKg <= weightLimit {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"peso total em %.1f%% do limite do palete",
			res.TotalWeightKg/weightLimit*100))
	}

	res.IsValid = res.IsValid && len(res.Violations) == 0
}

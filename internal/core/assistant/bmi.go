package assistant

import (
	"strings"

	"gofoody-ai/internal/pkg/common"
)

// BMIResult BMI 評估結果；資料無效時 BMI 為 nil
type BMIResult struct {
	BMI        *float64 `json:"bmi"`
	Category   string   `json:"categoria"`
	Emoji      string   `json:"emoji,omitempty"`
	Suggestion string   `json:"suggerimento"`
}

// EvaluateBMI 依 WHO 分級計算 BMI，並依年齡與性別補充建議
func EvaluateBMI(weightKg, heightCm float64, age int, sex string) BMIResult {
	if heightCm <= 0 || weightKg <= 0 {
		return BMIResult{
			Category:   "Dati non validi",
			Suggestion: "Inserisci peso e altezza per calcolare il tuo BMI.",
		}
	}

	heightM := heightCm / 100
	bmi := common.Round(weightKg/(heightM*heightM), 1)

	var res BMIResult
	switch {
	case bmi < 18.5:
		res = BMIResult{Category: "Sottopeso", Emoji: "🥗",
			Suggestion: "Aumenta l’apporto calorico con pasti nutrienti e regolari."}
	case bmi < 25:
		res = BMIResult{Category: "Peso ideale", Emoji: "💪",
			Suggestion: "Mantieni il tuo stile di vita equilibrato e attivo!"}
	case bmi < 30:
		res = BMIResult{Category: "Sovrappeso", Emoji: "⚖️",
			Suggestion: "Riduci zuccheri e grassi, punta su pasti più leggeri."}
	default:
		res = BMIResult{Category: "Obesità", Emoji: "🚨",
			Suggestion: "Consulta un nutrizionista per un piano alimentare bilanciato."}
	}

	if age > 55 && bmi < 20 {
		res.Suggestion += " Dopo i 55 anni, un BMI leggermente più alto può essere fisiologico."
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(sex)), "f") && bmi < 18.5 {
		res.Suggestion += " Assicurati di avere un apporto proteico adeguato."
	}

	res.BMI = &bmi
	return res
}

package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBMIBands(t *testing.T) {
	tests := []struct {
		weight, height float64
		bmi            float64
		category       string
		emoji          string
	}{
		{50, 180, 15.4, "Sottopeso", "🥗"},
		{70, 175, 22.9, "Peso ideale", "💪"},
		{85, 175, 27.8, "Sovrappeso", "⚖️"},
		{110, 175, 35.9, "Obesità", "🚨"},
	}

	for _, tt := range tests {
		res := EvaluateBMI(tt.weight, tt.height, 30, "M")
		require.NotNil(t, res.BMI, tt.category)
		assert.Equal(t, tt.bmi, *res.BMI, tt.category)
		assert.Equal(t, tt.category, res.Category)
		assert.Equal(t, tt.emoji, res.Emoji)
	}
}

func TestEvaluateBMIHints(t *testing.T) {
	res := EvaluateBMI(60, 175, 60, "M")
	assert.Contains(t, res.Suggestion, "Dopo i 55 anni")

	res = EvaluateBMI(45, 170, 30, "Femmina")
	assert.Contains(t, res.Suggestion, "apporto proteico")

	res = EvaluateBMI(45, 170, 30, "M")
	assert.NotContains(t, res.Suggestion, "apporto proteico")
}

func TestEvaluateBMIInvalid(t *testing.T) {
	for _, res := range []BMIResult{
		EvaluateBMI(0, 175, 30, "M"),
		EvaluateBMI(70, 0, 30, "M"),
		EvaluateBMI(-1, -1, 0, ""),
	} {
		assert.Nil(t, res.BMI)
		assert.Equal(t, "Dati non validi", res.Category)
		assert.Empty(t, res.Emoji)
	}
}

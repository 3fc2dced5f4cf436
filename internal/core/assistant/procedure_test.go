package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcedure(t *testing.T) {
	text := Procedure(fixedPicker(0), "Pasta al Pomodoro", []string{"pasta", "pomodoro", "olio", "basilico"}, "Mediterranea")

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Iniziamo a preparare pasta al pomodoro, una ricetta mediterranea!", lines[0])
	assert.Equal(t, "1️⃣ Prepara pasta, pomodoro, olio tagliandoli in modo uniforme.", lines[1])
	assert.Equal(t, "3️⃣ Cuoci a fuoco medio per 10 minuti mescolando di tanto in tanto.", lines[3])
	assert.Contains(t, lines[4], "dieta mediterranea")
	assert.Contains(t, lines[5], "pasta al pomodoro")
}

func TestProcedureDefaults(t *testing.T) {
	text := Procedure(fixedPicker(99), "", []string{"riso"}, "")

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Prepariamo insieme ricetta, usando ingredienti freschi e genuini.", lines[0])
	assert.Contains(t, lines[3], "25 minuti")
	assert.Contains(t, lines[4], "dieta personale")
}

func TestProcedureWithoutIngredients(t *testing.T) {
	assert.Equal(t, NoIngredientsMessage, Procedure(fixedPicker(0), "Pasta", nil, ""))
	assert.Equal(t, NoIngredientsMessage, Procedure(fixedPicker(0), "Pasta", []string{" ", ""}, ""))
}

package assistant

import (
	"fmt"
	"strings"
)

// NoIngredientsMessage 沒有食材時的回覆
const NoIngredientsMessage = "Nessun ingrediente specificato. Non è possibile generare il procedimento."

// Procedure 產生制式的料理步驟文字
func Procedure(p Picker, title string, ingredients []string, diet string) string {
	var names []string
	for _, ing := range ingredients {
		if s := strings.TrimSpace(ing); s != "" {
			names = append(names, s)
		}
	}
	if len(names) == 0 {
		return NoIngredientsMessage
	}

	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		t = "ricetta"
	}
	d := strings.ToLower(strings.TrimSpace(diet))
	dietIntro, dietSteps := d, d
	if d == "" {
		dietIntro, dietSteps = "semplice", "personale"
	}

	intro := pick(p, []string{
		fmt.Sprintf("Iniziamo a preparare %s, una ricetta %s!", t, dietIntro),
		fmt.Sprintf("Oggi cuciniamo %s, con un tocco sano e gustoso.", t),
		fmt.Sprintf("Prepariamo insieme %s, usando ingredienti freschi e genuini.", t),
	})

	first := names
	if len(first) > 3 {
		first = first[:3]
	}

	steps := []string{
		intro,
		fmt.Sprintf("1️⃣ Prepara %s tagliandoli in modo uniforme.", strings.Join(first, ", ")),
		"2️⃣ Scalda una padella o pentola con un filo d’olio e aggiungi gli ingredienti principali.",
		fmt.Sprintf("3️⃣ Cuoci a fuoco medio per %d minuti mescolando di tanto in tanto.", 10+p.Intn(16)),
		fmt.Sprintf("4️⃣ Aggiungi sale, spezie e condimenti secondo la tua dieta %s.", dietSteps),
		fmt.Sprintf("5️⃣ Servi la tua %s calda o fredda, a piacere. Buon appetito! 🍽️", t),
	}
	return strings.Join(steps, "\n")
}

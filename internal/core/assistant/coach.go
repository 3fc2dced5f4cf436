package assistant

import (
	"fmt"
	"strings"
	"time"
)

var coachTips = []string{
	"Ricorda di bere abbastanza acqua 💧 e di includere verdure fresche nei tuoi pasti!",
	"Muoviti almeno 30 minuti oggi: anche una passeggiata fa la differenza 🚶‍♀️.",
	"Oggi è un buon giorno per provare una nuova ricetta sana 🌿.",
	"Non saltare i pasti principali: la regolarità aiuta il metabolismo ⚡.",
	"Sorridi 😄, anche il benessere emotivo fa parte di uno stile di vita sano.",
}

// Coach 產生激勵訊息
type Coach struct {
	picker Picker
	now    func() time.Time
}

// NewCoach 建立 Coach
func NewCoach(picker Picker, now func() time.Time) *Coach {
	if now == nil {
		now = time.Now
	}
	return &Coach{picker: picker, now: now}
}

// Message 依時段問候，再加上 BMI、體重趨勢與飲食類型的建議；BMI ≤ 0 時只給一般提醒
func (c *Coach) Message(bmi float64, diet, trend string) string {
	greeting := greetingFor(c.now().Hour())

	if bmi <= 0 {
		return fmt.Sprintf("%s! %s", greeting, pick(c.picker, coachTips))
	}

	var bmiPhrase string
	switch {
	case bmi < 18.5:
		bmiPhrase = "Il tuo peso è leggermente inferiore alla media 🥗. Aggiungi spuntini sani e nutrienti!"
	case bmi < 25:
		bmiPhrase = "Ottimo equilibrio 💪, continua così con la tua alimentazione e attività fisica."
	case bmi < 30:
		bmiPhrase = "Attenzione ⚖️, piccole modifiche alle porzioni possono aiutarti a tornare in forma."
	default:
		bmiPhrase = "Obiettivo salute 🚀, prediligi alimenti freschi, leggeri e ricchi di fibre."
	}

	var trendPhrase string
	switch strings.ToLower(strings.TrimSpace(trend)) {
	case "diminuzione":
		trendPhrase = "Ottimo! Stai migliorando i tuoi parametri, ma mantieni sempre un ritmo sostenibile. 🌿"
	case "aumento":
		trendPhrase = "Il peso è in lieve aumento: rivedi le abitudini e prediligi pasti leggeri oggi. ⚖️"
	default:
		trendPhrase = "Stabilità è sinonimo di costanza: continua su questa strada! ✅"
	}

	d := strings.ToLower(diet)
	var dietPhrase string
	switch {
	case strings.Contains(d, "vegana"):
		dietPhrase = "Ottima scelta 🌱! Ricorda di integrare vitamina B12 e proteine vegetali."
	case strings.Contains(d, "vegetariana"):
		dietPhrase = "Perfetto equilibrio 🌽: abbina legumi e cereali per un pasto completo."
	case strings.Contains(d, "mediterranea"):
		dietPhrase = "La dieta Mediterranea è un grande alleato ❤️. Mantieni varietà e porzioni giuste."
	default:
		dietPhrase = "Segui un’alimentazione bilanciata e varia per restare in forma 🌞."
	}

	return fmt.Sprintf("%s! %s %s %s", greeting, bmiPhrase, trendPhrase, dietPhrase)
}

func greetingFor(hour int) string {
	switch {
	case hour < 12:
		return "Buongiorno"
	case hour < 18:
		return "Buon pomeriggio"
	default:
		return "Buonasera"
	}
}

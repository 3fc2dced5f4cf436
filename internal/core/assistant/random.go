// Package assistant holds the canned, rule-based helpers around the meal
// engine: BMI evaluation, pantry expiry alerts, coaching messages, recipe
// suggestions from pantry coverage and the keyword chat.
package assistant

import (
	"math/rand"
	"sync"
	"time"
)

// Picker 隨機選擇來源，測試時可替換為固定值
type Picker interface {
	Intn(n int) int
}

// lockedRand 可在多個 goroutine 間共用的亂數來源
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewPicker 以目前時間為種子建立 Picker
func NewPicker() Picker {
	return &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func pick(p Picker, options []string) string {
	return options[p.Intn(len(options))]
}

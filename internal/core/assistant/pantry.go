package assistant

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const expiryLayout = "2006-01-02"

// AllGoodMessage 沒有任何即將到期的食材
const AllGoodMessage = "✅ Tutti gli alimenti in dispensa sono in buono stato."

// PantryItem 儲藏室中的食材；Expiry 格式為 YYYY-MM-DD，可為空
type PantryItem struct {
	Name   string `json:"nome"`
	Expiry string `json:"scadenza"`
}

// ExpiryAlerts 列出已過期、今天到期、兩天內與五天內到期的食材。
// 沒有日期或日期格式錯誤的項目會被略過。
func ExpiryAlerts(items []PantryItem, today time.Time) []string {
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var alerts []string
	for _, item := range items {
		raw := strings.TrimSpace(item.Expiry)
		if raw == "" {
			continue
		}
		expiry, err := time.Parse(expiryLayout, raw)
		if err != nil {
			continue
		}

		name := capitalize(item.Name)
		days := int(expiry.Sub(day).Hours() / 24)

		switch {
		case days < 0:
			alerts = append(alerts, fmt.Sprintf("⚠️ %s è scaduto da %d giorni!", name, -days))
		case days == 0:
			alerts = append(alerts, fmt.Sprintf("⚠️ %s scade OGGI, consumalo subito!", name))
		case days <= 2:
			alerts = append(alerts, fmt.Sprintf("⏳ %s scade tra %d giorni, usalo prima possibile.", name, days))
		case days <= 5:
			alerts = append(alerts, fmt.Sprintf("📅 %s è da consumare entro %d giorni.", name, days))
		}
	}

	if len(alerts) == 0 {
		return []string{AllGoodMessage}
	}
	return alerts
}

// capitalize 首字大寫、其餘小寫
func capitalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

package catalog

import (
	"gofoody-ai/internal/core/textnorm"
)

// defaultAliases 常見複數／變體名稱 → 標準單數 slug
var defaultAliases = map[string]string{
	"pomodori":      "pomodoro",
	"pomodorini":    "pomodoro",
	"pomodorino":    "pomodoro",
	"mele":          "mela",
	"pere":          "pera",
	"banane":        "banana",
	"arance":        "arancia",
	"limoni":        "limone",
	"fragole":       "fragola",
	"uova":          "uovo",
	"patate":        "patata",
	"carote":        "carota",
	"cipolle":       "cipolla",
	"zucchine":      "zucchina",
	"zucchini":      "zucchina",
	"melanzane":     "melanzana",
	"peperoni":      "peperone",
	"funghi":        "fungo",
	"spinaci":       "spinacio",
	"fagioli":       "fagiolo",
	"ceci":          "cece",
	"lenticchie":    "lenticchia",
	"piselli":       "pisello",
	"noci":          "noce",
	"mandorle":      "mandorla",
	"nocciole":      "nocciola",
	"olive":         "oliva",
	"gamberi":       "gambero",
	"gamberetti":    "gambero",
	"cozze":         "cozza",
	"vongole":       "vongola",
	"biscotti":      "biscotto",
	"cornetti":      "cornetto",
	"fette":         "fetta",
	"petto_pollo":   "pollo",
	"cosce_pollo":   "pollo",
	"filetto_manzo": "manzo",
	"spaghetti":     "pasta",
	"penne":         "pasta",
	"fusilli":       "pasta",
	"rigatoni":      "pasta",
	"olio_oliva":    "olio",
	"olio_evo":      "olio",
}

// AliasTable 變體名稱 → 標準名稱的靜態對照表，建立後唯讀
type AliasTable struct {
	entries map[string]string
}

// NewAliasTable 以預設對照表建立，extra 中的條目會覆蓋預設值；鍵與值都會先正規化
func NewAliasTable(extra map[string]string) *AliasTable {
	entries := make(map[string]string, len(defaultAliases)+len(extra))
	add := func(from, to string) {
		f := textnorm.DishKey(from)
		t := textnorm.DishKey(to)
		if f == "" || t == "" || f == t {
			return
		}
		entries[f] = t
	}
	for from, to := range defaultAliases {
		add(from, to)
	}
	for from, to := range extra {
		add(from, to)
	}
	return &AliasTable{entries: entries}
}

// Canonicalize 查表，不存在時原樣回傳
func (a *AliasTable) Canonicalize(slug string) string {
	if a == nil {
		return slug
	}
	if to, ok := a.entries[slug]; ok {
		return to
	}
	return slug
}

// Key 將任意名稱轉成查詢用的標準鍵：正規化前後各套用一次別名表
func (a *AliasTable) Key(raw string) string {
	first := a.Canonicalize(textnorm.Slugify(raw))
	return a.Canonicalize(textnorm.DishKey(first))
}

// Len 條目數
func (a *AliasTable) Len() int {
	if a == nil {
		return 0
	}
	return len(a.entries)
}

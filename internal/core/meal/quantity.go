package meal

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberPattern = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	unitPattern   = regexp.MustCompile(`^\s*([a-z]+)`)
	wordPattern   = regexp.MustCompile(`[a-z]+`)
)

// unitAliases 單位字樣 → 標準單位
var unitAliases = map[string]string{
	"kg": "kg", "kilo": "kg", "chilo": "kg", "chili": "kg", "chilogrammi": "kg", "chilogrammo": "kg",
	"mg": "mg", "milligrammi": "mg", "milligrammo": "mg",
	"ml": "ml", "millilitri": "ml", "millilitro": "ml",
	"l": "l", "lt": "l", "litro": "l", "litri": "l",
	"g": "g", "gr": "g", "grammi": "g", "grammo": "g",
}

// unitPrecedence 數字後沒有單位時，整句搜尋的順序（ml 視為 g）
var unitPrecedence = []struct {
	unit   string
	factor float64
}{
	{"kg", 1000},
	{"mg", 0.001},
	{"ml", 1},
	{"l", 1000},
	{"g", 1},
}

// pieceMarkers 明確表示「個數」的字樣
var pieceMarkers = []string{"pz", "pezzo", "pezzi"}

// Quantity 份量：數字（視為克）或文字描述，如 "2 pz"、"1 kg"
type Quantity struct {
	grams   float64
	text    string
	numeric bool
}

// Grams 以克數建立份量
func Grams(v float64) Quantity {
	return Quantity{grams: v, numeric: true}
}

// Text 以文字描述建立份量
func Text(s string) Quantity {
	return Quantity{text: s}
}

// IsZero 是否未提供份量
func (q Quantity) IsZero() bool {
	return !q.numeric && strings.TrimSpace(q.text) == ""
}

// String 原始描述
func (q Quantity) String() string {
	if q.numeric {
		return strconv.FormatFloat(q.grams, 'f', -1, 64)
	}
	return q.text
}

// UnmarshalJSON 接受 JSON 數字或字串；其他型別視為未提供
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*q = Quantity{}
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Text(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*q = Grams(v)
	}
	return nil
}

// MarshalJSON 數字原樣輸出，文字輸出為字串
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.numeric {
		return json.Marshal(q.grams)
	}
	return json.Marshal(q.text)
}

// ToGrams 將份量換算為克數，無法解析時回傳 0。
// 單位先看第一個數字後的字詞，否則依 kg、mg、ml、l、g 的順序在整句的字詞中尋找。
// 無單位時，帶有個數字樣或數字不超過 pieceThreshold 視為個數，乘以食材單件重量。
func (e *Engine) ToGrams(foodName string, q Quantity) float64 {
	if q.numeric {
		if q.grams <= 0 || math.IsNaN(q.grams) || math.IsInf(q.grams, 0) {
			return 0
		}
		return q.grams
	}

	s := strings.ToLower(strings.TrimSpace(q.text))
	loc := numberPattern.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	n, err := strconv.ParseFloat(strings.Replace(s[loc[0]:loc[1]], ",", ".", 1), 64)
	if err != nil {
		return 0
	}

	if factor, ok := unitFactor(s, loc[1]); ok {
		return n * factor
	}

	if hasPieceMarker(s) || n <= e.pieceThreshold {
		return n * e.pieceWeight(foodName)
	}
	return n
}

// unitFactor 找出單位換算倍率；after 為第一個數字結束的位置
func unitFactor(s string, after int) (float64, bool) {
	found := map[string]bool{}
	if m := unitPattern.FindStringSubmatch(s[after:]); m != nil {
		if unit, ok := unitAliases[m[1]]; ok {
			found[unit] = true
		}
	}
	if len(found) == 0 {
		for _, word := range wordPattern.FindAllString(s, -1) {
			if unit, ok := unitAliases[word]; ok {
				found[unit] = true
			}
		}
	}

	for _, u := range unitPrecedence {
		if found[u.unit] {
			return u.factor, true
		}
	}
	return 0, false
}

func hasPieceMarker(s string) bool {
	for _, marker := range pieceMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// pieceWeight 食材的單件重量，未設定時為 DefaultPieceWeightG
func (e *Engine) pieceWeight(foodName string) float64 {
	entry, ok := e.catalog.Nutrients.Lookup(e.catalog.Aliases.Key(foodName))
	if ok && entry.DefaultWeightG > 0 {
		return entry.DefaultWeightG
	}
	return DefaultPieceWeightG
}

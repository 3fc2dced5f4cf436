// Package textnorm turns free-text food and dish names into canonical lookup keys.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordPattern = regexp.MustCompile(`[^a-z0-9 ]`)
	nonSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)
)

// stopwords 義大利語功能詞：冠詞、介系詞（含縮合形式）、連接詞
var stopwords = map[string]struct{}{
	// 冠詞
	"il": {}, "lo": {}, "la": {}, "i": {}, "gli": {}, "le": {}, "l": {},
	"un": {}, "uno": {}, "una": {},
	// 介系詞
	"di": {}, "d": {}, "a": {}, "da": {}, "in": {}, "con": {}, "su": {}, "per": {}, "tra": {}, "fra": {},
	// 縮合介系詞
	"del": {}, "dello": {}, "della": {}, "dei": {}, "degli": {}, "delle": {}, "dell": {},
	"al": {}, "allo": {}, "alla": {}, "ai": {}, "agli": {}, "alle": {}, "all": {},
	"dal": {}, "dallo": {}, "dalla": {}, "dai": {}, "dagli": {}, "dalle": {}, "dall": {},
	"nel": {}, "nello": {}, "nella": {}, "nei": {}, "negli": {}, "nelle": {}, "nell": {},
	"sul": {}, "sullo": {}, "sulla": {}, "sui": {}, "sugli": {}, "sulle": {}, "sull": {},
	"col": {}, "coi": {},
	// 連接詞
	"e": {}, "ed": {}, "o": {}, "od": {},
}

// StripAccents lowercases s and removes combining marks after NFD decomposition.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// IsStopword reports whether token is a function word dropped by NormalizeDish.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

// NormalizeDish lowercases, strips accents and punctuation and removes
// stopwords, returning the remaining tokens joined by single spaces.
func NormalizeDish(raw string) string {
	s := StripAccents(raw)
	if s == "" {
		return ""
	}
	s = nonWordPattern.ReplaceAllString(s, " ")

	tokens := strings.Fields(s)
	kept := tokens[:0]
	for _, tok := range tokens {
		if IsStopword(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// Slugify lowercases, strips accents and collapses every run of characters
// outside [a-z0-9] into a single underscore.
func Slugify(raw string) string {
	s := StripAccents(raw)
	s = nonSlugPattern.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// DishKey is Slugify(NormalizeDish(raw)); applying it to its own output is a no-op.
func DishKey(raw string) string {
	return Slugify(NormalizeDish(raw))
}

// Spaced turns a slug back into its space separated form.
func Spaced(slug string) string {
	return strings.ReplaceAll(slug, "_", " ")
}

// Similarity returns a ratio in [0,1] derived from the Levenshtein distance
// over runes: 1 - distance/max(len(a), len(b)).
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

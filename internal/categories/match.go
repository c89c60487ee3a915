package categories

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/cofrinho-app/cofrinho/internal/model"
)

// shortKeywordLen is the longest keyword that must match as a whole word.
const shortKeywordLen = 3

// Guess maps a description and direction to a category. The first category
// in declaration order with a matching keyword wins; otherwise the default
// for the direction is returned. It never fails.
func (t *Table) Guess(description string, isIncome bool) model.Category {
	text := Fold(strings.TrimSpace(description))
	if text == "" {
		return t.DefaultFor(isIncome)
	}
	for i, keywords := range t.folded {
		for _, k := range keywords {
			if MatchKeyword(text, k) {
				return t.cats[i]
			}
		}
	}
	return t.DefaultFor(isIncome)
}

// Fold lower-cases s and strips combining marks, so "Salário" and "salario"
// compare equal.
func Fold(s string) string {
	tr := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(tr, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// MatchKeyword reports whether keyword occurs in text. Both must already be
// folded. Keywords of up to three characters only match whole words.
func MatchKeyword(text, keyword string) bool {
	if keyword == "" {
		return false
	}
	if utf8.RuneCountInString(keyword) > shortKeywordLen {
		return strings.Contains(text, keyword)
	}
	return ContainsWord(text, keyword)
}

// ContainsWord reports whether word occurs in text bounded on both sides by
// a non-alphanumeric rune or the string edge.
func ContainsWord(text, word string) bool {
	for start := 0; start <= len(text)-len(word); {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(word)
		if isBoundary(text, i, true) && isBoundary(text, end, false) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		start = i + size
	}
	return false
}

func isBoundary(text string, at int, before bool) bool {
	var r rune
	if before {
		if at == 0 {
			return true
		}
		r, _ = utf8.DecodeLastRuneInString(text[:at])
	} else {
		if at >= len(text) {
			return true
		}
		r, _ = utf8.DecodeRuneInString(text[at:])
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

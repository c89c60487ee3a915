// Package amount extracts and formats BRL currency amounts in free text.
package amount

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// amountRe finds the first currency-looking run: an optional "R$" marker,
// digits, and further digit groups joined by "." or ",".
var amountRe = regexp.MustCompile(`(?i)(?:R\$)?\s*\d+(?:[.,]\d+)*`)

var currencyRe = regexp.MustCompile(`(?i)R\$\s*`)

// Match is the result of a successful Extract.
type Match struct {
	Value     decimal.Decimal
	Text      string // the matched substring, as it appeared in the input
	Remainder string // input with Text removed, trimmed
	Negative  bool   // a minus sign is attached to the match, as in "-50"
}

// Extract locates the first amount in text. It reports false when text has no
// digits, in which case the caller keeps text unmodified.
func Extract(text string) (Match, bool) {
	loc := amountRe.FindStringIndex(text)
	if loc == nil {
		return Match{}, false
	}
	matched := text[loc[0]:loc[1]]

	value, err := decimal.NewFromString(Normalize(matched))
	if err != nil {
		return Match{}, false
	}

	return Match{
		Value:     value,
		Text:      matched,
		Remainder: strings.TrimSpace(text[:loc[0]] + text[loc[1]:]),
		Negative:  signed(text, loc[0]),
	}, true
}

// Normalize rewrites a pt-BR or plain amount into a decimal literal.
//
//	"1.234,56" -> "1234.56"  (dots group, last comma is decimal)
//	"23,50"    -> "23.50"
//	"50.00"    -> "50.00"
//	"1.234.567"-> "1234567"  (several dots can only be grouping)
//
// Several dots without a comma are read as grouping. A plain float parse
// of the same text would stop at the second dot and give 1.234.
func Normalize(s string) string {
	s = strings.TrimSpace(currencyRe.ReplaceAllString(s, ""))
	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasComma:
		s = strings.ReplaceAll(s, ".", "")
		i := strings.LastIndex(s, ",")
		s = strings.ReplaceAll(s[:i], ",", "") + "." + s[i+1:]
	case hasDot && strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	return s
}

// signed reports whether a minus sign is glued to the amount starting at
// start. The sign must itself open the text or follow whitespace, so a
// spaced dash ("Almoço - 35,90") or a hyphenated word ("item-50") is not a
// sign.
func signed(text string, start int) bool {
	// amountRe swallows the whitespace in front of the digits.
	for start < len(text) && (text[start] == ' ' || text[start] == '\t') {
		start++
	}
	before := text[:start]
	var rest string
	switch {
	case strings.HasSuffix(before, "-"):
		rest = strings.TrimSuffix(before, "-")
	case strings.HasSuffix(before, "−"):
		rest = strings.TrimSuffix(before, "−")
	default:
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(rest)
	return rest == "" || unicode.IsSpace(r)
}

package descriptor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cofrinho-app/cofrinho/internal/categories"
)

// Boilerplate prefixes, most specific first.
var prefixes = []string{
	`compra no d[ée]bito(?: via)?(?: nupay)?`,
	`compra no cr[ée]dito(?: via)?`,
	`pagamento de boleto(?: efetuado)?`,
	`pagamento(?: de)?(?: fatura)?(?: para)?`,
	`transfer[êe]ncia(?: recebida| enviada)?(?: pelo)?(?: pix)?(?: via)?(?: open banking)?`,
	`envio de pix`,
	`pix enviado(?: para)?`,
	`pix recebido(?: de)?`,
	`dep[óo]sito(?: recebido)?(?: por boleto)?`,
	`recarga de celular`,
	`ajuste de`,
	`estorno(?: de)?`,
	`resgate`,
}

var (
	prefixRe    = regexp.MustCompile(`(?i)^(?:` + strings.Join(prefixes, "|") + `)\b[\s:\-]*`)
	splitRe     = regexp.MustCompile(`\s*[-/]\s*`)
	parenRe     = regexp.MustCompile(`\s*\([^)]*(?:\)|$)`)
	bankCodeRe  = regexp.MustCompile(`(?i)\b(?:ag[êe]ncia|ag|conta(?:\s+corrente)?|cc|bco|banco)\b\.?:?\s*\d[\w.\-]*`)
	shortBankRe = regexp.MustCompile(`\b(?:ag|cc|bco|ip)\b`)
	shortIDRe   = regexp.MustCompile(`\bnsu\b`)
	longNumRe   = regexp.MustCompile(`\b\d{4,}\b`)
	edgesRe     = regexp.MustCompile(`^[^\p{L}\p{N}]+|[^\p{L}\p{N}]+$`)
	spacesRe    = regexp.MustCompile(`\s{2,}`)
)

// Folded substrings that mark a part as bank or account boilerplate.
var bankTerms = []string{
	"agencia",
	"conta",
	"banco",
	"nu pagamentos",
	"pagamentos s.a",
	"instituicao de pagamento",
	"itau unibanco",
	"bradesco",
	"santander",
	"caixa economica",
	"sicoob",
	"sicredi",
	"picpay",
	"mercado pago",
	"cpf",
	"cnpj",
}

// Folded substrings that mark authentication, identifier or due-date noise.
var idTerms = []string{
	"autenticacao",
	"identificador",
	"id:",
	"protocolo",
	"codigo",
	"documento",
	"vencimento",
	"venc.",
}

// connectors stay lower-case when they are neither the first nor the last word.
var connectors = map[string]bool{
	"de": true, "da": true, "do": true, "dos": true, "das": true,
	"e": true, "em": true, "na": true, "no": true,
}

// StripPrefix removes leading boilerplate phrases plus their separators,
// repeating while one matches ("Transferência - Pix recebido de Ana").
// A phrase is kept when no more than one character would remain after it.
func StripPrefix(s string) string {
	for {
		loc := prefixRe.FindStringIndex(s)
		if loc == nil {
			return s
		}
		rest := strings.TrimSpace(s[loc[1]:])
		if utf8.RuneCountInString(rest) <= 1 {
			return s
		}
		s = rest
	}
}

// PickUsefulPart splits on hyphens and slashes and keeps the leftmost part
// that is not boilerplate. When every part is useless s is returned as-is.
func PickUsefulPart(s string) string {
	for _, part := range splitRe.Split(s, -1) {
		if !IsUseless(part) {
			return part
		}
	}
	return s
}

// IsUseless reports whether a descriptor part carries no identifying text:
// masked or bulleted fragments, digit runs, bank or account labels, and
// authentication or due-date noise.
func IsUseless(part string) bool {
	part = strings.TrimSpace(part)
	if part == "" || strings.ContainsAny(part, "•*") {
		return true
	}

	digits, letters, run, maxRun := 0, 0, 0, 0
	for _, r := range part {
		switch {
		case unicode.IsDigit(r):
			digits++
			run = 0
		case unicode.IsLetter(r):
			letters++
			run++
			maxRun = max(maxRun, run)
		default:
			run = 0
		}
	}
	if letters == 0 || (digits > 5 && maxRun < 3) {
		return true
	}

	folded := categories.Fold(part)
	if shortBankRe.MatchString(folded) || shortIDRe.MatchString(folded) {
		return true
	}
	for _, term := range bankTerms {
		if strings.Contains(folded, term) {
			return true
		}
	}
	for _, term := range idTerms {
		if strings.Contains(folded, term) {
			return true
		}
	}
	return false
}

// RemoveParenthesized drops "(...)" groups, including an unclosed trailing one.
func RemoveParenthesized(s string) string {
	return parenRe.ReplaceAllString(s, "")
}

// RemoveBankCodes drops agency, account and bank labels followed by a code,
// e.g. "Ag 0001" or "Conta: 12345-6".
func RemoveBankCodes(s string) string {
	return bankCodeRe.ReplaceAllString(s, "")
}

// RemoveLongNumbers drops standalone runs of four or more digits.
func RemoveLongNumbers(s string) string {
	return longNumRe.ReplaceAllString(s, "")
}

// TrimEdges strips leading and trailing runes that are neither letters
// (accented included) nor digits.
func TrimEdges(s string) string {
	return edgesRe.ReplaceAllString(s, "")
}

// CollapseSpaces replaces whitespace runs with a single space.
func CollapseSpaces(s string) string {
	return spacesRe.ReplaceAllString(s, " ")
}

// TitleCase capitalizes the first letter of each word using pt-BR rules.
func TitleCase(s string) string {
	// A Caser holds state, so each call gets its own.
	return cases.Title(language.BrazilianPortuguese).String(s)
}

// LowerConnectors lower-cases grammatical particles in the middle of s.
func LowerConnectors(s string) string {
	words := strings.Split(s, " ")
	for i := 1; i < len(words)-1; i++ {
		if lw := strings.ToLower(words[i]); connectors[lw] {
			words[i] = lw
		}
	}
	return strings.Join(words, " ")
}

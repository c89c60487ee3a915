// Package smartinput turns one line of natural-language entry, such as
// "almoço 35,90" or "recebi 1.200 de venda", into a ParsedInput.
package smartinput

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cofrinho-app/cofrinho/internal/amount"
	"github.com/cofrinho-app/cofrinho/internal/categories"
	"github.com/cofrinho-app/cofrinho/internal/model"
)

// Placeholder replaces a description left empty once the amount is removed.
const Placeholder = "Nova transação"

// incomeKeywords mark money in. They are matched as folded substrings of
// the original input.
var incomeKeywords = []string{
	"recebi",
	"ganhei",
	"salario",
	"pix recebido",
	"venda",
	"reembolso",
}

// Parser parses free-text entries against a category table.
// It is safe for concurrent use.
type Parser struct {
	table *categories.Table
}

// NewParser creates a Parser.
func NewParser(table *categories.Table) *Parser {
	return &Parser{table: table}
}

// Parse never fails: unparseable input yields a nil Amount and the default
// category for the detected direction.
func (p *Parser) Parse(raw string) model.ParsedInput {
	if strings.TrimSpace(raw) == "" {
		return model.ParsedInput{Type: model.TypeExpense}
	}

	var value *decimal.Decimal
	working := strings.TrimSpace(raw)
	if m, ok := amount.Extract(raw); ok && !m.Negative && m.Value.IsPositive() {
		v := m.Value
		value = &v
		working = m.Remainder
	}

	// Direction comes from the original text, not the stripped one.
	isIncome := IsIncome(raw)

	matchOn := working
	if matchOn == "" {
		matchOn = raw
	}
	cat := p.table.Guess(matchOn, isIncome)

	desc := working
	if desc == "" {
		desc = Placeholder
	}

	return model.ParsedInput{
		Amount:          value,
		Description:     desc,
		GuessedCategory: &cat,
		Type:            model.TypeFor(isIncome),
	}
}

// IsIncome reports whether text contains an income keyword.
func IsIncome(text string) bool {
	folded := categories.Fold(text)
	for _, k := range incomeKeywords {
		if strings.Contains(folded, k) {
			return true
		}
	}
	return false
}

// ToTransaction converts a parsed entry into a Transaction. It reports false
// when the entry has no amount and must be corrected by the user.
func ToTransaction(p model.ParsedInput, id string, date time.Time) (model.Transaction, bool) {
	if p.Amount == nil || p.GuessedCategory == nil {
		return model.Transaction{}, false
	}
	return model.Transaction{
		ID:          id,
		Amount:      *p.Amount,
		Description: p.Description,
		CategoryID:  p.GuessedCategory.ID,
		Date:        date.UTC(),
		Type:        p.Type,
	}, true
}

package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// TimestampFormat renders dates as ISO 8601 UTC with millisecond precision,
// e.g. "2026-02-03T12:00:00.000Z".
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// ParseType parses "income" or "expense" (case-insensitive).
func ParseType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	}
	return "", fmt.Errorf("invalid transaction type %q", s)
}

// Valid reports whether t is one of the two known directions.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// TypeFor maps an income flag to a TransactionType.
func TypeFor(isIncome bool) TransactionType {
	if isIncome {
		return TypeIncome
	}
	return TypeExpense
}

// Transaction is a structured income/expense record produced by the free-text
// parser or the statement importer.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal // always non-negative; direction lives in Type
	Description string
	CategoryID  string
	Date        time.Time // UTC
	Type        TransactionType
}

// Timestamp returns the transaction date formatted with TimestampFormat.
func (t Transaction) Timestamp() string {
	return t.Date.UTC().Format(TimestampFormat)
}

// Signed returns the amount with expenses negated.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ParsedInput is the result of parsing one line of free text.
type ParsedInput struct {
	Amount          *decimal.Decimal // nil when no positive amount was found
	Description     string
	GuessedCategory *Category // nil only for empty input
	Type            TransactionType
}

// HasAmount reports whether an amount was extracted.
func (p ParsedInput) HasAmount() bool {
	return p.Amount != nil
}

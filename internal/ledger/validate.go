package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cofrinho-app/cofrinho/internal/id"
	"github.com/cofrinho-app/cofrinho/internal/model"
)

// Rule names a ledger record constraint.
type Rule string

const (
	RuleID       Rule = "id"
	RuleType     Rule = "type"
	RuleAmount   Rule = "amount"
	RuleDecimals Rule = "decimals"
	RuleCategory Rule = "category"
	RuleDate     Rule = "date"
	RuleDesc     Rule = "description"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule        Rule
	ID          string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.ID, e.Description)
}

// ValidationErrors is returned by Append when any record is rejected.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, ve := range v {
		msgs[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// CategoryChecker tests whether a category id exists in the table.
type CategoryChecker interface {
	Exists(id string) bool
}

var hundred = decimal.NewFromInt(100)

// Validate checks every record and returns all violations found.
func Validate(txns []model.Transaction, cats CategoryChecker) []ValidationError {
	var errs []ValidationError
	for _, txn := range txns {
		if err := id.Validate(txn.ID); err != nil {
			errs = append(errs, ValidationError{Rule: RuleID, ID: txn.ID, Description: err.Error()})
		}

		if !txn.Type.Valid() {
			errs = append(errs, ValidationError{
				Rule:        RuleType,
				ID:          txn.ID,
				Description: fmt.Sprintf("unknown type %q", txn.Type),
			})
		}

		if txn.Amount.IsNegative() {
			errs = append(errs, ValidationError{
				Rule:        RuleAmount,
				ID:          txn.ID,
				Description: fmt.Sprintf("amount %s is negative", txn.Amount),
			})
		}

		// Cents are the smallest unit the ledger stores.
		if cents := txn.Amount.Mul(hundred); !cents.Equal(cents.Truncate(0)) {
			errs = append(errs, ValidationError{
				Rule:        RuleDecimals,
				ID:          txn.ID,
				Description: fmt.Sprintf("amount %s has more than 2 decimal places", txn.Amount),
			})
		}

		if !cats.Exists(txn.CategoryID) {
			errs = append(errs, ValidationError{
				Rule:        RuleCategory,
				ID:          txn.ID,
				Description: fmt.Sprintf("unknown category %q", txn.CategoryID),
			})
		}

		if strings.TrimSpace(txn.Description) == "" {
			errs = append(errs, ValidationError{Rule: RuleDesc, ID: txn.ID, Description: "empty description"})
		}

		if txn.Date.IsZero() {
			errs = append(errs, ValidationError{Rule: RuleDate, ID: txn.ID, Description: "missing date"})
		}
	}
	return errs
}

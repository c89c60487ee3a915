package importer

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cofrinho-app/cofrinho/internal/categories"
	"github.com/cofrinho-app/cofrinho/internal/descriptor"
	"github.com/cofrinho-app/cofrinho/internal/id"
	"github.com/cofrinho-app/cofrinho/internal/model"
)

// Row-level failures. They are recorded in a Report, never returned.
var (
	ErrTooFewFields  = errors.New("too few fields")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
)

const (
	nubankMinFields = 4
	nubankColDate   = 0
	nubankColValue  = 1
	nubankColID     = 2
	nubankColDesc   = 3

	// Statement dates carry no time; noon UTC keeps the calendar day stable
	// when rendered in any Brazilian zone.
	statementHour = 12
)

var lineSplitRe = regexp.MustCompile(`\r?\n`)

// RowError describes a skipped statement row.
type RowError struct {
	Line int // 1-based line number in the file
	Raw  string
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Report is the outcome of parsing one statement.
type Report struct {
	Transactions []model.Transaction
	Skipped      []RowError
}

// NubankParser parses account statement exports laid out as
// Data,Valor,Identificador,Descrição (DD/MM/YYYY, signed decimal).
type NubankParser struct {
	table  *categories.Table
	logger zerolog.Logger
	newID  func() string
}

// NewNubankParser creates a parser that categorizes rows with table.
func NewNubankParser(table *categories.Table, logger zerolog.Logger) *NubankParser {
	return &NubankParser{table: table, logger: logger, newID: id.New}
}

// Format returns the parser name.
func (p *NubankParser) Format() string { return "nubank" }

// Parse reads a whole statement. Only read failures are errors; malformed
// rows are dropped.
func (p *NubankParser) Parse(r io.Reader) ([]model.Transaction, error) {
	rep, err := p.ParseReport(r)
	if err != nil {
		return nil, err
	}
	return rep.Transactions, nil
}

// ParseReport is Parse keeping the skipped rows.
func (p *NubankParser) ParseReport(r io.Reader) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("reading nubank CSV: %w", err)
	}
	return p.ParseStatement(string(data)), nil
}

// ParseStatement converts statement text into transactions in file order.
func (p *NubankParser) ParseStatement(contents string) Report {
	contents = strings.TrimPrefix(contents, "\ufeff")
	lines := lineSplitRe.Split(contents, -1)

	start := 0
	if len(lines) > 0 && isHeader(lines[0]) {
		start = 1
	}

	var rep Report
	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		txn, err := p.parseRow(SplitFields(line))
		if err != nil {
			rowErr := RowError{Line: i + 1, Raw: line, Err: err}
			p.logger.Debug().Int("line", rowErr.Line).Err(err).Msg("skipping statement row")
			rep.Skipped = append(rep.Skipped, rowErr)
			continue
		}
		rep.Transactions = append(rep.Transactions, txn)
	}
	return rep
}

func (p *NubankParser) parseRow(fields []string) (model.Transaction, error) {
	if len(fields) < nubankMinFields {
		return model.Transaction{}, fmt.Errorf("%w: got %d, want %d", ErrTooFewFields, len(fields), nubankMinFields)
	}

	date, err := ParseDate(fields[nubankColDate])
	if err != nil {
		return model.Transaction{}, err
	}

	value, err := decimal.NewFromString(fields[nubankColValue])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w %q", ErrInvalidAmount, fields[nubankColValue])
	}
	if !value.Equal(value.Round(2)) {
		return model.Transaction{}, fmt.Errorf("%w %q: more than 2 decimal places", ErrInvalidAmount, fields[nubankColValue])
	}
	isIncome := !value.IsNegative()

	desc := descriptor.Clean(fields[nubankColDesc])
	cat := p.table.Guess(desc, isIncome)

	txnID := fields[nubankColID]
	if txnID == "" {
		txnID = p.newID()
	}

	return model.Transaction{
		ID:          txnID,
		Amount:      value.Abs(),
		Description: desc,
		CategoryID:  cat.ID,
		Date:        date,
		Type:        model.TypeFor(isIncome),
	}, nil
}

// ParseDate parses DD/MM/YYYY into noon UTC of that day.
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 || len(parts[2]) != 4 {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
	}

	var nums [3]int
	for i, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}

	day, month, year := nums[0], time.Month(nums[1]), nums[2]
	t := time.Date(year, month, day, statementHour, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month || t.Year() != year {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
	}
	return t, nil
}

// SplitFields splits a statement line on commas outside double quotes.
// Each quote toggles quoted mode and is dropped; fields are trimmed.
func SplitFields(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(current.String()))
}

func isHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "data") || strings.Contains(lower, "date")
}

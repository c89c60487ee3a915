package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cofrinho-app/cofrinho/internal/model"
)

const (
	ledgerDir  = "ledger"
	ledgerFile = "transactions.csv"
)

// Store persists transactions in <repoRoot>/ledger/transactions.csv.
type Store struct {
	repoRoot   string
	categories CategoryChecker
}

// NewStore creates a ledger Store.
func NewStore(repoRoot string, categories CategoryChecker) *Store {
	return &Store{repoRoot: repoRoot, categories: categories}
}

// AppendResult reports what Append wrote.
type AppendResult struct {
	Added      int
	Duplicates int
}

// Path returns the ledger file location.
func (s *Store) Path() string {
	return filepath.Join(s.repoRoot, ledgerDir, ledgerFile)
}

// All reads every stored transaction in file order.
func (s *Store) All() ([]model.Transaction, error) {
	f, err := os.Open(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", s.Path(), err)
	}
	return txns, nil
}

// Append validates txns and appends those whose id is not stored yet.
// Ids repeated inside txns keep their first occurrence. If any new record
// fails validation nothing is written.
func (s *Store) Append(txns []model.Transaction) (AppendResult, error) {
	fresh, res, err := s.partition(txns)
	if err != nil {
		return AppendResult{}, err
	}
	if len(fresh) == 0 {
		return res, nil
	}

	dir := filepath.Dir(s.Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return AppendResult{}, fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(s.Path()); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(s.Path(), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return AppendResult{}, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return AppendResult{}, fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendTransactions(f, fresh); err != nil {
		return AppendResult{}, fmt.Errorf("appending transactions: %w", err)
	}

	res.Added = len(fresh)
	return res, nil
}

// Preview reports what Append would do without writing anything.
func (s *Store) Preview(txns []model.Transaction) (AppendResult, error) {
	fresh, res, err := s.partition(txns)
	if err != nil {
		return AppendResult{}, err
	}
	res.Added = len(fresh)
	return res, nil
}

// partition drops already stored and repeated ids, then validates the rest.
func (s *Store) partition(txns []model.Transaction) ([]model.Transaction, AppendResult, error) {
	existing, err := s.All()
	if err != nil {
		return nil, AppendResult{}, err
	}

	seen := make(map[string]bool, len(existing)+len(txns))
	for _, txn := range existing {
		seen[txn.ID] = true
	}

	var res AppendResult
	var fresh []model.Transaction
	for _, txn := range txns {
		if seen[txn.ID] {
			res.Duplicates++
			continue
		}
		seen[txn.ID] = true
		fresh = append(fresh, txn)
	}

	if verrs := Validate(fresh, s.categories); len(verrs) > 0 {
		return nil, AppendResult{}, ValidationErrors(verrs)
	}
	return fresh, res, nil
}

// Balance returns stored income minus stored expenses.
func (s *Store) Balance() (decimal.Decimal, error) {
	txns, err := s.All()
	if err != nil {
		return decimal.Zero, err
	}
	return Balance(txns), nil
}

// Recent returns up to n transactions, newest date first. Ties keep the
// later-appended record first.
func (s *Store) Recent(n int) ([]model.Transaction, error) {
	txns, err := s.All()
	if err != nil {
		return nil, err
	}
	return Recent(txns, n), nil
}

// Balance sums txns with expenses negated.
func Balance(txns []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.Signed())
	}
	return total
}

// Recent returns up to n of txns ordered newest first. txns is not modified.
func Recent(txns []model.Transaction, n int) []model.Transaction {
	if n <= 0 || len(txns) == 0 {
		return nil
	}
	out := make([]model.Transaction, len(txns))
	for i, txn := range txns {
		out[len(txns)-1-i] = txn
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

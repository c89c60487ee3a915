package categories

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cofrinho-app/cofrinho/internal/model"
)

// Defaults names the categories used when no keyword matches.
type Defaults struct {
	ExpenseID string
	IncomeID  string
}

// Table is the read-only category registry. It is safe for concurrent use.
type Table struct {
	cats     []model.Category
	byID     map[string]int
	folded   [][]string // folded keywords, parallel to cats
	defaults Defaults
}

const (
	tableDir  = "categories"
	tableFile = "categories.csv"
)

// NewTable builds a Table. Ids must be unique and both defaults must exist.
func NewTable(cats []model.Category, defaults Defaults) (*Table, error) {
	t := &Table{
		cats:     make([]model.Category, len(cats)),
		byID:     make(map[string]int, len(cats)),
		folded:   make([][]string, len(cats)),
		defaults: defaults,
	}
	for i, c := range cats {
		if c.ID == "" {
			return nil, fmt.Errorf("category %d has empty id", i)
		}
		if _, dup := t.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %q", c.ID)
		}
		c.Keywords = append([]string(nil), c.Keywords...)
		t.cats[i] = c
		t.byID[c.ID] = i
		for _, k := range c.Keywords {
			if f := Fold(k); f != "" {
				t.folded[i] = append(t.folded[i], f)
			}
		}
	}
	if _, ok := t.byID[defaults.ExpenseID]; !ok {
		return nil, fmt.Errorf("expense default category %q not in table", defaults.ExpenseID)
	}
	if _, ok := t.byID[defaults.IncomeID]; !ok {
		return nil, fmt.Errorf("income default category %q not in table", defaults.IncomeID)
	}
	return t, nil
}

// Default returns the built-in table.
func Default() *Table {
	t, err := NewTable(DefaultCategories(), DefaultDefaults())
	if err != nil {
		panic("invalid built-in category table: " + err.Error())
	}
	return t
}

// Load reads categories/categories.csv from a repo root. A missing file
// yields the built-in table with the given defaults.
func Load(repoRoot string, defaults Defaults) (*Table, error) {
	path := filepath.Join(repoRoot, tableDir, tableFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewTable(DefaultCategories(), defaults)
	}
	if err != nil {
		return nil, fmt.Errorf("opening category table: %w", err)
	}
	defer f.Close()

	cats, err := ReadCategories(f)
	if err != nil {
		return nil, fmt.Errorf("reading category table: %w", err)
	}
	return NewTable(cats, defaults)
}

// Save writes the table to categories/categories.csv.
func (t *Table) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, tableDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating categories dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, tableFile))
	if err != nil {
		return fmt.Errorf("creating category table file: %w", err)
	}
	defer f.Close()

	if err := WriteCategories(f, t.cats); err != nil {
		return fmt.Errorf("writing category table: %w", err)
	}
	return nil
}

// All returns the categories in declaration order.
func (t *Table) All() []model.Category {
	out := make([]model.Category, len(t.cats))
	copy(out, t.cats)
	return out
}

// Get returns a category by id.
func (t *Table) Get(id string) (model.Category, bool) {
	i, ok := t.byID[id]
	if !ok {
		return model.Category{}, false
	}
	return t.cats[i], true
}

// Exists reports whether a category id exists.
func (t *Table) Exists(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// DefaultFor returns the fallback category for a direction.
func (t *Table) DefaultFor(isIncome bool) model.Category {
	if isIncome {
		return t.cats[t.byID[t.defaults.IncomeID]]
	}
	return t.cats[t.byID[t.defaults.ExpenseID]]
}

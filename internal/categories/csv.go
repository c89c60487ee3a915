package categories

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cofrinho-app/cofrinho/internal/model"
)

// Header is the CSV header for categories.csv.
const Header = "id,name,icon,text_color,bg_color,keywords"

const (
	numFields   = 6
	colID       = 0
	colName     = 1
	colIcon     = 2
	colText     = 3
	colBg       = 4
	colKeywords = 5

	keywordSep = ";"
)

// ReadCategories reads categories.csv, preserving row order.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var cats []model.Category
	for i, rec := range records[1:] {
		cat, err := UnmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// WriteCategories writes categories.csv (including header).
func WriteCategories(w io.Writer, cats []model.Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, cat := range cats {
		if err := cw.Write(MarshalCategory(cat)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalCategory converts a Category to a CSV row.
func MarshalCategory(cat model.Category) []string {
	row := make([]string, numFields)
	row[colID] = cat.ID
	row[colName] = cat.Name
	row[colIcon] = cat.Icon
	row[colText] = cat.Style.Text
	row[colBg] = cat.Style.Background
	row[colKeywords] = strings.Join(cat.Keywords, keywordSep)
	return row
}

// UnmarshalCategory converts a CSV row to a Category.
func UnmarshalCategory(record []string) (model.Category, error) {
	if len(record) != numFields {
		return model.Category{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id := strings.TrimSpace(record[colID])
	if id == "" {
		return model.Category{}, fmt.Errorf("empty category id")
	}

	var keywords []string
	for _, k := range strings.Split(record[colKeywords], keywordSep) {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}

	return model.Category{
		ID:   id,
		Name: record[colName],
		Icon: record[colIcon],
		Style: model.Style{
			Text:       record[colText],
			Background: record[colBg],
		},
		Keywords: keywords,
	}, nil
}

package model

// Style is the presentation pair for a category. Both classes are stored
// explicitly; neither is derived from the other.
type Style struct {
	Text       string // e.g. "text-orange-400"
	Background string // e.g. "bg-orange-400"
}

// Category is a labeled bucket with keyword triggers used for
// auto-classification. Categories are immutable once loaded.
type Category struct {
	ID       string
	Name     string
	Icon     string
	Style    Style
	Keywords []string
}

// IsZero reports whether c is the zero Category.
func (c Category) IsZero() bool {
	return c.ID == ""
}

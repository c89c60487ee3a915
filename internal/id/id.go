package id

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ErrEmpty is returned for blank identifiers.
var ErrEmpty = errors.New("empty id")

// New returns a fresh random transaction id.
func New() string {
	return uuid.NewString()
}

// IsGenerated reports whether s looks like an id produced by New.
func IsGenerated(s string) bool {
	u, err := uuid.Parse(s)
	return err == nil && u.Version() == 4 && u.String() == s
}

// Validate checks that s can be stored as a ledger id: non-blank, no
// surrounding whitespace, no control characters.
func Validate(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmpty
	}
	if strings.TrimSpace(s) != s {
		return fmt.Errorf("id %q has surrounding whitespace", s)
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return fmt.Errorf("id %q contains control characters", s)
	}
	return nil
}

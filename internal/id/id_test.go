package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		got := New()
		assert.NoError(t, Validate(got))
		assert.True(t, IsGenerated(got), "IsGenerated(%q)", got)
		assert.False(t, seen[got], "duplicate id %q", got)
		seen[got] = true
	}
}

func TestIsGenerated(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"6a1b2c3d-0001", false},
		{"", false},
		{"00000000-0000-0000-0000-000000000000", false},
		{"{" + New() + "}", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsGenerated(tt.input), "IsGenerated(%q)", tt.input)
	}
}

func TestValidate(t *testing.T) {
	good := []string{"abc", "6a1b2c3d-0001", "63f7c2a1-1b2c-4d5e-8f90-a1b2c3d4e5f6"}
	for _, input := range good {
		assert.NoError(t, Validate(input), "Validate(%q)", input)
	}

	assert.ErrorIs(t, Validate(""), ErrEmpty)
	assert.ErrorIs(t, Validate("   "), ErrEmpty)

	bad := []string{" abc", "abc\n", "a\tb"}
	for _, input := range bad {
		assert.Error(t, Validate(input), "expected error for input: %q", input)
	}
}

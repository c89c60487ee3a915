package importer

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cofrinho-app/cofrinho/internal/categories"
	"github.com/cofrinho-app/cofrinho/internal/model"
)

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(NewNubankParser(categories.Default(), zerolog.Nop()))
	p := r.Get("nubank")
	require.NotNil(t, p)
	assert.Equal(t, "nubank", p.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(NewNubankParser(categories.Default(), zerolog.Nop()))
	assert.NotNil(t, r.Get("Nubank"))
	assert.NotNil(t, r.Get("NUBANK"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(NewNubankParser(categories.Default(), zerolog.Nop()))
	assert.Panics(t, func() {
		r.Register(NewNubankParser(categories.Default(), zerolog.Nop()))
	})
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry(categories.Default(), zerolog.Nop())
	assert.NotNil(t, r.Get("nubank"))
	assert.Equal(t, []string{"nubank"}, r.Formats())
}

func TestParseFile(t *testing.T) {
	p := NewNubankParser(categories.Default(), zerolog.Nop())
	rep, err := ParseFile(p, "testdata/nubank.csv")
	require.NoError(t, err)
	assert.Len(t, rep.Transactions, 6)
	assert.Len(t, rep.Skipped, 3)
}

type plainParser struct{}

func (plainParser) Format() string { return "plain" }

func (plainParser) Parse(io.Reader) ([]model.Transaction, error) {
	return []model.Transaction{{ID: "x"}}, nil
}

func TestParseFile_PlainParser(t *testing.T) {
	rep, err := ParseFile(plainParser{}, "testdata/nubank.csv")
	require.NoError(t, err)
	assert.Len(t, rep.Transactions, 1)
	assert.Empty(t, rep.Skipped)
}

func TestParseFile_Missing(t *testing.T) {
	p := NewNubankParser(categories.Default(), zerolog.Nop())
	rep, err := ParseFile(p, filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing.csv")
	assert.Empty(t, rep.Transactions)
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "extrato.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "FATURA.CSV"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "notas.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "FATURA.CSV", files[0].Name)
	assert.Equal(t, "extrato.csv", files[1].Name)
	assert.Equal(t, int64(4), files[1].Size)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "extrato.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "extrato.csv")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(importDir, "extrato.csv"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(filepath.Join(dir, "import", "processed", "extrato.csv"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestMarkProcessed_MissingFile(t *testing.T) {
	err := MarkProcessed(t.TempDir(), "nope.csv")
	assert.Error(t, err)
}

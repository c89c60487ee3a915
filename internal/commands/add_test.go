package commands_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_Expense(t *testing.T) {
	dir := newProject(t)
	out, err := runCofrinho(t, "add", "almoço 35,90", "--repo", dir, "--date", "2026-02-03")
	require.NoError(t, err, out)
	assert.Contains(t, out, "added expense R$ 35,90 [Alimentação] almoço")

	rows := ledgerRows(t, dir)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], ",2026-02-03T12:00:00.000Z,expense,35.90,1,almoço")
}

func TestAdd_Income(t *testing.T) {
	dir := newProject(t)
	out, err := runCofrinho(t, "add", "recebi", "salario", "5000", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "added income R$ 5.000,00 [Renda] recebi salario")
}

func TestAdd_NoAmount(t *testing.T) {
	dir := newProject(t)
	out, err := runCofrinho(t, "add", "padaria", "--repo", dir)
	require.Error(t, err)
	assert.Contains(t, out, "informe um valor")
	assert.Empty(t, ledgerRows(t, dir))
}

func TestAdd_BadDate(t *testing.T) {
	dir := newProject(t)
	out, err := runCofrinho(t, "add", "uber 20", "--repo", dir, "--date", "03/02/2026")
	require.Error(t, err)
	assert.Contains(t, out, "invalid --date")
}

func TestList(t *testing.T) {
	dir := newProject(t)
	_, err := runCofrinho(t, "add", "almoço 35,90", "--repo", dir, "--date", "2026-02-03")
	require.NoError(t, err)
	_, err = runCofrinho(t, "add", "recebi pix 100", "--repo", dir, "--date", "2026-02-04")
	require.NoError(t, err)

	out, err := runCofrinho(t, "list", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "03/02/2026")
	assert.Contains(t, out, "-R$ 35,90")
	assert.Contains(t, out, "R$ 100,00")
	assert.Contains(t, out, "Saldo: R$ 64,10")
	assert.Less(t, strings.Index(out, "04/02/2026"), strings.Index(out, "03/02/2026"), "newest first")
}

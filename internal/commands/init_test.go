package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cofrinho-app/cofrinho/internal/categories"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "cofrinho-test-*")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(tmpDir, "cofrinho")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/cofrinho")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(tmpDir)
		panic("failed to build binary: " + err.Error())
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func runCofrinho(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Env = testEnv()
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// testEnv is the process environment without text-generation credentials.
func testEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "GEMINI_API_KEY=") || strings.HasPrefix(kv, "GOOGLE_API_KEY=") {
			continue
		}
		env = append(env, kv)
	}
	return env
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// newProject initializes a project without git and returns its directory.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runCofrinho(t, "init", dir, "--name", "Ana", "--no-git")
	require.NoError(t, err, out)
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := newProject(t)

	expectedDirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"ledger",
		"categories",
		"logs",
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_Config(t *testing.T) {
	dir := newProject(t)

	data, err := os.ReadFile(filepath.Join(dir, "cofrinho.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Ana")
	assert.Contains(t, contents, "currency: BRL")
	assert.Contains(t, contents, "format: nubank")
	assert.Contains(t, contents, "auto_commit: false")
}

func TestInit_Categories(t *testing.T) {
	dir := newProject(t)

	f, err := os.Open(filepath.Join(dir, "categories", "categories.csv"))
	require.NoError(t, err)
	defer f.Close()

	cats, err := categories.ReadCategories(f)
	require.NoError(t, err)
	assert.Len(t, cats, 8)
	assert.Equal(t, "Alimentação", cats[0].Name)
}

func TestInit_Gitignore(t *testing.T) {
	dir := newProject(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".env")
}

func TestInit_GitRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	out, err := runCofrinho(t, "init", dir, "--name", "Ana")
	require.NoError(t, err, out)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	logOut, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(logOut), "init: Initialize cofrinho for Ana")

	authorLog := exec.Command("git", "log", "--format=%an <%ae>", "-1")
	authorLog.Dir = dir
	logOut, err = authorLog.Output()
	require.NoError(t, err)
	assert.Contains(t, string(logOut), "Cofrinho <cofrinho@localhost>")
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runCofrinho(t, "init", t.TempDir(), "--no-git")
	require.Error(t, err, "init without --name should fail")
}

func TestInit_RefusesExistingProject(t *testing.T) {
	dir := newProject(t)
	out, err := runCofrinho(t, "init", dir, "--name", "Bia", "--no-git")
	require.Error(t, err)
	assert.Contains(t, out, "already exists")
}

func TestVersion(t *testing.T) {
	out, err := runCofrinho(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev (commit: none")
}

func TestInvalidLogLevel(t *testing.T) {
	out, err := runCofrinho(t, "clean", "x", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, out, "invalid log level")
}

package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiala-nvumbi/DINK1/internal/accounts"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "dink-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "dink")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/dink")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runDink(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runDinkEnv(t, nil, args...)
}

func runDinkEnv(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_CreatesWorkspace(t *testing.T) {
	dir := t.TempDir()
	out, err := runDink(t, "init", dir, "--name", "Test Biz")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Initialized DINK workspace")

	for _, f := range []string{"dink.yaml", "tenants.yaml", ".gitignore", filepath.Join("companies", "default", "accounts.csv")} {
		_, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "%s should exist", f)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runDink(t, "init", dir, "--name", "My Company")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "dink.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: My Company")
	assert.Contains(t, contents, "backend: csv")
	assert.Contains(t, contents, "currency: AOA")
}

func TestOpenWorkspace_BadLogLevel(t *testing.T) {
	dir := newWorkspace(t)
	path := filepath.Join(dir, "dink.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "level: info")
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(string(data), "level: info", "level: loud", 1)), 0o644))

	out, err := dink(t, dir, "entry", "list")
	require.Error(t, err)
	assert.Contains(t, out, `invalid log level "loud"`)
}

func TestOpenWorkspace_CorruptTenants(t *testing.T) {
	dir := newWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tenants.yaml"), []byte("profiles: [unclosed"), 0o644))

	out, err := dink(t, dir, "entry", "list")
	require.Error(t, err)
	assert.Contains(t, out, "parsing tenants")
}

func TestInit_Tenants(t *testing.T) {
	dir := t.TempDir()
	_, err := runDink(t, "init", dir, "--name", "Test Biz")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "tenants.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Empresa Exemplo Lda")
	assert.Contains(t, string(data), "admin_dink")
}

func TestInit_Accounts(t *testing.T) {
	dir := t.TempDir()
	_, err := runDink(t, "init", dir, "--name", "Test Biz")
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "companies", "default", "accounts.csv"))
	require.NoError(t, err)
	defer f.Close()

	accts, err := accounts.ReadAccounts(f)
	require.NoError(t, err)
	assert.Len(t, accts, len(accounts.DefaultChart()))
}

func TestInit_GitRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := runDink(t, "init", dir, "--name", "Test Biz")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	log := exec.Command("git", "log", "--format=%s|%an <%ae>", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "init: Initialize Test Biz|DINK <ledger@dink.ao>")
}

func TestInit_RequiresName(t *testing.T) {
	dir := t.TempDir()
	_, err := runDink(t, "init", dir)
	require.Error(t, err, "init without --name should fail")
}

func TestInit_Twice(t *testing.T) {
	dir := t.TempDir()
	_, err := runDink(t, "init", dir, "--name", "Test Biz")
	require.NoError(t, err)

	out, err := runDink(t, "init", dir, "--name", "Again")
	require.Error(t, err)
	assert.Contains(t, out, "already a DINK workspace")
}

func TestInit_SQLite(t *testing.T) {
	dir := t.TempDir()
	out, err := runDink(t, "init", dir, "--name", "Test Biz", "--backend", "sqlite")
	require.NoError(t, err, out)

	_, err = os.Stat(filepath.Join(dir, "dink.db"))
	require.NoError(t, err)

	out, err = runDink(t, "account", "list", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Meios monetários")
}

func TestInit_UnknownBackend(t *testing.T) {
	_, err := runDink(t, "init", t.TempDir(), "--name", "Test Biz", "--backend", "postgres")
	require.Error(t, err)
}

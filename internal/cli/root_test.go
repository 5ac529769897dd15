package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scerpa/scerpa-config/internal/domain"
	"github.com/scerpa/scerpa-config/internal/record"
	"github.com/scerpa/scerpa-config/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv isolates settings lookup and keeps logs off the working directory
func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SCERPA_CONFIG_LOGGING_OUTPUT", "stderr")
	t.Setenv("SCERPA_CONFIG_LOGGING_LEVEL", "error")
	return t.TempDir()
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommandTree(t *testing.T) {
	cmd := NewRootCommand()

	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"edit", "show", "init", "settings", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "file", "log-level", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestInitWritesDefaults(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "scerpa_config.yaml")

	out, _, err := run(t, "init", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default configuration to "+path)

	loaded, err := store.NewFileStore(domain.StoreConfig{Path: path}, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, record.New(), loaded)
}

func TestInitRefusesExistingFile(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "scerpa_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("molecule:\n  name: water\n"), 0644))

	_, _, err := run(t, "init", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --force")

	_, _, err = run(t, "init", "--file", path, "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: bisfe_4")
}

func TestShowDefaults(t *testing.T) {
	dir := setupEnv(t)

	out, _, err := run(t, "show", "--file", filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# defaults\n"))
	assert.Contains(t, out, "name: bisfe_4")
	assert.Contains(t, out, "verbosity: 2")
}

func TestShowSavedRecordAsJSON(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "scerpa_config.yaml")

	r, err := record.UpdateField(record.New(), domain.SectionMolecule, "name", "water")
	require.NoError(t, err)
	require.NoError(t, store.NewFileStore(domain.StoreConfig{Path: path, Overwrite: true}, nil).Save(context.Background(), r))

	out, errOut, err := run(t, "show", "--file", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, errOut, path)

	var decoded domain.Record
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "water", decoded.Molecule.Name)
	assert.Equal(t, 10.0, decoded.Molecule.IntermolecularDistance)
}

func TestShowRejectsUnknownFormat(t *testing.T) {
	dir := setupEnv(t)

	_, _, err := run(t, "show", "--file", filepath.Join(dir, "x.yaml"), "--format", "toml")
	assert.Error(t, err)
}

func TestInvalidLogLevelFlag(t *testing.T) {
	dir := setupEnv(t)

	_, _, err := run(t, "show", "--file", filepath.Join(dir, "x.yaml"), "--log-level", "loud")
	assert.Error(t, err)
}

func TestSettingsFile(t *testing.T) {
	dir := setupEnv(t)
	recordPath := filepath.Join(dir, "from-settings.json")
	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("store:\n  path: "+recordPath+"\n"), 0644))

	_, _, err := run(t, "init", "--config", settings)
	require.NoError(t, err)

	data, err := os.ReadFile(recordPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "bisfe_4"`)
}

func TestVersionCommand(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "scerpa-config")
	assert.Contains(t, out, "Go Version")

	out, _, err = run(t, "version", "--short")
	require.NoError(t, err)
	assert.NotContains(t, out, "Go Version")

	out, _, err = run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "scerpa-config version")
}

func TestBadSettingsFileIsConfigError(t *testing.T) {
	setupEnv(t)

	_, _, err := run(t, "show", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	var cfgErr *domain.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, domain.ErrorTypeConfiguration, cfgErr.Type)
}

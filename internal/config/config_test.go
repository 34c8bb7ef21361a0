package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envConfig, envDB, envLogUseCases, envWindowMonths, envDefaultCapacity} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()

	cfg, err := LoadFile(home, filepath.Join(home, "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(home), cfg)
	assert.Equal(t, filepath.Join(home, ".solplan", "solplan.db"), cfg.DBPath)
	assert.Equal(t, 36, cfg.WindowMonths)
	assert.Equal(t, 500.0, cfg.DefaultCapacity)
}

func TestLoadFile_YAMLOverridesDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	path := writeFile(t, home, "db_path: /tmp/sites.db\nlog_use_cases: true\nwindow_months: 48\n")

	cfg, err := LoadFile(home, path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sites.db", cfg.DBPath)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, 48, cfg.WindowMonths)
	assert.Equal(t, 500.0, cfg.DefaultCapacity)
}

func TestLoadFile_EmptyFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()

	cfg, err := LoadFile(home, writeFile(t, home, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(home), cfg)
}

func TestLoadFile_UnknownKeyRejected(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()

	_, err := LoadFile(home, writeFile(t, home, "colour: blue\n"))
	assert.Error(t, err)
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	path := writeFile(t, home, "window_months: 48\ndefault_capacity_kwc: 250\n")

	t.Setenv(envDB, "/var/lib/solplan.db")
	t.Setenv(envWindowMonths, "24")
	t.Setenv(envLogUseCases, "1")

	cfg, err := LoadFile(home, path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/solplan.db", cfg.DBPath)
	assert.Equal(t, 24, cfg.WindowMonths)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, 250.0, cfg.DefaultCapacity)
}

func TestLoadFile_InvalidEnvIgnored(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()

	t.Setenv(envWindowMonths, "-3")
	t.Setenv(envDefaultCapacity, "lots")
	t.Setenv(envLogUseCases, "maybe")

	cfg, err := LoadFile(home, filepath.Join(home, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(home), cfg)
}

func TestLoadFile_NonPositiveFileValuesFallBack(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()

	cfg, err := LoadFile(home, writeFile(t, home, "window_months: 0\ndefault_capacity_kwc: -10\n"))
	require.NoError(t, err)
	assert.Equal(t, 36, cfg.WindowMonths)
	assert.Equal(t, 500.0, cfg.DefaultCapacity)
}

func TestLoad_ConfigEnvSelectsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(envConfig, writeFile(t, dir, "window_months: 12\n"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.WindowMonths)
}

package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"bmi-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cleanEnv clears the variables resolveConfig reads, including the ones that
// locate the user's config directory.
func cleanEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)
	t.Setenv(config.EnvHistoryFile, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvDebug, "")
}

func TestResolveConfigWithoutConfigFlag(t *testing.T) {
	cleanEnv(t)

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--history", "flag.csv"}))

	cfg, err := resolveConfig(cmd, rootFlags{historyFile: "flag.csv"})
	require.NoError(t, err)
	assert.Equal(t, "flag.csv", cfg.HistoryFile)
	assert.Equal(t, config.Default().LogLevel, cfg.LogLevel)
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	cleanEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_file: file.csv\nlog_level: warn\n"), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--history", "flag.csv"}))

	var flags rootFlags
	flags.configPath, _ = cmd.Flags().GetString("config")
	flags.historyFile, _ = cmd.Flags().GetString("history")

	cfg, err := resolveConfig(cmd, flags)
	require.NoError(t, err)
	assert.Equal(t, "flag.csv", cfg.HistoryFile)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestResolveConfigDebugAndLevel(t *testing.T) {
	cleanEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--debug"}))
	cfg, err := resolveConfig(cmd, rootFlags{configPath: path, debug: true})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	cmd = newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--log-level", "shout"}))
	_, err = resolveConfig(cmd, rootFlags{configPath: path, logLevel: "shout"})
	assert.Error(t, err)
}

func TestRootCommandRejectsArguments(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.Error(t, cmd.Execute())
}

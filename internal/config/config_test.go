package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mender.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, ".mender/backups", cfg.Backups.Dir)
	assert.Equal(t, ".mender/reports", cfg.Reports.Dir)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, ".mender/audit.db", cfg.Audit.Path)
	assert.Equal(t, ValidatorTreeSitter, cfg.Validator.Kind)
	assert.Equal(t, "php", cfg.Validator.Language)
	assert.Equal(t, []string{"-l"}, cfg.Validator.Args)
	assert.Equal(t, 1, cfg.Engine.Parallel)
	assert.Equal(t, []string{".php"}, cfg.Engine.Extensions)
	assert.Empty(t, cfg.Classifier.Rules)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
root: app
backups:
  dir: /var/backups/app
validator:
  kind: command
  command: php
  args: ["-n", "-l"]
engine:
  parallel: 4
symbols:
  file: symbols.toml
  entries:
    - old: App\Old\Thing
      new: App\New\Thing
    - old: App\Legacy
      new: App\Modern
classifier:
  rules:
    - pattern: "^Method .+ is unused"
      category: unused_methods
      priority: LOW
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "app", cfg.Root)
	assert.Equal(t, "/var/backups/app", cfg.Backups.Dir)
	assert.Equal(t, ".mender/reports", cfg.Reports.Dir)
	assert.Equal(t, ValidatorCommand, cfg.Validator.Kind)
	assert.Equal(t, []string{"-n", "-l"}, cfg.Validator.Args)
	assert.Equal(t, 4, cfg.Engine.Parallel)
	assert.Equal(t, "symbols.toml", cfg.Symbols.File)
	assert.Equal(t, []SymbolEntry{
		{Old: `App\Old\Thing`, New: `App\New\Thing`},
		{Old: `App\Legacy`, New: `App\Modern`},
	}, cfg.Symbols.Entries)
	require.Len(t, cfg.Classifier.Rules, 1)
	assert.Equal(t, "unused_methods", cfg.Classifier.Rules[0].Category)
	assert.Empty(t, cfg.Classifier.Rules[0].Strategy)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "reports:\n  dir: from-file\n")
	t.Setenv("MENDER_REPORTS_DIR", "from-env")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Reports.Dir)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))

	assert.ErrorContains(t, err, "read config")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "unknown validator", content: "validator:\n  kind: magic\n", field: "validator.kind"},
		{name: "command without binary", content: "validator:\n  kind: command\n  command: \"\"\n", field: "validator.command"},
		{name: "zero workers", content: "engine:\n  parallel: 0\n", field: "engine.parallel"},
		{name: "empty pattern", content: "classifier:\n  rules:\n    - category: x\n", field: "classifier.rules[0].pattern"},
		{name: "empty symbol", content: "symbols:\n  entries:\n    - new: X\n", field: "symbols.entries[0].old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(viper.New(), writeConfig(t, tt.content))

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

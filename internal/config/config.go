// Package config loads mender settings from .mender.yaml, MENDER_* environment
// variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Validator kinds.
const (
	ValidatorTreeSitter = "treesitter"
	ValidatorCommand    = "command"
)

// EnvPrefix is the prefix of environment overrides, e.g. MENDER_BACKUPS_DIR.
const EnvPrefix = "MENDER"

// Config is the resolved configuration for one invocation.
type Config struct {
	Root       string           `mapstructure:"root"`
	Backups    BackupsConfig    `mapstructure:"backups"`
	Reports    ReportsConfig    `mapstructure:"reports"`
	Audit      AuditConfig      `mapstructure:"audit"`
	Validator  ValidatorConfig  `mapstructure:"validator"`
	Engine     EngineConfig     `mapstructure:"engine"`
	Symbols    SymbolsConfig    `mapstructure:"symbols"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
}

// BackupsConfig locates the snapshot store.
type BackupsConfig struct {
	Dir string `mapstructure:"dir"`
}

// ReportsConfig locates persisted run reports.
type ReportsConfig struct {
	Dir string `mapstructure:"dir"`
}

// AuditConfig controls the SQLite run history.
type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ValidatorConfig selects the syntax checker.
type ValidatorConfig struct {
	Kind     string   `mapstructure:"kind"`
	Language string   `mapstructure:"language"`
	Command  string   `mapstructure:"command"`
	Args     []string `mapstructure:"args"`
}

// EngineConfig tunes file processing.
type EngineConfig struct {
	Parallel   int      `mapstructure:"parallel"`
	Extensions []string `mapstructure:"extensions"`
}

// SymbolsConfig holds a symbol map file and/or inline entries.
type SymbolsConfig struct {
	File    string        `mapstructure:"file"`
	Entries []SymbolEntry `mapstructure:"entries"`
}

// SymbolEntry is one inline rename.
type SymbolEntry struct {
	Old string `mapstructure:"old"`
	New string `mapstructure:"new"`
}

// ClassifierConfig replaces the built-in classification table when Rules is set.
type ClassifierConfig struct {
	Rules []ClassRule `mapstructure:"rules"`
}

// ClassRule is one ordered row of the classification table.
type ClassRule struct {
	Pattern  string `mapstructure:"pattern"`
	Category string `mapstructure:"category"`
	Priority string `mapstructure:"priority"`
	Strategy string `mapstructure:"strategy"`
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("root", ".")
	v.SetDefault("backups.dir", ".mender/backups")
	v.SetDefault("reports.dir", ".mender/reports")
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.path", ".mender/audit.db")
	v.SetDefault("validator.kind", ValidatorTreeSitter)
	v.SetDefault("validator.language", "php")
	v.SetDefault("validator.command", "php")
	v.SetDefault("validator.args", []string{"-l"})
	v.SetDefault("engine.parallel", 1)
	v.SetDefault("engine.extensions", []string{".php"})
}

// Load reads configuration into a Config. An explicit file must exist; the
// implicit .mender.yaml in the working directory is optional.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".mender")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for values the workflow cannot use.
func (c *Config) Validate() error {
	switch c.Validator.Kind {
	case ValidatorTreeSitter:
	case ValidatorCommand:
		if c.Validator.Command == "" {
			return &ConfigError{Field: "validator.command", Message: "required when validator.kind is command"}
		}
	default:
		return &ConfigError{Field: "validator.kind", Message: fmt.Sprintf("unknown validator %q", c.Validator.Kind)}
	}

	if c.Engine.Parallel < 1 {
		return &ConfigError{Field: "engine.parallel", Message: "must be at least 1"}
	}

	for i, rule := range c.Classifier.Rules {
		if rule.Pattern == "" {
			return &ConfigError{Field: fmt.Sprintf("classifier.rules[%d].pattern", i), Message: "must not be empty"}
		}
	}

	for i, entry := range c.Symbols.Entries {
		if entry.Old == "" {
			return &ConfigError{Field: fmt.Sprintf("symbols.entries[%d].old", i), Message: "must not be empty"}
		}
	}

	return nil
}

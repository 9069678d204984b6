package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonpick/internal/navigator"
	"github.com/mcncl/jsonpick/internal/serializer"
)

// Config represents the complete configuration for jsonpick
type Config struct {
	Query      string           `yaml:"query"`
	Output     OutputConfig     `yaml:"output"`
	Navigation NavigationConfig `yaml:"navigation"`
	Dev        DevConfig        `yaml:"dev"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	// Mode is "minified" or "expanded".
	Mode string `yaml:"mode"`
}

// NavigationConfig controls path resolution behavior
type NavigationConfig struct {
	// Missing is "error" (typed failure, the default) or "null"
	// (jq-style: a missing path yields JSON null).
	Missing string `yaml:"missing"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Query: "",
		Output: OutputConfig{
			Mode: "minified",
		},
		Navigation: NavigationConfig{
			Missing: "error",
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Fail fast on bad enum tokens rather than at first use
	if _, err := cfg.OutputMode(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.MissingPolicy(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonpick.yml", ".jsonpick.yaml", "jsonpick.yml", "jsonpick.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// normalizeToken folds case and word-separator style so config and CLI
// values like "Expanded", "EXPANDED" and "expanded" all compare equal.
func normalizeToken(token string) string {
	return strcase.ToSnake(token)
}

// OutputMode resolves the configured output mode token
func (c *Config) OutputMode() (serializer.Mode, error) {
	return serializer.ParseMode(normalizeToken(c.Output.Mode))
}

// MissingPolicy resolves the configured missing-path policy token
func (c *Config) MissingPolicy() (navigator.MissingPolicy, error) {
	switch normalizeToken(c.Navigation.Missing) {
	case "error":
		return navigator.MissingError, nil
	case "null", "nil":
		return navigator.MissingNull, nil
	default:
		return navigator.MissingError, fmt.Errorf("unknown missing-path policy %q (want \"error\" or \"null\")", c.Navigation.Missing)
	}
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// CLI values override file values only when actually given, so a
// config file still applies when flags are left unset. The query
// override is presence-aware (nil means the flag was absent): an
// explicit empty query selects identity navigation even when the
// config file names a path, which a plain "" sentinel could not
// express.
func LoadConfigWithCLI(configPath string, cliQuery *string, cliMode, cliMissing string) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliQuery != nil {
		cfg.Query = *cliQuery
	}
	if cliMode != "" {
		cfg.Output.Mode = cliMode
	}
	if cliMissing != "" {
		cfg.Navigation.Missing = cliMissing
	}

	return cfg, nil
}

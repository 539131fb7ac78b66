package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thruflo/stepviz/internal/logging"
	"github.com/thruflo/stepviz/internal/scan"
)

// DefaultFileName is looked up in the working directory when no path is given.
const DefaultFileName = "stepviz.yaml"

// Default values for Config.
const (
	DefaultDelayMS   = 300
	DefaultAlgorithm = "kadane"
	DefaultLogLevel  = "warn"
)

// DefaultValues returns the default scan input.
func DefaultValues() []int {
	return []int{4, -1, 2, 1, -5, 4}
}

// DefaultHeapValues returns the default initial heap content.
func DefaultHeapValues() []int {
	return []int{10, 20, 15, 30, 40}
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		DelayMS:   DefaultDelayMS,
		Algorithm: DefaultAlgorithm,
		Values:    DefaultValues(),
		Heap:      Heap{Initial: DefaultHeapValues()},
		Log:       Logging{Level: DefaultLogLevel},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// LoadConfig reads and parses the config file at path. An empty path means
// DefaultFileName in the current directory. If the file doesn't exist,
// returns default config. Applies defaults for any missing fields.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.DelayMS < 0 {
		return ValidationError{Field: "delay_ms", Message: "must not be negative"}
	}
	if len(cfg.Values) == 0 {
		return ValidationError{Field: "values", Message: "must not be empty"}
	}
	if _, err := scan.Lookup(cfg.Algorithm); err != nil {
		return ValidationError{Field: "algorithm", Message: err.Error()}
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: err.Error()}
	}
	return nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/thruflo/stepviz/internal/config"
	"github.com/thruflo/stepviz/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "stepviz",
	Short: "Step through single-pass array scans and a min-heap",
	Long: `stepviz animates single-pass algorithms over an integer array one index
at a time. Each step colours the array cells, pauses, and can be cancelled
or restarted at any point. A min-heap session shows the array and tree
layout after every operation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("stepviz version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultFileName+" when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file and applies --log-level to it and to the
// package logger. An explicit --config path must exist.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logging.SetLevel(level)

	return cfg, nil
}

// parseValues reads integers separated by commas and/or whitespace.
func parseValues(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no values given")
	}

	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: not an integer", f)
		}
		values[i] = v
	}
	return values, nil
}

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"xbrlcore/internal/config"
	"xbrlcore/internal/logging"
	"xbrlcore/internal/manifest"
)

// version can be overridden at build time:
// go build -ldflags "-X main.version=1.0.0"
var version = "0.2.2"

var (
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
	// logFormatFlag is the CLI --log-format flag value
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "xbrl",
	Short: "xbrl - XBRL taxonomy and instance engine",
	Long: `xbrl loads discoverable taxonomy sets (DTS) from XBRL 2.1 schemas and
linkbases, inspects their presentation, label, definition and calculation
networks, and validates instance documents against them.`,
	Version: version,
}

func init() {
	rootCmd.SetVersionTemplate("xbrl version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (default: from config)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human, json (default: from config)")
}

// loadConfig reads .xbrl/config.json relative to the working directory.
func loadConfig() *config.Config {
	wd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(wd)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// buildLogger resolves logger settings. Precedence: CLI flags > config.
func buildLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	return logging.NewLogger(logging.Config{
		Level:  logging.ParseLevel(level),
		Format: logging.ParseFormat(format),
		Output: os.Stderr,
	})
}

// resolveSchemaPath resolves a CLI argument to a schema file: either a path
// to an .xsd file or the name of a taxonomy declared in TAXONOMIES.toml.
func resolveSchemaPath(arg string) string {
	if filepath.Ext(arg) != "" {
		return arg
	}
	wd, err := os.Getwd()
	if err != nil {
		return arg
	}
	m, err := manifest.Load(wd)
	if err != nil || m == nil {
		return arg
	}
	if resolved := m.Resolve(arg); resolved != "" {
		return resolved
	}
	return arg
}

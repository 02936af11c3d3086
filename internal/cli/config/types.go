// Package config provides configuration management for the sqldivider CLI.
//
// Values are layered, highest priority first: explicitly set flags,
// SQLDIVIDER_* environment variables, the config file, then defaults.
package config

import (
	"github.com/leapstack-labs/sqldivider/pkg/divider"
)

// Config holds all CLI configuration options.
type Config struct {
	Input            string           `koanf:"input"`
	SQL              string           `koanf:"sql"`
	OutputDir        string           `koanf:"output_dir"`
	Clean            bool             `koanf:"clean"`
	DryRun           bool             `koanf:"dry_run"`
	Pattern          string           `koanf:"pattern"`
	Preset           string           `koanf:"preset"`
	EscapePrefixes   []string         `koanf:"escape"`
	NoEscape         bool             `koanf:"no_escape"`
	RemoveSchemaName bool             `koanf:"remove_schema"`
	Encoding         divider.Encoding `koanf:"encoding"`
	Parallel         int              `koanf:"parallel"`
	ValidateSQL      bool             `koanf:"validate"`
	Manifest         bool             `koanf:"manifest"`
	Watch            bool             `koanf:"watch"`
	Verbose          bool             `koanf:"verbose"`
	OutputFormat     string           `koanf:"format"`

	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutputDir = "sql"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix        = "SQLDIVIDER_"
)

// ConfigFileNames are looked up in the working directory when no config
// file is given explicitly.
var ConfigFileNames = []string{"sqldivider.yaml", "sqldivider.yml", ".sqldivider.yaml"}

// OutputFormats lists the accepted values of the format option.
var OutputFormats = []string{"auto", "text", "markdown", "json", "yaml"}

// AnalyzerOptions builds the divider options from the configuration.
func (c *Config) AnalyzerOptions() divider.Options {
	opts := divider.Options{
		RemoveSchemaName: c.RemoveSchemaName,
		Encoding:         c.Encoding,
	}
	if !c.NoEscape {
		opts.EscapePrefixes = append([]string{}, c.EscapePrefixes...)
	}
	return opts
}

// Matcher returns the title matcher for the configured pattern or preset.
// An explicit pattern wins over the preset.
func (c *Config) Matcher() (divider.TitleMatcher, error) {
	if c.Pattern != "" {
		return divider.NewRegexpMatcher(c.Pattern)
	}
	p, err := c.preset()
	if err != nil {
		return nil, err
	}
	return p.Matcher(), nil
}

// PatternName describes the active title pattern for reports.
func (c *Config) PatternName() string {
	if c.Pattern != "" {
		return c.Pattern
	}
	if c.Preset == "" {
		return divider.DefaultPreset
	}
	return c.Preset
}

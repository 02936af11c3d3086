package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqldivider/pkg/divider"
)

// ErrNoInput is returned when neither an input path nor inline SQL is given.
var ErrNoInput = errors.New("no input: use --input <file|dir> or --sql <text>")

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Parallel < 0 {
		return fmt.Errorf("parallel must be >= 0, got %d", c.Parallel)
	}
	if c.OutputFormat != "" && !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("unknown output format %q (supported: %s)", c.OutputFormat, strings.Join(OutputFormats, ", "))
	}
	if _, err := divider.ParseEncoding(string(c.Encoding)); err != nil {
		return err
	}
	if _, err := c.Matcher(); err != nil {
		return err
	}
	return nil
}

// ValidateInput checks that exactly one input source is configured and that
// a non dry-run has somewhere to write.
func (c *Config) ValidateInput() error {
	switch {
	case c.Input == "" && c.SQL == "":
		return ErrNoInput
	case c.Input != "" && c.SQL != "":
		return fmt.Errorf("--input and --sql are mutually exclusive")
	}
	if !c.DryRun && c.OutputDir == "" {
		return fmt.Errorf("output_dir is required unless running with --dry-run")
	}
	if c.Watch && c.Input == "" {
		return fmt.Errorf("--watch requires --input")
	}
	if !c.DryRun && c.Input != "" && sameDir(c.Input, c.OutputDir) {
		return fmt.Errorf("output_dir %q must differ from the input directory", c.OutputDir)
	}
	return nil
}

// ExcludedDirs lists the directories skipped when walking a directory input.
// The output directory is never read back as input.
func (c *Config) ExcludedDirs() []string {
	if c.OutputDir == "" {
		return nil
	}
	return []string{c.OutputDir}
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func (c *Config) preset() (divider.Preset, error) {
	name := c.Preset
	if name == "" {
		name = divider.DefaultPreset
	}
	p, ok := divider.LookupPreset(name)
	if !ok {
		return divider.Preset{}, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(divider.PresetNames(), ", "))
	}
	return p, nil
}

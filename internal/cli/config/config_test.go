package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqldivider/pkg/divider"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output-dir", "", "")
	flags.Bool("dry-run", true, "")
	flags.Bool("remove-schema", false, "")
	flags.StringSlice("escape", nil, "")
	flags.String("encoding", "", "")
	flags.Int("parallel", 0, "")
	flags.String("pattern", "", "")
	flags.String("preset", "", "")
	return flags
}

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, divider.DefaultPreset, cfg.Preset)
	assert.Equal(t, divider.DefaultEscapePrefixes, cfg.EscapePrefixes)
	assert.Equal(t, divider.EncodingUTF8, cfg.Encoding)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Empty(t, cfg.ConfigFile)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, "custom.yaml", `
input: dump.sql
output_dir: out
dry_run: false
remove_schema: true
escape:
  - "--"
  - "SET"
encoding: sjis
parallel: 3
manifest: true
format: json
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "dump.sql", cfg.Input)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.False(t, cfg.DryRun)
	assert.True(t, cfg.RemoveSchemaName)
	assert.Equal(t, []string{"--", "SET"}, cfg.EscapePrefixes)
	assert.Equal(t, divider.EncodingShiftJIS, cfg.Encoding)
	assert.Equal(t, 3, cfg.Parallel)
	assert.True(t, cfg.Manifest)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadConfig_FindsFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "sqldivider.yml", "output_dir: from_yml\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from_yml", cfg.OutputDir)
	assert.Equal(t, "sqldivider.yml", filepath.Base(cfg.ConfigFile))
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_InvalidEncoding(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, "sqldivider.yaml", "encoding: klingon\n")

	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown encoding")
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, "sqldivider.yaml", "output_dir: from_file\n")
	t.Setenv("SQLDIVIDER_OUTPUT_DIR", "from_env")

	flags := newTestFlags()
	require.NoError(t, flags.Set("output-dir", "from_flag"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "from_flag", cfg.OutputDir, "flag should override env and file")
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, "sqldivider.yaml", "output_dir: from_file\nparallel: 2\n")
	t.Setenv("SQLDIVIDER_OUTPUT_DIR", "from_env")
	t.Setenv("SQLDIVIDER_PARALLEL", "8")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.OutputDir)
	assert.Equal(t, 8, cfg.Parallel)
}

func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SQLDIVIDER_OUTPUT_DIR", "from_env")
	t.Setenv("SQLDIVIDER_DRY_RUN", "false")

	// Flags are registered but never set, so their defaults must not win.
	cfg, err := LoadConfig("", newTestFlags())
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.OutputDir)
	assert.False(t, cfg.DryRun)
}

func TestLoadConfig_SliceValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("env splits on comma", func(t *testing.T) {
		t.Setenv("SQLDIVIDER_ESCAPE", "--,SET")
		cfg, err := LoadConfig("", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"--", "SET"}, cfg.EscapePrefixes)
	})

	t.Run("flag", func(t *testing.T) {
		flags := newTestFlags()
		require.NoError(t, flags.Set("escape", "#,REM"))
		cfg, err := LoadConfig("", flags)
		require.NoError(t, err)
		assert.Equal(t, []string{"#", "REM"}, cfg.EscapePrefixes)
	})
}

func TestLoadConfig_KebabFlagsMapToKeys(t *testing.T) {
	t.Chdir(t.TempDir())

	flags := newTestFlags()
	require.NoError(t, flags.Set("remove-schema", "true"))
	require.NoError(t, flags.Set("dry-run", "false"))
	require.NoError(t, flags.Set("encoding", "UTF-16LE"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.True(t, cfg.RemoveSchemaName)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, divider.EncodingUTF16LE, cfg.Encoding)
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config { return GetConfig(context.Background()) }

	tests := []struct {
		name      string
		mutate    func(c *Config)
		errSubstr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative parallel", mutate: func(c *Config) { c.Parallel = -1 }, errSubstr: "parallel"},
		{name: "bad format", mutate: func(c *Config) { c.OutputFormat = "xml" }, errSubstr: "unknown output format"},
		{name: "bad encoding", mutate: func(c *Config) { c.Encoding = "ebcdic" }, errSubstr: "unknown encoding"},
		{name: "unknown preset", mutate: func(c *Config) { c.Preset = "drop_table" }, errSubstr: "unknown preset"},
		{name: "bad pattern", mutate: func(c *Config) { c.Pattern = "(" }, errSubstr: "invalid title pattern"},
		{name: "pattern without table group", mutate: func(c *Config) { c.Pattern = `CREATE TABLE (\w+)` }, errSubstr: "missing named group"},
		{name: "pattern overrides unknown preset", mutate: func(c *Config) {
			c.Preset = "drop_table"
			c.Pattern = `(?i)^DROP TABLE (?P<table>\w+)`
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_ValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "no input", cfg: Config{DryRun: true}, wantErr: true},
		{name: "both inputs", cfg: Config{Input: "a.sql", SQL: "SELECT 1;", DryRun: true}, wantErr: true},
		{name: "file input", cfg: Config{Input: "a.sql", DryRun: true}},
		{name: "inline sql", cfg: Config{SQL: "SELECT 1;", DryRun: true}},
		{name: "write without output dir", cfg: Config{Input: "a.sql"}, wantErr: true},
		{name: "watch inline sql", cfg: Config{SQL: "SELECT 1;", DryRun: true, Watch: true}, wantErr: true},
		{name: "output is input dir", cfg: Config{Input: "dumps", OutputDir: "dumps/"}, wantErr: true},
		{name: "output below input dir", cfg: Config{Input: ".", OutputDir: "sql"}},
		{name: "dry run into input dir", cfg: Config{Input: ".", OutputDir: ".", DryRun: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateInput()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
	assert.ErrorIs(t, (&Config{}).ValidateInput(), ErrNoInput)
}

func TestConfig_ExcludedDirs(t *testing.T) {
	assert.Nil(t, (&Config{}).ExcludedDirs())
	assert.Equal(t, []string{"sql"}, (&Config{OutputDir: "sql"}).ExcludedDirs())
}

func TestConfig_AnalyzerOptions(t *testing.T) {
	cfg := &Config{
		EscapePrefixes:   []string{"--"},
		RemoveSchemaName: true,
		Encoding:         divider.EncodingEUCJP,
	}

	opts := cfg.AnalyzerOptions()
	assert.Equal(t, []string{"--"}, opts.EscapePrefixes)
	assert.True(t, opts.RemoveSchemaName)
	assert.Equal(t, divider.EncodingEUCJP, opts.Encoding)

	// The options own their prefix slice.
	opts.EscapePrefixes[0] = "#"
	assert.Equal(t, "--", cfg.EscapePrefixes[0])

	cfg.NoEscape = true
	assert.Nil(t, cfg.AnalyzerOptions().EscapePrefixes)
}

func TestConfig_Matcher(t *testing.T) {
	cfg := &Config{Preset: "select"}
	m, err := cfg.Matcher()
	require.NoError(t, err)
	assert.Equal(t, "orders", divider.ExtractTitle("SELECT * FROM `shop`.`orders`", m, true))
	assert.Equal(t, "select", cfg.PatternName())

	empty := &Config{}
	_, err = empty.Matcher()
	require.NoError(t, err)
	assert.Equal(t, divider.DefaultPreset, empty.PatternName())
}

func TestGetLogger_Fallback(t *testing.T) {
	logger := GetLogger(context.Background())
	require.NotNil(t, logger)
	logger.Info("discarded")
}

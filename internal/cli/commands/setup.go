package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqldivider/internal/cli/config"
	"github.com/leapstack-labs/sqldivider/internal/cli/output"
	"github.com/leapstack-labs/sqldivider/internal/loader"
	"github.com/leapstack-labs/sqldivider/internal/validate"
	"github.com/leapstack-labs/sqldivider/internal/writer"
	"github.com/leapstack-labs/sqldivider/pkg/divider"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// inlineSource labels statements that came from --sql.
const inlineSource = "<inline>"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the command. The root
// command stores a loaded config in the context; a command run on its own
// loads one from its flags.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, ok := config.FromContext(cmd.Context())
	if !ok {
		var err error
		cfg, err = config.LoadConfig("", cmd.Flags())
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: r,
	}, nil
}

// addAnalysisFlags registers the flags shared by commands that divide input.
// Defaults mirror the config defaults; only flags set explicitly override
// the config file and environment.
func addAnalysisFlags(flags *pflag.FlagSet) {
	flags.StringP("input", "i", "", "SQL file or directory of .sql files")
	flags.String("sql", "", "Inline SQL text to divide instead of --input")
	flags.StringP("pattern", "p", "", "Title regexp with a (?P<table>...) and optional (?P<schema>...) group")
	flags.String("preset", divider.DefaultPreset, "Built-in title pattern (see 'sqldivider presets')")
	flags.StringSliceP("escape", "e", divider.DefaultEscapePrefixes, "Line prefixes to drop before dividing (repeatable)")
	flags.Bool("no-escape", false, "Keep every line, ignoring --escape")
	flags.Bool("remove-schema", false, "Drop the schema qualifier from titles and queries")
	flags.String("encoding", string(divider.EncodingUTF8), "Text encoding of input and output files")
	flags.Int("parallel", 0, "Files parsed at once in directory mode (0 = number of CPUs)")
	flags.Bool("validate", false, "Parse each statement with the MySQL parser and report its kind")
}

func registerAnalysisCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("preset", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return divider.PresetNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("encoding", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return divider.EncodingNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// analysis is the divided input of one run.
type analysis struct {
	Input   string
	Pattern string
	Files   []loader.FileResult
}

// analyze divides the configured input.
func analyze(ctx context.Context, cc *CommandContext) (*analysis, error) {
	cfg := cc.Cfg
	m, err := cfg.Matcher()
	if err != nil {
		return nil, err
	}
	opts := cfg.AnalyzerOptions()

	if cfg.SQL != "" {
		stmts := divider.FromText(strings.TrimSpace(cfg.SQL), m, opts)
		cc.Logger.Debug("divided inline sql", slog.Int("statements", len(stmts)))
		return &analysis{
			Input:   inlineSource,
			Pattern: cfg.PatternName(),
			Files:   []loader.FileResult{{Path: inlineSource, Statements: stmts}},
		}, nil
	}

	l := loader.New(
		loader.WithLogger(cc.Logger),
		loader.WithParallelism(cfg.Parallel),
		loader.WithExclude(cfg.ExcludedDirs()...))
	files, err := l.Load(ctx, cfg.Input, m, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to divide %s: %w", cfg.Input, err)
	}
	return &analysis{
		Input:   cfg.Input,
		Pattern: cfg.PatternName(),
		Files:   files,
	}, nil
}

// Statements returns the divided statements of all files in order.
func (a *analysis) Statements() []divider.Statement {
	return loader.Statements(a.Files)
}

// infos flattens the analysis into numbered statement descriptions.
// A non-nil validator fills in the kind or parse error of each statement.
func (a *analysis) infos(v *validate.Validator, withQuery bool) []output.StatementInfo {
	var infos []output.StatementInfo
	for _, f := range a.Files {
		for _, stmt := range f.Statements {
			info := output.StatementInfo{
				Index:  len(infos) + 1,
				Title:  stmt.Title,
				File:   writer.FileName(stmt.Title),
				Source: f.Path,
				Lines:  writer.LineCount(stmt.Query),
			}
			if withQuery {
				info.Query = stmt.Query
			}
			if v != nil {
				res := v.Check(stmt.Query)
				info.Kind = res.Kind
				if !res.OK() {
					info.Error = res.Err.Error()
				}
			}
			infos = append(infos, info)
		}
	}
	return infos
}

func newValidator(cfg *config.Config) *validate.Validator {
	if !cfg.ValidateSQL {
		return nil
	}
	return validate.New()
}

func countInvalid(infos []output.StatementInfo) int {
	n := 0
	for _, info := range infos {
		if info.Error != "" {
			n++
		}
	}
	return n
}

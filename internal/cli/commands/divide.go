package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/sqldivider/internal/cli/config"
	"github.com/leapstack-labs/sqldivider/internal/cli/output"
	"github.com/leapstack-labs/sqldivider/internal/writer"
	"github.com/spf13/cobra"
)

// NewDivideCommand creates the divide command.
func NewDivideCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "divide",
		Aliases: []string{"create_table", "split"},
		Short:   "Divide a SQL dump into one file per statement",
		Long: `Divide a SQL dump into one file per statement, named after the table the
statement touches.

Comment and session lines matching --escape are dropped first. Statements end
at a line ending in ';'; a trailing statement without one is ignored. Titles
come from the --pattern regexp or a --preset; statements it does not match are
titled "default_table".

Runs as a dry run by default: titles and queries are printed and nothing is
written. Pass --dry-run=false to write {title}.sql files to --output-dir.`,
		Example: `  # Preview how a dump would be divided
  sqldivider divide -i schema.sql

  # Write one file per table into ./tables, clearing it first
  sqldivider divide -i schema.sql -o tables --clean --dry-run=false

  # Divide every .sql file below a directory, dropping schema names
  sqldivider divide -i dumps/ --remove-schema --dry-run=false

  # Title SELECT statements by their FROM table
  sqldivider divide --sql "SELECT * FROM users;" --preset select

  # Re-divide whenever the dump changes
  sqldivider divide -i schema.sql --dry-run=false --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDivide(cmd)
		},
	}

	flags := cmd.Flags()
	addAnalysisFlags(flags)
	flags.StringP("output-dir", "o", config.DefaultOutputDir, "Directory the statement files are written to")
	flags.BoolP("clean", "c", false, "Remove the output directory before writing")
	flags.BoolP("dry-run", "d", true, "Print the divided statements instead of writing files")
	flags.Bool("manifest", false, "Write a _manifest.yaml describing the generated files")
	flags.BoolP("watch", "w", false, "Re-run whenever the input changes")
	registerAnalysisCompletions(cmd)

	return cmd
}

func runDivide(cmd *cobra.Command) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := cc.Cfg.ValidateInput(); err != nil {
		return err
	}

	if !cc.Cfg.Watch {
		return divideOnce(cmd.Context(), cc)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := divideOnce(ctx, cc); err != nil {
		cc.Renderer.Error(err.Error())
	}
	cc.Renderer.Muted(fmt.Sprintf("Watching %s for changes. Press Ctrl+C to stop.", cc.Cfg.Input))

	return watchInput(ctx, cc.Cfg.Input, cc.Cfg.ExcludedDirs(), cc.Logger, func() {
		if err := divideOnce(ctx, cc); err != nil {
			cc.Renderer.Error(err.Error())
		}
	})
}

// divideOnce divides the input and either renders or writes the result.
func divideOnce(ctx context.Context, cc *CommandContext) error {
	cfg := cc.Cfg
	a, err := analyze(ctx, cc)
	if err != nil {
		return err
	}

	infos := a.infos(newValidator(cfg), cfg.DryRun)
	result := &output.DivideOutput{
		Input:      a.Input,
		Pattern:    a.Pattern,
		DryRun:     cfg.DryRun,
		Statements: infos,
		Summary: output.DivideSummary{
			Statements: len(infos),
			Sources:    len(a.Files),
			Invalid:    countInvalid(infos),
		},
	}
	if result.Statements == nil {
		result.Statements = []output.StatementInfo{}
	}

	if !cfg.DryRun {
		if err := writeStatements(cc, a, result); err != nil {
			return err
		}
	}

	return renderDivide(cc.Renderer, result)
}

// writeStatements writes every statement and fills in the write results.
func writeStatements(cc *CommandContext, a *analysis, result *output.DivideOutput) error {
	cfg := cc.Cfg
	w := writer.New(cfg.OutputDir,
		writer.WithClean(cfg.Clean),
		writer.WithEncoding(cfg.Encoding),
		writer.WithLogger(cc.Logger))
	if err := w.Prepare(); err != nil {
		return err
	}
	result.OutputDir = w.Dir()

	for _, stmt := range a.Statements() {
		if _, err := w.Write(stmt); err != nil {
			return err
		}
		result.Summary.Written++
	}
	result.Summary.Duplicates = w.Duplicates()

	if cfg.Manifest {
		path, err := w.WriteManifest(buildManifest(result))
		if err != nil {
			return err
		}
		result.Manifest = path
		cc.Logger.Debug("wrote manifest", slog.String("path", path))
	}
	return nil
}

func buildManifest(result *output.DivideOutput) writer.Manifest {
	m := writer.Manifest{
		Input:   result.Input,
		Pattern: result.Pattern,
		Files:   make([]writer.ManifestEntry, 0, len(result.Statements)),
	}
	for _, info := range result.Statements {
		m.Files = append(m.Files, writer.ManifestEntry{
			File:   info.File,
			Title:  info.Title,
			Source: info.Source,
			Lines:  info.Lines,
			Kind:   info.Kind,
			Error:  info.Error,
		})
	}
	return m
}

func renderDivide(r *output.Renderer, result *output.DivideOutput) error {
	if handled, err := r.Structured(result); handled {
		return err
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	if result.DryRun {
		r.Header(1, fmt.Sprintf("Dry run: %d statements", result.Summary.Statements))
		for _, info := range result.Statements {
			if markdown {
				r.Println("")
				r.Println(output.FormatHeader(2, info.Title))
				r.Println(output.FormatKeyValue("Source", info.Source))
				r.Println(output.FormatCodeBlock("sql", info.Query))
			} else {
				r.Println(r.Styles().Title.Render(info.Title))
				r.Println(info.Query)
			}
			renderDiagnostic(r, info)
		}
		r.Println("")
		r.Muted("Dry run: nothing was written. Pass --dry-run=false to write files.")
		return nil
	}

	r.Header(1, fmt.Sprintf("Divided %d statements into %s", result.Summary.Statements, result.OutputDir))
	for _, info := range result.Statements {
		r.StatusLine(info.File, "written", fmt.Sprintf("%d lines", info.Lines))
		renderDiagnostic(r, info)
	}
	for _, dup := range result.Summary.Duplicates {
		r.Warning(fmt.Sprintf("%s was written more than once; only the last statement is kept", dup))
	}
	if result.Manifest != "" {
		r.Muted("Manifest: " + result.Manifest)
	}
	r.Success(fmt.Sprintf("%d files written", result.Summary.Written))
	return nil
}

func renderDiagnostic(r *output.Renderer, info output.StatementInfo) {
	if info.Error != "" {
		r.Warning(fmt.Sprintf("%s: %s", info.Title, info.Error))
	}
}

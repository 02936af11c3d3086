package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/sqldivider/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the statements a dump divides into",
		Long: `List the statements an input divides into, with their titles, line counts
and source files. Nothing is written.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --format to override: auto, text, markdown, json, yaml`,
		Example: `  # Summarize a dump
  sqldivider list -i schema.sql

  # Include the statement kind reported by the MySQL parser
  sqldivider list -i dumps/ --validate

  # Machine-readable output
  sqldivider list -i schema.sql --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	addAnalysisFlags(cmd.Flags())
	registerAnalysisCompletions(cmd)

	return cmd
}

func runList(cmd *cobra.Command) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if cc.Cfg.Input == "" && cc.Cfg.SQL == "" {
		return fmt.Errorf("list needs --input or --sql")
	}

	a, err := analyze(cmd.Context(), cc)
	if err != nil {
		return err
	}

	infos := a.infos(newValidator(cc.Cfg), false)
	if infos == nil {
		infos = []output.StatementInfo{}
	}
	r := cc.Renderer

	if handled, err := r.Structured(output.ListOutput{
		Input:      a.Input,
		Pattern:    a.Pattern,
		Statements: infos,
	}); handled {
		return err
	}

	r.Header(1, fmt.Sprintf("Statements (%d total)", len(infos)))
	if len(infos) == 0 {
		r.Muted("No statements found.")
		return nil
	}

	header := []string{"#", "Title", "Lines", "Source"}
	if cc.Cfg.ValidateSQL {
		header = append(header, "Kind")
	}
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		row := []string{strconv.Itoa(info.Index), info.Title, strconv.Itoa(info.Lines), info.Source}
		if cc.Cfg.ValidateSQL {
			kind := info.Kind
			if info.Error != "" {
				kind = "error: " + info.Error
			}
			row = append(row, kind)
		}
		rows = append(rows, row)
	}
	r.Table(header, rows)

	return nil
}

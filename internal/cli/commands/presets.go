package commands

import (
	"github.com/leapstack-labs/sqldivider/internal/cli/output"
	"github.com/leapstack-labs/sqldivider/pkg/divider"
	"github.com/spf13/cobra"
)

// NewPresetsCommand creates the presets command.
func NewPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in title patterns",
		Long: `List the built-in title patterns selectable with --preset.

Each pattern captures the table name in a "table" group and, optionally, the
schema qualifier in a "schema" group.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return renderPresets(cc.Renderer)
		},
	}
}

func renderPresets(r *output.Renderer) error {
	presets := divider.Presets()
	infos := make([]output.PresetInfo, 0, len(presets))
	for _, p := range presets {
		infos = append(infos, output.PresetInfo{
			Name:        p.Name,
			Description: p.Description,
			Pattern:     p.Pattern,
			Default:     p.Name == divider.DefaultPreset,
		})
	}

	if handled, err := r.Structured(infos); handled {
		return err
	}

	r.Header(1, "Title presets")
	if r.EffectiveMode() == output.ModeMarkdown {
		for _, info := range infos {
			name := info.Name
			if info.Default {
				name += " (default)"
			}
			r.Println("")
			r.Println(output.FormatHeader(2, name))
			r.Println(info.Description)
			r.Println(output.FormatCodeBlock("regexp", info.Pattern))
		}
		return nil
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		name := info.Name
		if info.Default {
			name += " *"
		}
		rows = append(rows, []string{name, info.Description})
	}
	r.Table([]string{"Preset", "Matches"}, rows)
	r.Muted("* default. Use --format markdown or json to see the full patterns.")
	return nil
}

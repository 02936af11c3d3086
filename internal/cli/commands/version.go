package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildInfo holds the values stamped into the binary at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Print the sqldivider release, the commit and date it was built from, and the Go toolchain.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(w, info.Version)
				return
			}
			_, _ = fmt.Fprintf(w, "sqldivider v%s\n", info.Version)
			_, _ = fmt.Fprintf(w, "  commit: %s\n", orUnknown(info.Commit))
			_, _ = fmt.Fprintf(w, "  built:  %s\n", orUnknown(info.Date))
			_, _ = fmt.Fprintf(w, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

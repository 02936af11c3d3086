package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dumpSQL is a small dump with comment and session lines the default
// escape prefixes drop.
const dumpSQL = "-- ----------------------------\n" +
	"-- Table structure for shop\n" +
	"-- ----------------------------\n" +
	"SET FOREIGN_KEY_CHECKS=0;\n" +
	"CREATE TABLE `shop`.`users` (\n" +
	"  `id` int NOT NULL,\n" +
	"  PRIMARY KEY (`id`)\n" +
	");\n" +
	"\n" +
	"CREATE TABLE `shop`.`orders` (\n" +
	"  `id` int NOT NULL,\n" +
	"  `user_id` int\n" +
	");\n"

// writeDump writes content to a .sql file in a temp dir and returns its path.
func writeDump(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// executeCommand runs sub below a bare root carrying the global flags and
// returns stdout and stderr.
func executeCommand(t *testing.T, sub *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	root := &cobra.Command{Use: "sqldivider", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().StringP("format", "f", "", "")
	root.PersistentFlags().BoolP("verbose", "v", false, "")
	root.AddCommand(sub)

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(append([]string{sub.Name()}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestNewDivideCommand(t *testing.T) {
	cmd := NewDivideCommand()

	assert.Equal(t, "divide", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.Equal(t, []string{"create_table", "split"}, cmd.Aliases)

	flags := []string{
		"input", "sql", "output-dir", "clean", "dry-run", "remove-schema",
		"pattern", "preset", "escape", "no-escape", "encoding", "parallel",
		"validate", "manifest", "watch",
	}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}

	dryRun := cmd.Flags().Lookup("dry-run")
	assert.Equal(t, "true", dryRun.DefValue, "dry run is the default")
	assert.Equal(t, "d", dryRun.Shorthand)
}

func TestNewListCommand(t *testing.T) {
	cmd := NewListCommand()

	assert.Equal(t, "list", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("input"))
	assert.Nil(t, cmd.Flags().Lookup("output-dir"), "list never writes")
}

func TestNewPresetsCommand(t *testing.T) {
	cmd := NewPresetsCommand()

	assert.Equal(t, "presets", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

package commands

import (
	"testing"

	"github.com/leapstack-labs/sqldivider/internal/cli/output"
	clitestutil "github.com/leapstack-labs/sqldivider/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDivide_WriteSummary(t *testing.T) {
	result := &output.DivideOutput{
		Input:     "dump.sql",
		OutputDir: "tables",
		Statements: []output.StatementInfo{
			{Index: 1, Title: "users", File: "users.sql", Lines: 4},
			{Index: 2, Title: "users", File: "users.sql", Lines: 2, Error: "syntax error"},
		},
		Summary: output.DivideSummary{
			Statements: 2,
			Written:    2,
			Duplicates: []string{"users.sql"},
		},
	}

	tr := clitestutil.NewTestRenderer(output.ModeMarkdown, false)
	require.NoError(t, renderDivide(tr.Renderer, result))

	out := tr.Output()
	clitestutil.AssertNoANSI(t, out)
	clitestutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Divided 2 statements into tables")
	assert.Contains(t, out, "`users.sql`: 4 lines")
	assert.Contains(t, out, "2 files written")

	errOut := tr.ErrorOutput()
	assert.Contains(t, errOut, "users: syntax error")
	assert.Contains(t, errOut, "users.sql was written more than once")
	assert.NotContains(t, out, "written more than once")
}

func TestRenderDivide_DryRunText(t *testing.T) {
	result := &output.DivideOutput{
		DryRun: true,
		Statements: []output.StatementInfo{
			{Index: 1, Title: "users", Query: "CREATE TABLE users (id INT);"},
		},
		Summary: output.DivideSummary{Statements: 1},
	}

	tr := clitestutil.NewTestRenderer(output.ModeText, false)
	require.NoError(t, renderDivide(tr.Renderer, result))

	out := tr.Output()
	clitestutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "Dry run: 1 statements")
	assert.Contains(t, out, "CREATE TABLE users (id INT);")
	assert.NotContains(t, out, "```")
	assert.Empty(t, tr.ErrorOutput())
}

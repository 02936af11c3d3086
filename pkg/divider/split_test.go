package divider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(contents ...string) []Line {
	return Normalize(contents, nil)
}

func queries(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Query()
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		begins []int
		ends   []int
		want   layout
	}{
		{name: "no terminator", begins: []int{0}, ends: nil, want: layoutSingle},
		{name: "terminator on last line", begins: []int{0}, ends: []int{4}, want: layoutSingle},
		{name: "every line terminated", begins: []int{0, 1, 2}, ends: []int{0, 1, 2}, want: layoutOnePerLine},
		{name: "unterminated tail after one-liners", begins: []int{0, 1, 2}, ends: []int{0, 1}, want: layoutOnePerLine},
		{name: "multi-line statements", begins: []int{0, 3}, ends: []int{2, 5}, want: layoutRanged},
		{name: "mixed", begins: []int{0, 1, 2}, ends: []int{0, 1, 4}, want: layoutRanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.begins, tt.ends), "got %s", classify(tt.begins, tt.ends))
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input []Line
		want  []string
	}{
		{
			name:  "empty input",
			input: nil,
			want:  []string{},
		},
		{
			name:  "single multi-line statement",
			input: lines("CREATE TABLE a (", "  id INT", ");"),
			want:  []string{"CREATE TABLE a (\n  id INT\n);"},
		},
		{
			name:  "single statement without terminator",
			input: lines("SELECT *", "FROM t"),
			want:  []string{"SELECT *\nFROM t"},
		},
		{
			name:  "one statement per line",
			input: lines("SELECT 1;", "SELECT 2;", "SELECT 3;"),
			want:  []string{"SELECT 1;", "SELECT 2;", "SELECT 3;"},
		},
		{
			name:  "multi-line statements",
			input: lines("CREATE TABLE a (", "  id INT", ");", "CREATE TABLE b (", "  id INT", ");"),
			want:  []string{"CREATE TABLE a (\n  id INT\n);", "CREATE TABLE b (\n  id INT\n);"},
		},
		{
			name:  "one-liners around a multi-line statement",
			input: lines("SELECT 1;", "CREATE TABLE a (", "  id INT", ");", "SELECT 2;"),
			want:  []string{"SELECT 1;", "CREATE TABLE a (\n  id INT\n);", "SELECT 2;"},
		},
		{
			name:  "unterminated trailing statement is dropped",
			input: lines("CREATE TABLE a (", "  id INT", ");", "CREATE TABLE b (", "  id INT"),
			want:  []string{"CREATE TABLE a (\n  id INT\n);"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, queries(Split(tt.input)))
		})
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	stmts := []string{
		"CREATE TABLE a (\n  id INT,\n  name VARCHAR(10)\n);",
		"SELECT 1;",
		"CREATE TABLE b (\n  id INT\n)\nENGINE = InnoDB\n;",
		"INSERT INTO a\nVALUES (1, 'x');",
	}

	var raw []string
	for _, s := range stmts {
		raw = append(raw, SplitLines(s)...)
	}

	groups := Split(Normalize(raw, nil))
	require.Len(t, groups, len(stmts))
	assert.Equal(t, stmts, queries(groups))
}

func TestGroup_Header(t *testing.T) {
	assert.Equal(t, "", Group(nil).Header())
	assert.Equal(t, "a", Group(lines("a", "b")).Header())
}

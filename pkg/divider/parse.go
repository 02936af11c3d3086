package divider

import "strings"

// Statement is one divided SQL statement.
type Statement struct {
	Title string `json:"title" yaml:"title"`
	Query string `json:"query" yaml:"query"`
}

// Parse runs the full pipeline over raw lines: normalize, split, then derive a
// title for each group. When opts.RemoveSchemaName is set the captured schema
// is also removed from the group's query body.
func Parse(lines []string, m TitleMatcher, opts Options) []Statement {
	groups := Split(Normalize(lines, opts.EscapePrefixes))
	stmts := make([]Statement, 0, len(groups))
	for _, g := range groups {
		stmts = append(stmts, newStatement(g, m, opts.RemoveSchemaName))
	}
	return stmts
}

func newStatement(g Group, m TitleMatcher, removeSchemaName bool) Statement {
	header := g.Header()
	query := g.Query()
	if removeSchemaName {
		query = stripSchema(query, SchemaOf(header, m))
	}
	return Statement{
		Title: ExtractTitle(header, m, removeSchemaName),
		Query: query,
	}
}

// stripSchema removes every occurrence of schema from query. This is a plain
// substring replacement, so a schema name that also appears elsewhere in the
// statement is removed there too.
func stripSchema(query, schema string) string {
	if schema == "" {
		return query
	}
	return strings.ReplaceAll(query, schema, "")
}

// FromText divides in-memory SQL text. The text is cut at every ';', each
// piece keeps its terminator, and line breaks inside a piece are removed by
// normalization. Escape prefixes are not applied to in-memory text.
func FromText(text string, m TitleMatcher, opts Options) []Statement {
	pieces := strings.Split(text, ";")
	lines := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p == "" {
			continue
		}
		lines = append(lines, p+";")
	}
	opts.EscapePrefixes = nil
	return Parse(lines, m, opts)
}

// FromLines divides SQL given as lines, as read from a file.
func FromLines(lines []string, m TitleMatcher, opts Options) []Statement {
	return Parse(lines, m, opts)
}

package divider

import (
	"fmt"
	"regexp"
	"strings"
)

// Capture group names a title pattern exposes.
const (
	GroupSchema = "schema"
	GroupTable  = "table"
)

// Match holds the schema and table captured from a statement header.
// Schema keeps whatever separator the pattern captured with it (e.g. "db.").
type Match struct {
	Schema string
	Table  string
}

// TitleMatcher finds the schema and table in a statement header.
type TitleMatcher interface {
	Match(text string) (Match, bool)
}

// RegexpMatcher is a TitleMatcher backed by a regular expression with named
// groups "table" and, optionally, "schema". A name may appear in several
// alternation branches; the first branch that participated in the match wins.
type RegexpMatcher struct {
	re      *regexp.Regexp
	schemas []int
	tables  []int
}

// NewRegexpMatcher compiles pattern into a RegexpMatcher.
func NewRegexpMatcher(pattern string) (*RegexpMatcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid title pattern: %w", err)
	}
	m := &RegexpMatcher{re: re}
	for i, name := range re.SubexpNames() {
		switch name {
		case GroupSchema:
			m.schemas = append(m.schemas, i)
		case GroupTable:
			m.tables = append(m.tables, i)
		}
	}
	if len(m.tables) == 0 {
		return nil, fmt.Errorf("invalid title pattern: missing named group (?P<%s>...)", GroupTable)
	}
	return m, nil
}

// MustRegexpMatcher is like NewRegexpMatcher but panics on error.
func MustRegexpMatcher(pattern string) *RegexpMatcher {
	m, err := NewRegexpMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns the source pattern.
func (m *RegexpMatcher) String() string {
	return m.re.String()
}

// Match implements TitleMatcher.
func (m *RegexpMatcher) Match(text string) (Match, bool) {
	loc := m.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return Match{}, false
	}
	return Match{
		Schema: firstCapture(text, loc, m.schemas),
		Table:  firstCapture(text, loc, m.tables),
	}, true
}

func firstCapture(text string, loc []int, groups []int) string {
	for _, g := range groups {
		if start := loc[2*g]; start >= 0 {
			return text[start:loc[2*g+1]]
		}
	}
	return ""
}

var (
	quoteRemover   = strings.NewReplacer("`", "", `"`, "")
	lineEndRemover = strings.NewReplacer("\r\n", "", "\n", "")
)

// ExtractTitle derives a file-safe title from a statement header.
// It returns "" for an empty header and FallbackTitle when m does not match.
func ExtractTitle(header string, m TitleMatcher, removeSchemaName bool) string {
	if header == "" {
		return ""
	}
	match, ok := m.Match(header)
	if !ok {
		return FallbackTitle
	}

	title := match.Table
	if match.Schema != "" && !removeSchemaName {
		title = match.Schema + match.Table
	}
	return sanitizeTitle(title)
}

// sanitizeTitle strips everything from a raw capture that would not belong in
// a file name. The order of steps matters: trimming happens before the cuts,
// so "`some table $$`" becomes "some_table_".
func sanitizeTitle(title string) string {
	title = cutAt(title, "(")
	title = strings.TrimSpace(title)
	title = quoteRemover.Replace(title)
	title = cutAt(title, "$")
	title = cutAt(title, ";")
	title = strings.ReplaceAll(title, " ", "_")
	return lineEndRemover.Replace(title)
}

func cutAt(s, sep string) string {
	before, _, _ := strings.Cut(s, sep)
	return before
}

// SchemaOf returns the raw schema capture for header, or "" when the header
// does not match or carries no schema.
func SchemaOf(header string, m TitleMatcher) string {
	if header == "" {
		return ""
	}
	match, ok := m.Match(header)
	if !ok {
		return ""
	}
	return match.Schema
}

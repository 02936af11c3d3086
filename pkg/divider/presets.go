package divider

import "sort"

const bq = "`"

// Shared fragments. The schema capture keeps its trailing '.', so
// schema+table reproduces the qualified name and removing the schema from a
// query body leaves a valid unqualified reference.
var (
	quotedIdent   = bq + `[^` + bq + `]+` + bq
	schemaCapture = `(?P<schema>(?:` + quotedIdent + `|[^\s.,(;` + bq + `]+)\.)?`
	tableCapture  = `(?P<table>` + quotedIdent + `|[^\s,(;` + bq + `]+)`
)

// Preset is a built-in title pattern.
type Preset struct {
	Name        string
	Description string
	Pattern     string
}

// DefaultPreset is the preset used when no pattern is configured.
const DefaultPreset = "create_table"

var presets = map[string]Preset{
	"create_table": {
		Name:        "create_table",
		Description: "CREATE [TEMPORARY] TABLE [IF NOT EXISTS] [schema.]table ( | LIKE",
		Pattern: `(?i)^\s*CREATE\s+(?:TEMPORARY\s+)?TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?` +
			schemaCapture + tableCapture + `\s*(?:\(|LIKE\b|$)`,
	},
	"select": {
		Name:        "select",
		Description: "SELECT ... FROM [schema.]table",
		Pattern:     `(?i)^\s*SELECT\s+.*?\s+FROM\s+` + schemaCapture + tableCapture,
	},
	"create_view": {
		Name:        "create_view",
		Description: "CREATE [OR REPLACE] [ALGORITHM=..] [DEFINER=..] [SQL SECURITY ..] VIEW [schema.]view",
		Pattern: `(?i)^\s*CREATE\s+(?:OR\s+REPLACE\s+)?(?:ALGORITHM\s*=\s*\w+\s+)?` +
			`(?:DEFINER\s*=\s*\S+\s+)?(?:SQL\s+SECURITY\s+\w+\s+)?VIEW\s+` +
			`(?:IF\s+NOT\s+EXISTS\s+)?` + schemaCapture + tableCapture,
	},
	"insert": {
		Name:        "insert",
		Description: "INSERT|REPLACE [modifiers] [INTO] [schema.]table",
		Pattern: `(?i)^\s*(?:INSERT|REPLACE)\s+(?:(?:LOW_PRIORITY|DELAYED|HIGH_PRIORITY)\s+)?` +
			`(?:IGNORE\s+)?(?:INTO\s+)?` + schemaCapture + tableCapture,
	},
	"alter_table": {
		Name:        "alter_table",
		Description: "ALTER [ONLINE] [IGNORE] TABLE [schema.]table",
		Pattern:     `(?i)^\s*ALTER\s+(?:ONLINE\s+)?(?:IGNORE\s+)?TABLE\s+` + schemaCapture + tableCapture,
	},
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames returns the registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presets returns all presets sorted by name.
func Presets() []Preset {
	names := PresetNames()
	out := make([]Preset, len(names))
	for i, name := range names {
		out[i] = presets[name]
	}
	return out
}

// Matcher compiles the preset pattern.
func (p Preset) Matcher() *RegexpMatcher {
	return MustRegexpMatcher(p.Pattern)
}

// DefaultMatcher returns the matcher for DefaultPreset.
func DefaultMatcher() *RegexpMatcher {
	return presets[DefaultPreset].Matcher()
}

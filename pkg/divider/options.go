package divider

// FallbackTitle is used when the title pattern does not match a statement header.
const FallbackTitle = "default_table"

// DefaultEscapePrefixes are the line prefixes dropped before splitting.
var DefaultEscapePrefixes = []string{
	"-- ----",
	"--",
	"SET FOREIGN_KEY_CHECKS",
	"DROP SCHEMA",
	"CREATE SCHEMA",
}

// Options configures a parse. The zero value disables escape filtering,
// keeps schema names and reads UTF-8 without BOM.
type Options struct {
	// EscapePrefixes lists line prefixes to drop, matched case-insensitively.
	// nil disables filtering.
	EscapePrefixes []string
	// RemoveSchemaName drops the schema from titles and query bodies.
	RemoveSchemaName bool
	// Encoding is the text encoding of input files and written output.
	Encoding Encoding
}

// DefaultOptions returns Options with the default escape prefixes.
func DefaultOptions() Options {
	prefixes := make([]string, len(DefaultEscapePrefixes))
	copy(prefixes, DefaultEscapePrefixes)
	return Options{
		EscapePrefixes: prefixes,
		Encoding:       EncodingUTF8,
	}
}

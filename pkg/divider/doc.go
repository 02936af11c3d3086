// Package divider splits multi-statement SQL text into per-statement units.
//
// The package contains:
//   - Normalize: line cleanup (terminators, trailing whitespace, escape prefixes)
//   - Split: statement boundary detection on `;`-terminated lines
//   - ExtractTitle: schema/table title extraction through a TitleMatcher
//   - FromText / FromLines: the two entry points feeding the same core
//
// This is not a SQL parser. Boundaries are found line by line, so a `;` inside
// a string literal, comment, or procedure body splits the statement.
// A trailing statement that lacks its terminating `;` is dropped.
package divider

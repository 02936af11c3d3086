package divider

import (
	"strings"
	"unicode"
)

// Line is a normalized input line. Index is the position in the normalized
// sequence, not the original line number.
type Line struct {
	Index   int
	Content string
}

var newlineRemover = strings.NewReplacer("\r\n", "", "\n", "")

// Normalize cleans raw lines for splitting. It removes embedded line
// terminators, trims trailing whitespace, drops empty lines and lines starting
// with any of escapePrefixes (case-insensitive), then re-indexes the survivors
// from 0. A nil escapePrefixes disables prefix filtering.
func Normalize(lines []string, escapePrefixes []string) []Line {
	out := make([]Line, 0, len(lines))
	for _, raw := range lines {
		content := newlineRemover.Replace(raw)
		content = strings.TrimRightFunc(content, unicode.IsSpace)
		if content == "" {
			continue
		}
		if escapePrefixes != nil && hasAnyPrefixFold(content, escapePrefixes) {
			continue
		}
		out = append(out, Line{Index: len(out), Content: content})
	}
	return out
}

func hasAnyPrefixFold(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
			return true
		}
	}
	return false
}

// SplitLines splits decoded text into lines on \r\n, \n and \r.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

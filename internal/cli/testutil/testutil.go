// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqldivider/internal/cli/output"
)

// DumpFiles maps relative paths to the contents SetupTestDumps writes.
var DumpFiles = map[string]string{
	"shop.sql": "-- ----------------------------\n" +
		"-- Dump of shop\n" +
		"-- ----------------------------\n" +
		"SET FOREIGN_KEY_CHECKS=0;\n" +
		"DROP SCHEMA IF EXISTS `shop`;\n" +
		"CREATE SCHEMA `shop`;\n" +
		"\n" +
		"CREATE TABLE `shop`.`customers` (\n" +
		"  `id` int NOT NULL,\n" +
		"  `name` varchar(64)\n" +
		");\n" +
		"CREATE TABLE `shop`.`orders` (\n" +
		"  `id` int NOT NULL,\n" +
		"  `customer_id` int\n" +
		");\n",
	filepath.Join("archive", "legacy.sql"): "CREATE TABLE legacy_users (id int);\n",
	"README.md": "not sql\n",
}

// SetupTestDumps creates a temporary directory holding DumpFiles.
func SetupTestDumps(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	for rel, content := range DumpFiles {
		path := filepath.Join(tmpDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to create %s: %v", rel, err)
		}
	}
	return tmpDir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	// Check for balanced code fences
	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	// Check that headers have content
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}

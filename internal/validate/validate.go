// Package validate checks divided statements with a MySQL-compatible parser.
//
// Validation is diagnostic only: it reports the statement kind and any parse
// error, and never changes how statements are divided or titled.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver" // value expressions
)

// ErrNoStatement is reported when a query contains nothing to parse.
var ErrNoStatement = errors.New("no statement found")

// Result is the outcome of checking one query.
type Result struct {
	// Kind is the parsed statement type, e.g. "CreateTableStmt".
	// Multiple statements are joined with ",".
	Kind string
	Err  error
}

// OK reports whether the query parsed.
func (r Result) OK() bool {
	return r.Err == nil
}

// Validator parses queries. The underlying parser is not safe for concurrent
// use, so calls are serialized.
type Validator struct {
	mu sync.Mutex
	p  *parser.Parser
}

// New creates a Validator.
func New() *Validator {
	return &Validator{p: parser.New()}
}

// Check parses query and returns its kind or the parse error.
func (v *Validator) Check(query string) (res Result) {
	v.mu.Lock()
	defer v.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	stmts, _, err := v.p.Parse(query, "", "")
	if err != nil {
		return Result{Err: err}
	}
	if len(stmts) == 0 {
		return Result{Err: ErrNoStatement}
	}

	kinds := make([]string, len(stmts))
	for i, stmt := range stmts {
		kinds[i] = KindOf(stmt)
	}
	return Result{Kind: strings.Join(kinds, ",")}
}

// KindOf returns the AST type name of stmt without package or pointer prefix.
func KindOf(stmt ast.StmtNode) string {
	name := fmt.Sprintf("%T", stmt)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimPrefix(name, "*")
}

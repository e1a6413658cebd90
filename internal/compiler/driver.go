package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavsurve/pasfront/internal/compiler/ast"
	"github.com/arnavsurve/pasfront/internal/compiler/diag"
	"github.com/arnavsurve/pasfront/internal/compiler/emitter"
	"github.com/arnavsurve/pasfront/internal/compiler/lexer"
	"github.com/arnavsurve/pasfront/internal/compiler/parser"
	"github.com/arnavsurve/pasfront/internal/compiler/semantic"
	"github.com/arnavsurve/pasfront/internal/compiler/token"
)

const SourceExt = ".pas"

type Options struct {
	// FailFastLexing stops at the first lexical error instead of skipping
	// the bad input and scanning on.
	FailFastLexing bool
}

// Result is what one run of the pipeline produced. Program is nil when
// parsing did not complete.
type Result struct {
	Tokens      []token.Token
	Program     *ast.Program
	Diagnostics diag.List
}

func (r *Result) OK() bool {
	return len(r.Diagnostics) == 0
}

// Check runs lexer, parser and analyzer over src. A lexical error in
// fail-fast mode or any syntax error ends the run early; semantic checks
// only run on a complete tree.
func Check(src string, opts Options) *Result {
	res := &Result{}

	lex := lexer.NewLexer(src)
	lex.SetFailFast(opts.FailFastLexing)
	res.Tokens = lex.Tokenize()
	res.Diagnostics = append(res.Diagnostics, lex.Errors()...)
	if opts.FailFastLexing && len(lex.Errors()) > 0 {
		return res
	}

	prog, err := parser.Parse(res.Tokens)
	if err != nil {
		var d *diag.Diagnostic
		if errors.As(err, &d) {
			res.Diagnostics.Add(d)
		} else {
			res.Diagnostics.Add(&diag.Diagnostic{Kind: diag.SyntaxError, Found: err.Error()})
		}
		return res
	}
	res.Program = prog

	res.Diagnostics = append(res.Diagnostics, semantic.Analyze(prog)...)
	return res
}

// CheckFile reads a .pas file and runs Check on it.
func CheckFile(path string, opts Options) (*Result, error) {
	if err := validateExtension(path); err != nil {
		return nil, err
	}
	content, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return Check(content, opts), nil
}

// Format parses src and prints it back in canonical form. Semantic problems
// do not prevent formatting; lexical and syntax errors do.
func Format(src string, opts Options) (string, error) {
	res := Check(src, opts)
	if res.Program == nil || res.Diagnostics.CountPhase(diag.PhaseLexical) > 0 {
		return "", res.Diagnostics.Err()
	}
	em := emitter.NewEmitter()
	out := em.Emit(res.Program)
	if errs := em.Errors(); len(errs) > 0 {
		return "", fmt.Errorf("emitter errors: %v", errs)
	}
	return out, nil
}

// FormatFile formats a .pas file, rewriting it in place when write is set.
func FormatFile(path string, opts Options, write bool) (string, error) {
	if err := validateExtension(path); err != nil {
		return "", err
	}
	content, err := readSource(path)
	if err != nil {
		return "", err
	}
	out, err := Format(content, opts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if write {
		if err := writeOutput(out, path); err != nil {
			return "", err
		}
	}
	return out, nil
}

func validateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return fmt.Errorf("source must have %s extension: %s", SourceExt, path)
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}
	return string(b), nil
}

func writeOutput(src, path string) error {
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	return os.WriteFile(path, []byte(src), 0o644)
}

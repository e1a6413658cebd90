// Package report renders diagnostics for people (text) and tools (yaml).
package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arnavsurve/pasfront/internal/compiler/diag"
	"github.com/arnavsurve/pasfront/internal/config"
)

// FileReport is the outcome of checking one file.
type FileReport struct {
	File        string    `yaml:"file"`
	OK          bool      `yaml:"ok"`
	Diagnostics diag.List `yaml:"diagnostics"`
}

func NewFileReport(file string, list diag.List) FileReport {
	return FileReport{File: file, OK: len(list) == 0, Diagnostics: list}
}

type Renderer struct {
	format string
	styles styles
	w      io.Writer
}

func NewRenderer(w io.Writer, format string, color bool) (*Renderer, error) {
	switch format {
	case config.FormatText, config.FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return &Renderer{format: format, styles: newStyles(w, color), w: w}, nil
}

// Render writes every report. Text output is one line per diagnostic;
// YAML output is a single sequence of file reports.
func (r *Renderer) Render(reports []FileReport) error {
	if r.format == config.FormatYAML {
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	}

	for _, rep := range reports {
		for _, d := range rep.Diagnostics {
			if _, err := fmt.Fprintln(r.w, r.textLine(rep.File, d)); err != nil {
				return err
			}
		}
	}
	return nil
}

// textLine -> prog.pas:3:5: TypeMismatch: variable 'x' is INTEGER but is assigned STRING
func (r *Renderer) textLine(file string, d *diag.Diagnostic) string {
	pos := fmt.Sprintf("%s:%d:%d:", file, d.Line, d.Column)
	kind := d.Kind.String() + ":"
	switch d.Kind.Phase() {
	case diag.PhaseLexical:
		kind = r.styles.lexical.Render(kind)
	case diag.PhaseSyntax:
		kind = r.styles.syntax.Render(kind)
	default:
		kind = r.styles.semantic.Render(kind)
	}
	return r.styles.position.Render(pos) + " " + kind + " " + d.Message()
}

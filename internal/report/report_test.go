package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"gopkg.in/yaml.v3"

	"github.com/arnavsurve/pasfront/internal/compiler/diag"
	"github.com/arnavsurve/pasfront/internal/config"
)

var sample = diag.List{
	{Kind: diag.TypeMismatch, Line: 1, Column: 34, Name: "x", Expected: "INTEGER", Found: "STRING"},
	{Kind: diag.SyntaxError, Line: 2, Column: 1, Expected: "SEMICOLON", Found: "END"},
}

func TestNewRenderer_UnknownFormat(t *testing.T) {
	_, err := NewRenderer(&bytes.Buffer{}, "xml", false)
	be.Err(t, err, "unknown output format")
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf, config.FormatText, false)
	be.Err(t, err, nil)

	err = r.Render([]FileReport{NewFileReport("prog.pas", sample), NewFileReport("ok.pas", nil)})
	be.Err(t, err, nil)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	be.Equal(t, len(lines), 2)
	be.Equal(t, lines[0], "prog.pas:1:34: TypeMismatch: variable 'x' is INTEGER but is assigned STRING")
	be.Equal(t, lines[1], "prog.pas:2:1: SyntaxError: expected SEMICOLON, found END")
}

func TestRender_TextColorToBuffer(t *testing.T) {
	// A buffer is not a terminal, so the renderer falls back to plain text.
	var buf bytes.Buffer
	r, err := NewRenderer(&buf, config.FormatText, true)
	be.Err(t, err, nil)
	be.Err(t, r.Render([]FileReport{NewFileReport("prog.pas", sample[:1])}), nil)
	be.True(t, strings.Contains(buf.String(), "TypeMismatch:"))
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf, config.FormatYAML, false)
	be.Err(t, err, nil)
	be.Err(t, r.Render([]FileReport{NewFileReport("prog.pas", sample), NewFileReport("ok.pas", nil)}), nil)

	var got []struct {
		File        string `yaml:"file"`
		OK          bool   `yaml:"ok"`
		Diagnostics []struct {
			Kind     string `yaml:"kind"`
			Phase    string `yaml:"phase"`
			Line     int    `yaml:"line"`
			Name     string `yaml:"name"`
			Expected string `yaml:"expected"`
			Found    string `yaml:"found"`
		} `yaml:"diagnostics"`
	}
	be.Err(t, yaml.Unmarshal(buf.Bytes(), &got), nil)
	be.Equal(t, len(got), 2)

	be.Equal(t, got[0].File, "prog.pas")
	be.Equal(t, got[0].OK, false)
	be.Equal(t, len(got[0].Diagnostics), 2)
	be.Equal(t, got[0].Diagnostics[0].Kind, "TypeMismatch")
	be.Equal(t, got[0].Diagnostics[0].Phase, "semantic")
	be.Equal(t, got[0].Diagnostics[0].Name, "x")
	be.Equal(t, got[0].Diagnostics[1].Kind, "SyntaxError")
	be.Equal(t, got[0].Diagnostics[1].Phase, "syntax")
	be.Equal(t, got[0].Diagnostics[1].Line, 2)

	be.Equal(t, got[1].File, "ok.pas")
	be.True(t, got[1].OK)
	be.Equal(t, len(got[1].Diagnostics), 0)
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewProgress(&buf, false, false)
	quiet.Step("checking %s", "a.pas")
	quiet.Done("a.pas")
	be.Equal(t, buf.String(), "")

	quiet.Failed("a.pas")
	be.Equal(t, buf.String(), "✘ a.pas\n")

	buf.Reset()
	loud := NewProgress(&buf, true, false)
	loud.Step("checking %s", "a.pas")
	loud.Done("a.pas")
	be.Equal(t, buf.String(), "↪ checking a.pas ...\n✔︎ a.pas\n")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	be.Err(t, os.WriteFile(path, []byte(content), 0o644), nil)
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	be.Equal(t, cfg.Output.Format, FormatText)
	be.Equal(t, cfg.Lexer.FailFast, false)
	be.Equal(t, cfg.Output.NoColor, false)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "pasfront.toml", `
[lexer]
fail_fast = true

[output]
format = "yaml"
no_color = true
`)
	cfg, err := Load(path)
	be.Err(t, err, nil)
	be.True(t, cfg.Lexer.FailFast)
	be.Equal(t, cfg.Output.Format, FormatYAML)
	be.True(t, cfg.Output.NoColor)
}

func TestLoad_YAML(t *testing.T) {
	for _, name := range []string{"pasfront.yaml", "pasfront.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, "lexer:\n  fail_fast: true\noutput:\n  verbose: true\n")
			cfg, err := Load(path)
			be.Err(t, err, nil)
			be.True(t, cfg.Lexer.FailFast)
			be.True(t, cfg.Output.Verbose)
			be.Equal(t, cfg.Output.Format, FormatText)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown extension", "pasfront.json", `{}`},
		{"bad toml", "pasfront.toml", "[lexer\nfail_fast = 1"},
		{"bad yaml", "pasfront.yaml", "lexer: [unclosed"},
		{"bad format", "pasfront.toml", "[output]\nformat = \"xml\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			be.Err(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	be.Err(t, err, "config file not found")
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Resolve("", dir)
	be.Err(t, err, nil)
	be.Equal(t, cfg, Default())

	path := filepath.Join(dir, DefaultFileName)
	be.Err(t, os.WriteFile(path, []byte("[lexer]\nfail_fast = true\n"), 0o644), nil)
	cfg, err = Resolve("", dir)
	be.Err(t, err, nil)
	be.True(t, cfg.Lexer.FailFast)
}

func TestEncodeTOML_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Lexer.FailFast = true

	data, err := cfg.EncodeTOML()
	be.Err(t, err, nil)

	path := writeFile(t, DefaultFileName, string(data))
	loaded, err := Load(path)
	be.Err(t, err, nil)
	be.Equal(t, loaded, cfg)
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/pasfront/internal/compiler"
	"github.com/arnavsurve/pasfront/internal/config"
	"github.com/arnavsurve/pasfront/internal/report"
)

// ErrDiagnostics is returned when a command ran to completion but reported
// problems in its input. The diagnostics have already been printed.
var ErrDiagnostics = errors.New("diagnostics reported")

var (
	configPath string
	formatFlag string
	noColor    bool
	failFast   bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "pasfront",
	Short: "Lexer, parser and checker for a small Pascal dialect",
	Long: `pasfront reads .pas programs and reports lexical, syntax and semantic
problems without compiling them.

Commands:
  check   Check one or more .pas files
  tokens  Print the token stream of a file
  ast     Print the syntax tree of a file
  fmt     Print a file in canonical form
  init    Scaffold a new program and config file
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.toml, .yaml); defaults to ./"+config.DefaultFileName+" when present")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", config.FormatText, "diagnostic output format: text or yaml")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&failFast, "fail-fast", false, "stop at the first lexical error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress to stderr")

	rootCmd.AddCommand(CheckCmd, TokensCmd, ASTCmd, FmtCmd, InitCmd)
}

// settings is the config file overlaid with any flags set on the command line.
func settings(cmd *cobra.Command) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(configPath, wd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = formatFlag
	}
	if flags.Changed("no-color") {
		cfg.Output.NoColor = noColor
	}
	if flags.Changed("fail-fast") {
		cfg.Lexer.FailFast = failFast
	}
	if flags.Changed("verbose") {
		cfg.Output.Verbose = verbose
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func compilerOptions(cfg *config.Config) compiler.Options {
	return compiler.Options{FailFastLexing: cfg.Lexer.FailFast}
}

func progress(cmd *cobra.Command, cfg *config.Config) *report.Progress {
	return report.NewProgress(cmd.ErrOrStderr(), cfg.Output.Verbose, !cfg.Output.NoColor)
}

// renderDiagnostics prints the reports to w in the configured format.
func renderDiagnostics(w io.Writer, cfg *config.Config, reports ...report.FileReport) error {
	r, err := report.NewRenderer(w, cfg.Output.Format, !cfg.Output.NoColor)
	if err != nil {
		return err
	}
	return r.Render(reports)
}

// loadProgram checks path and prints its diagnostics to stderr when the
// tree could not be built.
func loadProgram(cmd *cobra.Command, cfg *config.Config, path string) (*compiler.Result, error) {
	res, err := compiler.CheckFile(path, compilerOptions(cfg))
	if err != nil {
		return nil, err
	}
	if res.Program == nil {
		if err := renderDiagnostics(cmd.ErrOrStderr(), cfg, report.NewFileReport(path, res.Diagnostics)); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", path, ErrDiagnostics)
	}
	return res, nil
}

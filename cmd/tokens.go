package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/pasfront/internal/compiler"
	"github.com/arnavsurve/pasfront/internal/compiler/diag"
	"github.com/arnavsurve/pasfront/internal/report"
)

// tokens: dump the lexer output
var TokensCmd = &cobra.Command{
	Use:   "tokens <file.pas>",
	Short: "Print the tokens of a .pas file, one per line",
	Args:  cobra.ExactArgs(1),
	RunE:  tokensRun,
}

func tokensRun(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	progress(cmd, cfg).Step("tokenizing %s", path)

	res, err := compiler.CheckFile(path, compilerOptions(cfg))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, tok := range res.Tokens {
		fmt.Fprintln(out, tok.String())
	}

	var lexical diag.List
	for _, d := range res.Diagnostics {
		if d.Kind.Phase() == diag.PhaseLexical {
			lexical = append(lexical, d)
		}
	}
	if len(lexical) == 0 {
		return nil
	}
	if err := renderDiagnostics(cmd.ErrOrStderr(), cfg, report.NewFileReport(path, lexical)); err != nil {
		return err
	}
	return fmt.Errorf("%s: %w", path, ErrDiagnostics)
}

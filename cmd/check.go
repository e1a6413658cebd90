package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/pasfront/internal/compiler"
	"github.com/arnavsurve/pasfront/internal/compiler/diag"
	"github.com/arnavsurve/pasfront/internal/report"
)

// check: run every phase over .pas files
var CheckCmd = &cobra.Command{
	Use:   "check <file.pas>...",
	Short: "Check .pas files and report every problem found",
	Args:  cobra.MinimumNArgs(1),
	RunE:  checkRun,
}

func checkRun(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	prog := progress(cmd, cfg)

	var reports []report.FileReport
	failed := false
	for _, path := range args {
		prog.Step("checking %s", path)

		res, err := compiler.CheckFile(path, compilerOptions(cfg))
		if err != nil {
			return err
		}
		res.Diagnostics.Sort()
		reports = append(reports, report.NewFileReport(path, res.Diagnostics))

		if res.OK() {
			prog.Done("%s", path)
			continue
		}
		failed = true
		prog.Failed("%s: %d lexical, %d syntax, %d semantic", path,
			res.Diagnostics.CountPhase(diag.PhaseLexical),
			res.Diagnostics.CountPhase(diag.PhaseSyntax),
			res.Diagnostics.CountPhase(diag.PhaseSemantic))
	}

	if err := renderDiagnostics(cmd.OutOrStdout(), cfg, reports...); err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("check: %w", ErrDiagnostics)
	}
	return nil
}

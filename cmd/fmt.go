package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/pasfront/internal/compiler"
)

var writeInPlace bool

// fmt: print canonical source
var FmtCmd = &cobra.Command{
	Use:   "fmt <file.pas>",
	Short: "Print a .pas file in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE:  fmtRun,
}

func init() {
	FmtCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "rewrite the file instead of printing it")
}

func fmtRun(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	prog := progress(cmd, cfg)
	prog.Step("formatting %s", path)

	// Surface lexical and syntax problems the same way check does.
	if _, err := loadProgram(cmd, cfg, path); err != nil {
		return err
	}

	out, err := compiler.FormatFile(path, compilerOptions(cfg), writeInPlace)
	if err != nil {
		return err
	}
	if writeInPlace {
		prog.Done("wrote %s", path)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

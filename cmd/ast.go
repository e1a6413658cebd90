package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/pasfront/internal/compiler/ast"
)

var sexpr bool

// ast: dump the syntax tree
var ASTCmd = &cobra.Command{
	Use:   "ast <file.pas>",
	Short: "Print the syntax tree of a .pas file",
	Args:  cobra.ExactArgs(1),
	RunE:  astRun,
}

func init() {
	ASTCmd.Flags().BoolVar(&sexpr, "sexpr", false, "print the tree as an S-expression")
}

func astRun(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	progress(cmd, cfg).Step("parsing %s", path)

	res, err := loadProgram(cmd, cfg, path)
	if err != nil {
		return err
	}
	if sexpr {
		fmt.Fprintln(cmd.OutOrStdout(), ast.SExpr(res.Program))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Program.String())
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/pasfront/internal/compiler"
	"github.com/arnavsurve/pasfront/internal/config"
)

var initDir string

// init: scaffold a new program
var InitCmd = &cobra.Command{
	Use:   "init <program-name>",
	Short: "Scaffold a new .pas program and a " + config.DefaultFileName,
	Args:  cobra.ExactArgs(1),
	RunE:  initRun,
}

func init() {
	InitCmd.Flags().StringVarP(&initDir, "dir", "d", ".", "directory to create the files in")
}

const programTemplate = `program %s;

var
  i, total: integer;

begin
  total := 0;
  for i := 1 to 10 do
    total := total + i;
end.
`

func initRun(cmd *cobra.Command, args []string) error {
	name := args[0]
	fmt.Fprintf(cmd.ErrOrStderr(), "↪ scaffolding new program %q ...\n", name)

	if err := os.MkdirAll(initDir, 0o755); err != nil {
		return err
	}

	srcPath := filepath.Join(initDir, name+compiler.SourceExt)
	if err := writeNew(srcPath, []byte(fmt.Sprintf(programTemplate, name))); err != nil {
		return err
	}

	data, err := config.Default().EncodeTOML()
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(initDir, config.DefaultFileName)
	if err := writeNew(cfgPath, data); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "✔︎ wrote %s and %s\n", srcPath, cfgPath)
	return nil
}

// writeNew refuses to overwrite an existing file.
func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s already exists", path)
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

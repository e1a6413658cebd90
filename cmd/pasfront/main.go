package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arnavsurve/pasfront/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil && !errors.Is(err, cmd.ErrDiagnostics) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// exitCode is 1 when diagnostics were reported and 2 for any other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cmd.ErrDiagnostics):
		return 1
	}
	return 2
}

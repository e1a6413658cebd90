package report

import (
	"fmt"
	"io"
)

// Progress prints the CLI's step lines. With verbose off only failures
// are printed.
type Progress struct {
	w       io.Writer
	verbose bool
	styles  styles
}

func NewProgress(w io.Writer, verbose, color bool) *Progress {
	return &Progress{w: w, verbose: verbose, styles: newStyles(w, color)}
}

// Step -> ↪ checking prog.pas ...
func (p *Progress) Step(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintln(p.w, p.styles.step.Render("↪ "+fmt.Sprintf(format, args...)+" ..."))
}

// Done -> ✔︎ prog.pas
func (p *Progress) Done(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintln(p.w, p.styles.done.Render("✔︎ "+fmt.Sprintf(format, args...)))
}

// Failed always prints, verbose or not.
func (p *Progress) Failed(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.failed.Render("✘ "+fmt.Sprintf(format, args...)))
}

package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color Palette
var (
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorAccent  = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
)

// styles is the set of styles bound to one output. With color off every
// style renders its input unchanged.
type styles struct {
	position lipgloss.Style
	lexical  lipgloss.Style
	syntax   lipgloss.Style
	semantic lipgloss.Style
	step     lipgloss.Style
	done     lipgloss.Style
	failed   lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		position: r.NewStyle().Foreground(ColorMuted),
		lexical:  r.NewStyle().Foreground(ColorWarning).Bold(true),
		syntax:   r.NewStyle().Foreground(ColorError).Bold(true),
		semantic: r.NewStyle().Foreground(ColorAccent).Bold(true),
		step:     r.NewStyle().Foreground(ColorMuted),
		done:     r.NewStyle().Foreground(ColorSuccess),
		failed:   r.NewStyle().Foreground(ColorError).Bold(true),
	}
}

package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Status icons.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconSkipped = "-"
	IconPending = "•"
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Title     lipgloss.Style
	Code      lipgloss.Style
}

// NewStyles builds styles bound to w. Non-terminal writers get the ASCII
// profile so piped output carries no escape sequences.
func NewStyles(w io.Writer, isTTY bool) *Styles {
	lr := lipgloss.NewRenderer(w)
	if !isTTY {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Header:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Subheader: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Success:   lr.NewStyle().Foreground(lipgloss.Color("10")),
		Error:     lr.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning:   lr.NewStyle().Foreground(lipgloss.Color("11")),
		Info:      lr.NewStyle().Foreground(lipgloss.Color("12")),
		Muted:     lr.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:      lr.NewStyle().Bold(true),
		Title:     lr.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Code:      lr.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

func (r *Renderer) statusIcon(status string) (string, lipgloss.Style) {
	switch status {
	case "success", "ok", "written":
		return IconSuccess, r.styles.Success
	case "error", "failed":
		return IconError, r.styles.Error
	case "warning", "duplicate":
		return IconWarning, r.styles.Warning
	case "skipped", "dry-run":
		return IconSkipped, r.styles.Muted
	default:
		return IconPending, r.styles.Info
	}
}

package shell

import "github.com/charmbracelet/lipgloss"

const (
	colorPrompt = "#00d7af"
	colorError  = "#ff5f5f"
	colorName   = "#87d7ff"
	colorMuted  = "#8a8a8a"
)

// Styles collects the lipgloss styles the shell renders with. Replace
// individual entries before passing the set to WithStyles.
type Styles struct {
	Prompt lipgloss.Style
	Error  lipgloss.Style
	Name   lipgloss.Style
	Muted  lipgloss.Style
}

// DefaultStyles returns the standard colour scheme.
func DefaultStyles() *Styles {
	return &Styles{
		Prompt: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorPrompt)),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)),
		Name:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorName)),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)),
	}
}

// render applies st to text when colour output is on, otherwise passes
// the text through untouched so captured output stays byte clean.
func (s *Shell) render(st lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return st.Render(text)
}

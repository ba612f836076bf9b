package cmd

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#8B5CF6") // Violet
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	CaretStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// styler renders text with the palette unless colors are disabled
type styler struct {
	plain bool
}

func (s styler) render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

func (s styler) header(text string) string  { return s.render(HeaderStyle, text) }
func (s styler) success(text string) string { return s.render(SuccessStyle, text) }
func (s styler) failure(text string) string { return s.render(ErrorStyle, text) }
func (s styler) caret(text string) string   { return s.render(CaretStyle, text) }
func (s styler) muted(text string) string   { return s.render(MutedStyle, text) }

package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp produces the transient help bar shown after SPC.
// Once part of a sequence is typed (e.g. "SPC d"), shows the next level.
func RenderKeybindHelp(h *KeyHandler) string {
	if h == nil || !h.LeaderWaiting {
		return ""
	}
	seq := h.Sequence()
	bindings := h.Registry.Bindings(seq)
	if len(bindings) <= 1 {
		return ""
	}

	helpModel := help.New()
	helpModel.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	helpModel.Styles.ShortDesc = Styles.Hint
	helpModel.Styles.ShortSeparator = Styles.Hint

	content := Styles.Hint.Render(seq) + " " + helpModel.ShortHelpView(bindings)
	return Styles.BoxCompact.MarginTop(1).Render(content)
}

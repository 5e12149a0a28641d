package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	projectStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func priorityGlyph(p model.Priority) string {
	t := ui.Current()
	switch p {
	case model.PriorityHigh:
		return errorStyle.Render(t.PrioHigh)
	case model.PriorityLow:
		return mutedStyle.Render(t.PrioLow)
	default:
		return pendingStyle.Render(t.PrioMedium)
	}
}

// todoLine renders a todo the same way in the list and the due-soon view.
func todoLine(td model.Todo) string {
	t := ui.Current()
	box := mutedStyle.Render(t.BoxUnchecked)
	text := td.Text
	if text == "" {
		text = mutedStyle.Render("(empty)")
	}
	if td.Completed {
		box = successStyle.Render(t.BoxChecked)
		text = doneStyle.Render(text)
	}
	line := box + " " + priorityGlyph(td.Priority) + " " + text
	if td.HasDueDate() {
		line += "  " + dueStyle.Render(td.DueDateDisplay())
	}
	return line
}

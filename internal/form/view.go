package form

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"quantovale/lib/quote"
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF88"))

	labelStyle = lipgloss.NewStyle().
			Width(16).
			Foreground(lipgloss.Color("#AAAAAA"))

	focusedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#00FF88"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4444")).
			Bold(true)

	priceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFAA00"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
)

const (
	submitLabel = "Calculate price"
	busyLabel   = "Processing..."
)

// View renders the full-screen TUI.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	d := m.Display()

	var b strings.Builder
	b.WriteString(titleStyle.Render("QuantoVale"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("how much is your used product worth?"))
	b.WriteString("\n\n")

	b.WriteString(m.field(focusProduct, "Product", m.product, "e.g. PlayStation 5"))
	b.WriteString(m.field(focusYear, "Purchase year", m.year, "e.g. 2020"))
	b.WriteString(m.field(
		focusCondition,
		"Condition",
		fmt.Sprintf("< %s >", quote.ConditionLabel(m.conditionValue())),
		"",
	))
	b.WriteString("\n")

	button := "[ " + submitLabel + " ]"
	switch {
	case d.Busy:
		button = dimStyle.Render("[ " + busyLabel + " ]")
	case m.focus == focusSubmit:
		button = focusedStyle.Render(button)
	}
	b.WriteString(button)
	b.WriteString("\n\n")

	switch {
	case d.Price != "":
		b.WriteString("Estimated price: " + priceStyle.Render(d.Price))
	case d.Error != "":
		b.WriteString(errStyle.Render(d.Error))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("tab/↑↓ move • ←/→ condition • enter submit • esc quit"))

	return panelStyle.Render(b.String())
}

func (m Model) field(f focus, label, value, placeholder string) string {
	shown := value
	if shown == "" && placeholder != "" {
		shown = dimStyle.Render(placeholder)
	}
	if m.focus == f {
		shown = focusedStyle.Render(value + "_")
	}
	return labelStyle.Render(label) + shown + "\n"
}

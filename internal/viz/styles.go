package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Panel is the bordered box used for the definitions screen.
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	Warning = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))

	ErrorText = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	// Label and Value render "name: value" result lines.
	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))

	Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ccff")).
		Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

// Definition is one glossary entry of the definitions screen.
type Definition struct {
	Term string
	Text string
}

var Definitions = []Definition{
	{"Minima", "A point on the graph where the function changes from decreasing to increasing. It represents the lowest point in a certain interval."},
	{"Maxima", "A point on the graph where the function changes from increasing to decreasing. It represents the highest point in a certain interval."},
	{"Saddle Point", "A point where the function does not have a local minimum or maximum, but the slope (derivative) is zero. The function changes direction but not in a way that makes it a peak or a trough."},
}

// DefinitionsPanel renders the numbered definitions inside a panel of the
// given outer width.
func DefinitionsPanel(width int) string {
	inner := width - Panel.GetHorizontalFrameSize()
	if inner < 20 {
		inner = 20
	}
	var b strings.Builder
	b.WriteString(Title.Render("Definitions"))
	for i, d := range Definitions {
		b.WriteString("\n\n")
		entry := lipgloss.NewStyle().Width(inner).Render(
			string(rune('1'+i)) + ". " + lipgloss.NewStyle().Bold(true).Render(d.Term) + ": " + d.Text)
		b.WriteString(entry)
	}
	return Panel.Render(b.String())
}

// Separator draws a muted rule with a centre mark.
func Separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return Subtle.Render(strings.Repeat("─", width))
	}
	return Subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}

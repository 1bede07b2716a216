package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/extrema/internal/critical"
)

// Theme is the color scheme of a plot. Each color has a lipgloss form for
// styled text and an ANSI form for asciigraph series.
type Theme struct {
	Name   string
	Curve  lipgloss.Color
	Maxima lipgloss.Color
	Minima lipgloss.Color
	Saddle lipgloss.Color
	Muted  lipgloss.Color
	// Plain disables series colors in asciigraph output.
	Plain bool

	curveANSI, maximaANSI, minimaANSI, saddleANSI asciigraph.AnsiColor
}

var (
	ThemeClassic = Theme{
		Name:       "classic",
		Curve:      lipgloss.Color("#00ccff"),
		Maxima:     lipgloss.Color("#ff4444"),
		Minima:     lipgloss.Color("#4488ff"),
		Saddle:     lipgloss.Color("#ffcc00"),
		Muted:      lipgloss.Color("#888899"),
		curveANSI:  asciigraph.Default,
		maximaANSI: asciigraph.Red,
		minimaANSI: asciigraph.Blue,
		saddleANSI: asciigraph.Yellow,
	}

	ThemeMono = Theme{
		Name:  "mono",
		Plain: true,
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Color returns the marker color of a classification.
func (t Theme) Color(c critical.Classification) lipgloss.Color {
	switch c {
	case critical.Maxima:
		return t.Maxima
	case critical.Minima:
		return t.Minima
	}
	return t.Saddle
}

func (t Theme) ansi(c critical.Classification) asciigraph.AnsiColor {
	switch c {
	case critical.Maxima:
		return t.maximaANSI
	case critical.Minima:
		return t.minimaANSI
	}
	return t.saddleANSI
}

// Style returns the text style for a classification.
func (t Theme) Style(c critical.Classification) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	if col := t.Color(c); col != "" {
		s = s.Foreground(col)
	}
	return s
}

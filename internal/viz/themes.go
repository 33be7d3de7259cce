package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the live view. Bodies is used for the canvas, Accent for the
// energy plot.
type Theme struct {
	Name   string
	Bodies lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Good   lipgloss.Color
	Warn   lipgloss.Color
	Bad    lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:   "night",
		Bodies: lipgloss.Color("#e0e6ff"),
		Accent: lipgloss.Color("#00ccff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Good:   lipgloss.Color("#00ff88"),
		Warn:   lipgloss.Color("#ffcc00"),
		Bad:    lipgloss.Color("#ff4444"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Bodies: lipgloss.Color("#00ff00"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Good:   lipgloss.Color("#88ff88"),
		Warn:   lipgloss.Color("#ffff00"),
		Bad:    lipgloss.Color("#ff0000"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Bodies: lipgloss.Color("#feca57"),
		Accent: lipgloss.Color("#ff9ff3"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Good:   lipgloss.Color("#5fd068"),
		Warn:   lipgloss.Color("#ffc048"),
		Bad:    lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{ThemeNight, ThemeRetro, ThemeSunset}
)

// GetTheme returns the named theme, or the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

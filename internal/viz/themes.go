package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used for panels and charts.
type Theme struct {
	Name       string
	Title      lipgloss.Color
	Border     lipgloss.Color
	Loan       lipgloss.Color
	Investment lipgloss.Color
	NetWorth   lipgloss.Color
	Muted      lipgloss.Color
	Good       lipgloss.Color
	Bad        lipgloss.Color
}

var (
	ThemeDefault = Theme{
		Name:       "default",
		Title:      lipgloss.Color("#00ffff"),
		Border:     lipgloss.Color("#444466"),
		Loan:       lipgloss.Color("#ff5f5f"),
		Investment: lipgloss.Color("#5fff87"),
		NetWorth:   lipgloss.Color("#00ccff"),
		Muted:      lipgloss.Color("#888899"),
		Good:       lipgloss.Color("#00ff88"),
		Bad:        lipgloss.Color("#ff4444"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Title:      lipgloss.Color("#ffffff"),
		Border:     lipgloss.Color("#888888"),
		Loan:       lipgloss.Color("#cccccc"),
		Investment: lipgloss.Color("#ffffff"),
		NetWorth:   lipgloss.Color("#0088ff"),
		Muted:      lipgloss.Color("#888888"),
		Good:       lipgloss.Color("#00ff00"),
		Bad:        lipgloss.Color("#ff0000"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Title:      lipgloss.Color("#feca57"),
		Border:     lipgloss.Color("#8b6b8c"),
		Loan:       lipgloss.Color("#ff6b6b"),
		Investment: lipgloss.Color("#5fd068"),
		NetWorth:   lipgloss.Color("#ff9ff3"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Good:       lipgloss.Color("#5fd068"),
		Bad:        lipgloss.Color("#ff4757"),
	}

	CurrentTheme = ThemeDefault

	Themes = []Theme{ThemeDefault, ThemeMinimal, ThemeSunset}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

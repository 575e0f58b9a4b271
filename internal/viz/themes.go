package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Snow    lipgloss.Color
	Text    lipgloss.Color
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
}

// Available themes
var (
	ThemeFrost = Theme{
		Name:    "frost",
		Snow:    lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#4a6078"),
		Primary: lipgloss.Color("#60a5fa"),
		Accent:  lipgloss.Color("#e0f2fe"),
		Muted:   lipgloss.Color("#64748b"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffaa00"),
	}

	ThemeMidnight = Theme{
		Name:    "midnight",
		Snow:    lipgloss.Color("#e0f0ff"),
		Text:    lipgloss.Color("#334155"),
		Primary: lipgloss.Color("#0077be"), // Ocean blue
		Accent:  lipgloss.Color("#ffd700"),
		Muted:   lipgloss.Color("#4488aa"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffcc00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Snow:    lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#888888"),
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Muted:   lipgloss.Color("#666666"),
		Running: lipgloss.Color("#00ff00"),
		Paused:  lipgloss.Color("#ffaa00"),
	}

	// All available themes
	Themes = []Theme{
		ThemeFrost,
		ThemeMidnight,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeFrost
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

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

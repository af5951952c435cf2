package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the monitor
type Theme struct {
	Name      string
	Primary   lipgloss.Color // selected row
	Secondary lipgloss.Color // header
	Accent    lipgloss.Color // chart
	Text      lipgloss.Color
	Muted     lipgloss.Color // borders
}

var (
	ThemeLattice = Theme{
		Name:      "lattice",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#00ff88"),
		Text:      lipgloss.Color("#dddddd"),
		Muted:     lipgloss.Color("#444466"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#bbbbbb"),
		Muted:     lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#ffd700"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#0077be"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
	}

	CurrentTheme = ThemeLattice

	Themes = []Theme{
		ThemeLattice,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLattice
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

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	SetTheme(names[0])
}

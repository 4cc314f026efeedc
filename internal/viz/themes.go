package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the live view and headings. Bodies are drawn in Primary,
// titles blend from Primary to Secondary.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Error     lipgloss.Color
}

var themes = []Theme{
	{Name: "starfield", Primary: "#fff4d6", Secondary: "#9db4ff", Error: "#ff5c5c"},
	{Name: "nebula", Primary: "#e0a3ff", Secondary: "#ff7ab6", Error: "#ffb347"},
	{Name: "solar", Primary: "#ffd27a", Secondary: "#ff7a3d", Error: "#ff3b30"},
	{Name: "mono", Primary: "#d0d0d0", Secondary: "#7a7a7a", Error: "#ffffff"},
}

// CurrentTheme is what the live view and CLI headings render with.
var CurrentTheme = themes[0]

// GetTheme looks a theme up by name. Unknown names give starfield.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames lists the themes in cycling order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

package ui

import "github.com/charmbracelet/lipgloss"

// ThemePreset is a predefined color theme
type ThemePreset struct {
	Name        string
	Description string
	Config      ThemeConfig
}

// PresetThemeNames defines the display order of themes
var PresetThemeNames = []string{
	"gruvbox",
	"dracula",
	"nord",
	"solarized-light",
	"classic",
}

// PresetThemes contains all predefined themes
var PresetThemes = map[string]ThemePreset{
	"gruvbox": {
		Name:        "gruvbox",
		Description: "Retro groove warm palette (default on dark backgrounds)",
		Config: ThemeConfig{
			Primary:   "#b8bb26", // green
			Secondary: "#83a598", // aqua
			Success:   "#b8bb26",
			Error:     "#fb4934", // red
			Warning:   "#fabd2f", // yellow
			Muted:     "#928374", // gray
			Text:      "#ebdbb2", // foreground
		},
	},
	"dracula": {
		Name:        "dracula",
		Description: "Popular dark theme with purple accents",
		Config: ThemeConfig{
			Primary:   "#bd93f9", // purple
			Secondary: "#8be9fd", // cyan
			Success:   "#50fa7b", // green
			Error:     "#ff5555", // red
			Warning:   "#f1fa8c", // yellow
			Muted:     "#6272a4", // comment grey
			Text:      "#f8f8f2", // foreground
		},
	},
	"nord": {
		Name:        "nord",
		Description: "Arctic, north-bluish color palette",
		Config: ThemeConfig{
			Primary:   "#88c0d0", // frost cyan
			Secondary: "#81a1c1", // frost blue
			Success:   "#a3be8c", // aurora green
			Error:     "#bf616a", // aurora red
			Warning:   "#ebcb8b", // aurora yellow
			Muted:     "#4c566a", // polar night
			Text:      "#eceff4", // snow storm
		},
	},
	"solarized-light": {
		Name:        "solarized-light",
		Description: "Solarized for light backgrounds (default on light backgrounds)",
		Config: ThemeConfig{
			Primary:   "#268bd2", // blue
			Secondary: "#2aa198", // cyan
			Success:   "#859900", // green
			Error:     "#dc322f", // red
			Warning:   "#b58900", // yellow
			Muted:     "#93a1a1", // base1
			Text:      "#586e75", // base01
		},
	},
	"classic": {
		Name:        "classic",
		Description: "Classic green terminal style",
		Config: ThemeConfig{
			Primary:   "10",  // bright green
			Secondary: "4",   // blue
			Success:   "10",
			Error:     "9",   // bright red
			Warning:   "11",  // yellow
			Muted:     "245", // light grey
			Text:      "15",  // white
		},
	},
}

// GetPresetTheme returns a preset by name, falling back to gruvbox.
func GetPresetTheme(name string) *ThemePreset {
	if preset, ok := PresetThemes[name]; ok {
		return &preset
	}
	preset := PresetThemes["gruvbox"]
	return &preset
}

// Theme materializes the preset into a Theme.
func (p *ThemePreset) Theme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color(p.Config.Primary),
		Secondary: lipgloss.Color(p.Config.Secondary),
		Success:   lipgloss.Color(p.Config.Success),
		Error:     lipgloss.Color(p.Config.Error),
		Warning:   lipgloss.Color(p.Config.Warning),
		Muted:     lipgloss.Color(p.Config.Muted),
		Text:      lipgloss.Color(p.Config.Text),
		Border:    lipgloss.Color(p.Config.Secondary),
	}
}

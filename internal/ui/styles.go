// Package ui renders parsed message blocks as ANSI-styled terminal output.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines the color palette for rendered output
type Theme struct {
	Primary   lipgloss.Color // main accent (inline formulas, emphasis)
	Secondary lipgloss.Color // secondary accent (table borders, markers)
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Muted     lipgloss.Color // dimmed text (thinking sections, placeholders)
	Text      lipgloss.Color // primary text
	Border    lipgloss.Color // table borders and dividers
}

// DefaultTheme returns the default color theme (gruvbox)
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#b8bb26"), // gruvbox green
		Secondary: lipgloss.Color("#83a598"), // gruvbox aqua
		Success:   lipgloss.Color("#b8bb26"),
		Error:     lipgloss.Color("#fb4934"), // gruvbox red
		Warning:   lipgloss.Color("#fabd2f"), // gruvbox yellow
		Muted:     lipgloss.Color("#928374"), // gruvbox gray
		Text:      lipgloss.Color("#ebdbb2"), // gruvbox foreground
		Border:    lipgloss.Color("#83a598"), // matches secondary
	}
}

// ThemeConfig mirrors config.ThemeConfig for applying overrides.
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB).
type ThemeConfig struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Warning   string
	Muted     string
	Text      string
}

// ThemeFromConfig creates a theme from the named preset with config
// overrides applied. An empty preset picks the background-appropriate
// default.
func ThemeFromConfig(preset string, cfg ThemeConfig) *Theme {
	if preset == "" {
		preset = DefaultPresetName()
	}
	theme := GetPresetTheme(preset).Theme()

	if cfg.Primary != "" {
		theme.Primary = lipgloss.Color(cfg.Primary)
	}
	if cfg.Secondary != "" {
		theme.Secondary = lipgloss.Color(cfg.Secondary)
		theme.Border = lipgloss.Color(cfg.Secondary) // border follows secondary
	}
	if cfg.Success != "" {
		theme.Success = lipgloss.Color(cfg.Success)
	}
	if cfg.Error != "" {
		theme.Error = lipgloss.Color(cfg.Error)
	}
	if cfg.Warning != "" {
		theme.Warning = lipgloss.Color(cfg.Warning)
	}
	if cfg.Muted != "" {
		theme.Muted = lipgloss.Color(cfg.Muted)
	}
	if cfg.Text != "" {
		theme.Text = lipgloss.Color(cfg.Text)
	}
	return theme
}

// DefaultPresetName picks the default preset for the ambient terminal
// background. The appearance flag only affects rendering, never parsing.
func DefaultPresetName() string {
	if termenv.HasDarkBackground() {
		return "gruvbox"
	}
	return "solarized-light"
}

// Styles holds styled text helpers bound to a renderer
type Styles struct {
	renderer *lipgloss.Renderer
	theme    *Theme

	Text     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Formula  lipgloss.Style
	Thinking lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableBorder lipgloss.Style
}

// NewStyles creates a Styles instance for the given output
func NewStyles(output *os.File, theme *Theme) *Styles {
	r := lipgloss.NewRenderer(output)

	return &Styles{
		renderer: r,
		theme:    theme,

		Text: r.NewStyle().
			Foreground(theme.Text),

		Muted: r.NewStyle().
			Foreground(theme.Muted),

		Error: r.NewStyle().
			Foreground(theme.Error),

		Success: r.NewStyle().
			Foreground(theme.Success),

		Formula: r.NewStyle().
			Italic(true).
			Foreground(theme.Primary),

		Thinking: r.NewStyle().
			Italic(true).
			Foreground(theme.Muted),

		TableHeader: r.NewStyle().
			Bold(true).
			Foreground(theme.Text),

		TableCell: r.NewStyle().
			Foreground(theme.Text),

		TableBorder: r.NewStyle().
			Foreground(theme.Border),
	}
}

// Theme returns the theme used by these styles
func (s *Styles) Theme() *Theme {
	return s.theme
}

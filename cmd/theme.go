package cmd

import (
	"github.com/mvela/chatblocks/internal/config"
	"github.com/mvela/chatblocks/internal/ui"
)

// themeFromConfig builds the UI theme from the configured preset plus any
// individual color overrides.
func themeFromConfig(cfg *config.Config) *ui.Theme {
	return ui.ThemeFromConfig(cfg.Theme.Preset, ui.ThemeConfig{
		Primary:   cfg.Theme.Primary,
		Secondary: cfg.Theme.Secondary,
		Success:   cfg.Theme.Success,
		Error:     cfg.Theme.Error,
		Warning:   cfg.Theme.Warning,
		Muted:     cfg.Theme.Muted,
		Text:      cfg.Theme.Text,
	})
}

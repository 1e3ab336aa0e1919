package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Theme  ThemeConfig  `mapstructure:"theme"`
	Images ImagesConfig `mapstructure:"images"`
}

// RenderConfig controls block rendering
type RenderConfig struct {
	Width          int  `mapstructure:"width"`           // wrap width; 0 uses terminal width
	ExpandThinking bool `mapstructure:"expand_thinking"` // show thinking sections in full
	Images         bool `mapstructure:"images"`          // emit inline images when the terminal supports them
}

// ThemeConfig allows customization of UI colors
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ThemeConfig struct {
	Preset    string `mapstructure:"preset"`    // preset name; empty picks by terminal background
	Primary   string `mapstructure:"primary"`   // main accent (formulas, highlights)
	Secondary string `mapstructure:"secondary"` // secondary accent (table borders)
	Success   string `mapstructure:"success"`   // success states
	Error     string `mapstructure:"error"`     // error states
	Warning   string `mapstructure:"warning"`   // warnings
	Muted     string `mapstructure:"muted"`     // dimmed text (thinking, placeholders)
	Text      string `mapstructure:"text"`      // primary text
}

// ImagesConfig configures the image store
type ImagesConfig struct {
	Path string `mapstructure:"path"` // sqlite database path; empty uses the data dir
}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("render.width", 0)
	viper.SetDefault("render.expand_thinking", false)
	viper.SetDefault("render.images", true)
	// theme.preset defaults to empty, picking by terminal background

	// Read config file (optional - won't error if missing)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ApplyOverrides applies command-line overrides to the config.
func (c *Config) ApplyOverrides(width int, expandThinking, images bool) {
	if width > 0 {
		c.Render.Width = width
	}
	if expandThinking {
		c.Render.ExpandThinking = true
	}
	if !images {
		c.Render.Images = false
	}
}

// StorePath returns the effective image database path.
func (c *Config) StorePath() string {
	if c.Images.Path != "" {
		return expandHome(c.Images.Path)
	}
	return filepath.Join(GetDataDir(), "images.db")
}

func expandHome(s string) string {
	if len(s) >= 2 && s[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, s[2:])
		}
	}
	return s
}

// GetConfigDir returns the XDG config directory for chatblocks.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "chatblocks"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "chatblocks"), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// GetDataDir returns the XDG data directory for chatblocks.
// Uses $XDG_DATA_HOME if set, otherwise ~/.local/share
func GetDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "chatblocks")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "chatblocks-data") // fallback
	}
	return filepath.Join(homeDir, ".local", "share", "chatblocks")
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Save writes a starter config to disk
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := fmt.Sprintf(`render:
  # Wrap width for prose; 0 uses the terminal width
  width: %d
  # Show thinking sections in full instead of a one-line marker
  expand_thinking: %t
  # Emit inline images when the terminal supports them
  images: %t

theme:
  # Preset name: gruvbox, dracula, nord, solarized-light, classic
  # Empty picks gruvbox or solarized-light by terminal background
  preset: "%s"
  # Individual color overrides (ANSI 0-255 or #RRGGBB)
  # primary: "#b8bb26"
  # secondary: "#83a598"

images:
  # SQLite database holding referenced images
  # path: ~/.local/share/chatblocks/images.db
`, cfg.Render.Width, cfg.Render.ExpandThinking, cfg.Render.Images, cfg.Theme.Preset)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

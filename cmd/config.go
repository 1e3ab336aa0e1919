package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mvela/chatblocks/internal/config"
	"github.com/mvela/chatblocks/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage chatblocks configuration",
	Long: `View or edit your chatblocks configuration.

Examples:
  chatblocks config                   # show current config
  chatblocks config edit              # edit in $EDITOR
  chatblocks config init              # write a starter config
  chatblocks config themes            # list theme presets`,
	RunE: configShow, // Default to show
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	RunE:  configPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file in $EDITOR",
	RunE:  configEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	RunE:  configInit,
}

var configThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available theme presets",
	RunE:  configThemes,
}

var themesYAML bool

func init() {
	configThemesCmd.Flags().BoolVar(&themesYAML, "yaml", false, "Print preset palettes as YAML for use as overrides")
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configThemesCmd)
	rootCmd.AddCommand(configCmd)
}

// configYAML mirrors config.Config with yaml tags for display.
type configYAML struct {
	Render struct {
		Width          int  `yaml:"width"`
		ExpandThinking bool `yaml:"expand_thinking"`
		Images         bool `yaml:"images"`
	} `yaml:"render"`
	Theme struct {
		Preset    string `yaml:"preset,omitempty"`
		Primary   string `yaml:"primary,omitempty"`
		Secondary string `yaml:"secondary,omitempty"`
		Success   string `yaml:"success,omitempty"`
		Error     string `yaml:"error,omitempty"`
		Warning   string `yaml:"warning,omitempty"`
		Muted     string `yaml:"muted,omitempty"`
		Text      string `yaml:"text,omitempty"`
	} `yaml:"theme"`
	Images struct {
		Path string `yaml:"path"`
	} `yaml:"images"`
}

func configShow(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Check if file exists
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		fmt.Printf("# No config file (using defaults)\n")
		fmt.Printf("# Create one at: %s\n\n", configPath)
	} else {
		fmt.Printf("# %s\n\n", configPath)
	}

	var out configYAML
	out.Render.Width = cfg.Render.Width
	out.Render.ExpandThinking = cfg.Render.ExpandThinking
	out.Render.Images = cfg.Render.Images
	out.Theme.Preset = cfg.Theme.Preset
	out.Theme.Primary = cfg.Theme.Primary
	out.Theme.Secondary = cfg.Theme.Secondary
	out.Theme.Success = cfg.Theme.Success
	out.Theme.Error = cfg.Theme.Error
	out.Theme.Warning = cfg.Theme.Warning
	out.Theme.Muted = cfg.Theme.Muted
	out.Theme.Text = cfg.Theme.Text
	out.Images.Path = cfg.StorePath()

	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func configPath(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func configEdit(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.Save(&config.Config{Render: config.RenderConfig{Images: true}}); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func configInit(cmd *cobra.Command, args []string) error {
	if config.Exists() {
		path, _ := config.GetConfigPath()
		return fmt.Errorf("config already exists at %s", path)
	}
	if err := config.Save(&config.Config{Render: config.RenderConfig{Images: true}}); err != nil {
		return err
	}
	path, _ := config.GetConfigPath()
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func configThemes(cmd *cobra.Command, args []string) error {
	if !themesYAML {
		current := ui.DefaultPresetName()
		for _, name := range ui.PresetThemeNames {
			marker := "  "
			if name == current {
				marker = "* "
			}
			fmt.Printf("%s%-16s %s\n", marker, name, ui.PresetThemes[name].Description)
		}
		return nil
	}

	// YAML form prints every palette so colors can be copied into the
	// theme section as overrides.
	palettes := make(map[string]map[string]string)
	for _, name := range ui.PresetThemeNames {
		preset := ui.GetPresetTheme(name)
		theme := preset.Theme()
		palettes[name] = map[string]string{
			"primary":   string(theme.Primary),
			"secondary": string(theme.Secondary),
			"success":   string(theme.Success),
			"error":     string(theme.Error),
			"warning":   string(theme.Warning),
			"muted":     string(theme.Muted),
			"text":      string(theme.Text),
		}
	}
	data, err := yaml.Marshal(palettes)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

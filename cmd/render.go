package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mvela/chatblocks/internal/message"
	"github.com/mvela/chatblocks/internal/ui"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a chat message as styled terminal output",
	Long: `Parse a chat message into blocks and render them with syntax
highlighting, table layout and inline images.

Reads from the file argument, or stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var (
	renderWidth          int
	renderTheme          string
	renderExpandThinking bool
	renderNoImages       bool
	renderStorePath      string
)

func init() {
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 0, "Wrap width (default: terminal width)")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "Theme preset (gruvbox, dracula, nord, solarized-light, classic)")
	renderCmd.Flags().BoolVar(&renderExpandThinking, "expand-thinking", false, "Show thinking sections in full")
	renderCmd.Flags().BoolVar(&renderNoImages, "no-images", false, "Render image placeholders instead of inline images")
	renderCmd.Flags().StringVar(&renderStorePath, "store", "", "Image store path (overrides config)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.ApplyOverrides(renderWidth, renderExpandThinking, !renderNoImages)
	if renderTheme != "" {
		cfg.Theme.Preset = renderTheme
	}

	input, err := readInput(args)
	if err != nil {
		return err
	}

	store, err := openStore(cfg, renderStorePath)
	if err != nil {
		// Parsing degrades gracefully without a store: image references
		// stay in the text stream.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var resolver message.Resolver
	if store != nil {
		resolver = store.Resolver()
	}
	blocks := message.Parse(input, resolver)

	styles := ui.NewStyles(os.Stdout, themeFromConfig(cfg))
	opts := []ui.Option{
		ui.WithWidth(effectiveWidth(cfg.Render.Width)),
		ui.WithExpandedThinking(cfg.Render.ExpandThinking),
		ui.WithImages(cfg.Render.Images),
	}
	if store != nil {
		opts = append(opts, ui.WithImageSource(store))
	}

	renderer := ui.NewRenderer(styles, opts...)
	fmt.Print(renderer.Render(blocks))
	return nil
}

// effectiveWidth resolves a zero width to the terminal width, leaving it
// unbounded when stdout is not a terminal.
func effectiveWidth(width int) int {
	if width > 0 {
		return width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 0
}

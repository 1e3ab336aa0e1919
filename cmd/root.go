package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatblocks",
	Short: "Parse and render chat transcripts as terminal output",
	Long: `chatblocks parses streamed chat messages into typed blocks (text, code,
tables, formulas, thinking sections, images) and renders them with
syntax highlighting and terminal graphics.

Examples:
  chatblocks render transcript.md       # render a saved message
  cat message.txt | chatblocks render   # render from stdin
  chatblocks inspect message.txt        # dump parsed blocks as JSON

  chatblocks images add photo.png       # store an image for referencing
  chatblocks config                     # view configuration`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvela/chatblocks/internal/message"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Dump parsed blocks as JSON",
	Long: `Parse a chat message and print the resulting block sequence as JSON,
one object per block. Useful for debugging classification.

Reads from the file argument, or stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

var inspectStorePath string

func init() {
	inspectCmd.Flags().StringVar(&inspectStorePath, "store", "", "Image store path (overrides config)")
	rootCmd.AddCommand(inspectCmd)
}

// blockJSON is the wire shape for inspect output; zero-value fields of
// other block types are omitted.
type blockJSON struct {
	Type   string     `json:"type"`
	Body   string     `json:"body,omitempty"`
	Lang   string     `json:"lang,omitempty"`
	Indent int        `json:"indent,omitempty"`
	Header []string   `json:"header,omitempty"`
	Rows   [][]string `json:"rows,omitempty"`
	Inline bool       `json:"inline,omitempty"`
	Image  string     `json:"image,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	input, err := readInput(args)
	if err != nil {
		return err
	}

	var resolver message.Resolver
	store, err := openStore(cfg, inspectStorePath)
	if err == nil {
		defer store.Close()
		resolver = store.Resolver()
	} else {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	blocks := message.Parse(input, resolver)

	out := make([]blockJSON, 0, len(blocks))
	for _, b := range blocks {
		j := blockJSON{
			Type:   b.Type.String(),
			Body:   b.Body,
			Lang:   b.Lang,
			Indent: b.Indent,
			Header: b.Header,
			Rows:   b.Rows,
			Inline: b.Inline,
		}
		if b.Type == message.BlockImage {
			j.Image = b.ImageID.String()
		}
		out = append(out, j)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

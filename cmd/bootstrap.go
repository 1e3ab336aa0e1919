package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mvela/chatblocks/internal/config"
	"github.com/mvela/chatblocks/internal/imagestore"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openStore opens the image store at the configured (or overridden) path.
func openStore(cfg *config.Config, override string) (*imagestore.Store, error) {
	path := cfg.StorePath()
	if override != "" {
		path = override
	}
	store, err := imagestore.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image store: %w", err)
	}
	return store, nil
}

// readInput reads the message from the named file, or stdin when no file
// is given.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

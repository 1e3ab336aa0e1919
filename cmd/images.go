package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mvela/chatblocks/internal/imagestore"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Manage the image store",
	Long: `Manage the SQLite store of images referenced by chat messages.

Messages reference stored images as <image-uuid>ID</image-uuid> lines;
references to unknown IDs stay in the text stream.

Examples:
  chatblocks images add photo.png
  chatblocks images list
  chatblocks images rm 3e0c7f8a-9f2d-4b1e-8c5a-2d6f1e9b0a47`,
}

var imagesAddCmd = &cobra.Command{
	Use:   "add <file>...",
	Short: "Store images and print their IDs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImagesAdd,
}

var imagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored images, newest first",
	Args:  cobra.NoArgs,
	RunE:  runImagesList,
}

var imagesRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete stored images",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImagesRm,
}

var imagesStorePath string

func init() {
	imagesCmd.PersistentFlags().StringVar(&imagesStorePath, "store", "", "Image store path (overrides config)")
	imagesCmd.AddCommand(imagesAddCmd)
	imagesCmd.AddCommand(imagesListCmd)
	imagesCmd.AddCommand(imagesRmCmd)
	rootCmd.AddCommand(imagesCmd)
}

func runImagesAdd(cmd *cobra.Command, args []string) error {
	store, err := openConfiguredStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		id, err := store.Put(data)
		if err != nil {
			return fmt.Errorf("failed to store %s: %w", path, err)
		}
		fmt.Printf("%s  %s\n", id, path)
	}
	return nil
}

func runImagesList(cmd *cobra.Command, args []string) error {
	store, err := openConfiguredStore()
	if err != nil {
		return err
	}
	defer store.Close()

	images, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list images: %w", err)
	}
	if len(images) == 0 {
		fmt.Println("No stored images.")
		return nil
	}

	for _, img := range images {
		fmt.Printf("%s  %-5s %4dx%-4d %8d bytes  %s\n",
			img.ID, img.Format, img.Width, img.Height, img.Size,
			img.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runImagesRm(cmd *cobra.Command, args []string) error {
	store, err := openConfiguredStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return fmt.Errorf("invalid image id %q: %w", arg, err)
		}
		if err := store.Delete(id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", id, err)
		}
		fmt.Printf("Deleted %s\n", id)
	}
	return nil
}

func openConfiguredStore() (*imagestore.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openStore(cfg, imagesStorePath)
}

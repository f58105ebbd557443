package cli

import (
	"github.com/allscreenshots/allscreenshots-cli/commands"
	"github.com/spf13/cobra"
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Show thumbnails of screenshots",
	Long: `Shows thumbnails of the images in --dir, newest first, or of the most
recent completed API jobs when --dir is not given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		req := commands.GalleryRequest{
			Dir:     galleryDir,
			Limit:   galleryLimit,
			Size:    gallerySize,
			Display: outputOptions(),
		}

		response := commands.GalleryCommand(cmd.Context(), rt, req)
		return finish(response)
	},
}

func init() {
	rootCmd.AddCommand(galleryCmd)

	galleryCmd.Flags().StringVar(&galleryDir, "dir", "", "directory of images to show")
	galleryCmd.Flags().IntVarP(&galleryLimit, "limit", "n", commands.DefaultGalleryLimit, "maximum number of images")
	galleryCmd.Flags().StringVar(&gallerySize, "size", "small", "thumbnail size: small or medium")
}

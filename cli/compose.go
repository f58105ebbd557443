package cli

import (
	"github.com/allscreenshots/allscreenshots-cli/commands"
	"github.com/spf13/cobra"
)

var composeCmd = &cobra.Command{
	Use:   "compose INPUT...",
	Short: "Combine several screenshots into one image",
	Long: `Captures each URL (or reads each existing image file) and stitches the
results into a single image. Layouts: auto, horizontal, vertical and grid.
The composed image is written as png or jpeg.`,
	Example: `  allscreenshots compose https://example.com https://example.org -o side-by-side.png
  allscreenshots compose a.png b.png c.png d.png --layout grid --columns 2 --spacing 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		opts := captureOptions(cmd, "")
		req := commands.ComposeRequest{
			Inputs:     args,
			Layout:     composeLayout,
			Columns:    composeColumns,
			Spacing:    composeSpacing,
			Padding:    composePadding,
			Background: composeBackground,
			Format:     opts.Format,
			Quality:    opts.Quality,
			Options:    opts,
			Output:     outputOptions(),
		}

		response := commands.ComposeCommand(cmd.Context(), rt, req)
		return finish(response)
	},
}

func init() {
	rootCmd.AddCommand(composeCmd)

	addCaptureFlags(composeCmd)
	composeCmd.Flags().StringVar(&composeLayout, "layout", "auto", "auto, horizontal, vertical or grid")
	composeCmd.Flags().IntVar(&composeColumns, "columns", 0, "columns for the grid layout")
	composeCmd.Flags().IntVar(&composeSpacing, "spacing", 0, "pixels between images")
	composeCmd.Flags().IntVar(&composePadding, "padding", 0, "pixels around the composition")
	composeCmd.Flags().StringVar(&composeBackground, "background", "", "background as #RRGGBB or transparent (default white)")
}

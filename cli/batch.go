package cli

import (
	"github.com/allscreenshots/allscreenshots-cli/commands"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [URL...]",
	Short: "Capture many URLs",
	Long: `Captures every URL given as an argument or listed in --file (one per
line, blank lines and lines starting with # are skipped). Images are
written to --output-dir as NNN_domain.ext. Failures are reported and do
not stop the batch; the command exits non-zero if any capture failed.`,
	Example: `  allscreenshots batch https://example.com https://example.org
  allscreenshots batch -f urls.txt --output-dir ./shots --concurrency 8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		req := commands.BatchRequest{
			URLs:        args,
			File:        batchFile,
			OutputDir:   outputDir,
			Concurrency: batchConcurrency,
			Options:     captureOptions(cmd, ""),
		}

		response := commands.BatchCommand(cmd.Context(), rt, req)
		return finish(response)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addCaptureFlags(batchCmd)
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "read URLs from this file")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for the images (default defaults.output_dir)")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", commands.DefaultBatchConcurrency, "captures to run at once (max 8)")
}

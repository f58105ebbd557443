package cli

import (
	"github.com/allscreenshots/allscreenshots-cli/commands"
	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture URL",
	Short: "Capture a screenshot of a web page",
	Long: `Captures a web page through the API and saves it to --output, shows it
inline in the terminal, or both. Without --output and without display the
image is saved under defaults.output_dir.`,
	Example: `  allscreenshots capture https://example.com
  allscreenshots capture example.com --full-page --format jpeg -q 80 -o page.jpg
  allscreenshots capture https://example.com -o s3://my-bucket/shots/home.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCapture(cmd, args[0])
	},
}

// runCapture serves both 'capture URL' and the bare 'allscreenshots URL'.
func runCapture(cmd *cobra.Command, rawURL string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	req := commands.CaptureRequest{
		Options: captureOptions(cmd, rawURL),
		Output:  outputOptions(),
	}

	response := commands.CaptureCommand(cmd.Context(), rt, req)
	return finish(response)
}

var asyncCmd = &cobra.Command{
	Use:   "async URL",
	Short: "Capture a screenshot as a background job",
	Long: `Submits an asynchronous capture job and polls it until it completes,
fails or times out. With --no-poll the job id is printed and the command
returns immediately; fetch the image later with 'jobs result' or 'jobs wait'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		req := commands.AsyncRequest{
			Options:      captureOptions(cmd, args[0]),
			Output:       outputOptions(),
			NoPoll:       noPoll,
			PollInterval: pollInterval,
			Timeout:      pollTimeout,
		}

		response := commands.AsyncCommand(cmd.Context(), rt, req)
		return finish(response)
	},
}

func addPollFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", 0, "how often to check the job status (default 2s)")
	cmd.Flags().DurationVar(&pollTimeout, "timeout", 0, "give up waiting after this long (default 5m)")
}

func init() {
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(asyncCmd)

	addCaptureFlags(captureCmd)

	addCaptureFlags(asyncCmd)
	addPollFlags(asyncCmd)
	asyncCmd.Flags().BoolVar(&noPoll, "no-poll", false, "submit the job and return without waiting")
}

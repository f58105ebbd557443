package cli

import (
	"fmt"
	"path/filepath"

	"github.com/allscreenshots/allscreenshots-cli/commands"
	"github.com/allscreenshots/allscreenshots-cli/daemon"
	"github.com/allscreenshots/allscreenshots-cli/utils"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [URL]",
	Short: "Capture a page repeatedly",
	Long: `Captures URL every --interval until interrupted or until --max-captures
captures were made. A failed capture is reported and the loop continues.

With --detach the watcher runs in the background and logs to a file next
to the config; stop it with 'allscreenshots watch --stop'.`,
	Example: `  allscreenshots watch https://example.com --interval 30s --output-dir ./watch
  allscreenshots watch https://example.com --interval 1m --detach
  allscreenshots watch --stop`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		files := daemon.FilesIn(filepath.Dir(rt.ConfigPath))

		if watchStop {
			response := commands.WatchStopCommand(rt, files)
			return finish(response)
		}

		if len(args) != 1 {
			return fmt.Errorf("watch requires a URL")
		}

		if watchDetach {
			child, release, err := daemon.Daemonize(files)
			if err != nil {
				return err
			}

			if child != nil {
				response := commands.WatchDetachedResponse(rt, child.Pid, files)
				return finish(response)
			}

			defer release()
			utils.Info("detached watch started for %s", args[0])
		}

		req := commands.WatchRequest{
			Options:     captureOptions(cmd, args[0]),
			Interval:    watchInterval,
			OutputDir:   outputDir,
			MaxCaptures: watchMaxCaptures,
			Display:     outputOptions(),
		}

		response := commands.WatchCommand(cmd.Context(), rt, req)
		return finish(response)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addCaptureFlags(watchCmd)
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", commands.DefaultWatchInterval, "time between captures")
	watchCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for the images (default defaults.output_dir)")
	watchCmd.Flags().IntVar(&watchMaxCaptures, "max-captures", 0, "stop after this many captures (0 means no limit)")
	watchCmd.Flags().BoolVar(&watchDetach, "detach", false, "run the watcher in the background")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop the background watcher")

	watchCmd.MarkFlagsMutuallyExclusive("detach", "stop")
}

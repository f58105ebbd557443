package cli

import (
	"github.com/allscreenshots/allscreenshots-cli/commands"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect async capture jobs",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent jobs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.JobsListCommand(cmd.Context(), rt)
		return finish(response)
	},
}

var jobsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.JobsGetCommand(cmd.Context(), rt, args[0])
		return finish(response)
	},
}

var jobsCancelCmd = &cobra.Command{
	Use:   "cancel ID",
	Short: "Cancel a queued or running job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.JobsCancelCommand(cmd.Context(), rt, args[0])
		return finish(response)
	},
}

var jobsResultCmd = &cobra.Command{
	Use:   "result ID",
	Short: "Download the image of a completed job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.JobsResultCommand(cmd.Context(), rt, args[0], outputOptions())
		return finish(response)
	},
}

var jobsWaitCmd = &cobra.Command{
	Use:   "wait ID",
	Short: "Wait for a job to finish and download its image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		req := commands.JobsWaitRequest{
			ID:           args[0],
			Output:       outputOptions(),
			PollInterval: pollInterval,
			Timeout:      pollTimeout,
		}

		response := commands.JobsWaitCommand(cmd.Context(), rt, req)
		return finish(response)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsGetCmd)
	jobsCmd.AddCommand(jobsCancelCmd)
	jobsCmd.AddCommand(jobsResultCmd)
	jobsCmd.AddCommand(jobsWaitCmd)

	addPollFlags(jobsWaitCmd)
}

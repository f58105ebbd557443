package cli

import (
	"github.com/allscreenshots/allscreenshots-cli/commands"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage scheduled captures",
	Long: `Create and manage captures that the API runs on a cron schedule, or run a
schedule locally in the foreground with 'schedule run'.

Cron expressions use five fields (minute hour day-of-month month
day-of-week) or descriptors such as @hourly and @every 30m.`,
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schedules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.ScheduleListCommand(cmd.Context(), rt)
		return finish(response)
	},
}

var scheduleCreateCmd = &cobra.Command{
	Use:     "create URL",
	Short:   "Create a schedule",
	Example: `  allscreenshots schedule create https://example.com --name homepage --cron "0 9 * * 1-5" --timezone Europe/Amsterdam`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		req := commands.ScheduleCreateRequest{
			Name:          scheduleName,
			URL:           args[0],
			Cron:          scheduleCron,
			Timezone:      scheduleTimezone,
			WebhookURL:    scheduleWebhook,
			RetentionDays: scheduleRetentionDays,
			Options:       captureOptions(cmd, args[0]),
		}

		response := commands.ScheduleCreateCommand(cmd.Context(), rt, req)
		return finish(response)
	},
}

var scheduleGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a schedule and its next runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.ScheduleGetCommand(cmd.Context(), rt, args[0])
		return finish(response)
	},
}

var scheduleUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change a schedule",
	Long:  `Changes only the fields whose flags are given.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		req := commands.ScheduleUpdateRequest{ID: args[0]}
		flags := cmd.Flags()
		if flags.Changed("name") {
			req.Name = &scheduleName
		}
		if flags.Changed("url") {
			req.URL = &scheduleURL
		}
		if flags.Changed("cron") {
			req.Cron = &scheduleCron
		}
		if flags.Changed("timezone") {
			req.Timezone = &scheduleTimezone
		}
		if flags.Changed("webhook-url") {
			req.WebhookURL = &scheduleWebhook
		}
		if flags.Changed("retention-days") {
			req.RetentionDays = &scheduleRetentionDays
		}

		response := commands.ScheduleUpdateCommand(cmd.Context(), rt, req)
		return finish(response)
	},
}

var scheduleDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.ScheduleDeleteCommand(cmd.Context(), rt, args[0])
		return finish(response)
	},
}

// scheduleActionCmd builds the pause, resume and trigger commands.
func scheduleActionCmd(action commands.ScheduleAction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			response := commands.ScheduleActionCommand(cmd.Context(), rt, action, args[0])
			return finish(response)
		},
	}
}

var scheduleHistoryCmd = &cobra.Command{
	Use:   "history ID",
	Short: "Show past executions of a schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.ScheduleHistoryCommand(cmd.Context(), rt, args[0], scheduleHistoryLimit)
		return finish(response)
	},
}

var scheduleRunCmd = &cobra.Command{
	Use:   "run URL",
	Short: "Run a schedule locally in the foreground",
	Long: `Captures URL at every activation of --cron until interrupted or until
--max-runs captures were made. Images go to --output-dir.`,
	Example: `  allscreenshots schedule run https://example.com --cron "*/15 * * * *" --output-dir ./hourly`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		req := commands.ScheduleRunRequest{
			Options:   captureOptions(cmd, args[0]),
			Cron:      scheduleCron,
			Timezone:  scheduleTimezone,
			OutputDir: outputDir,
			MaxRuns:   scheduleMaxRuns,
			Display:   outputOptions(),
		}

		response := commands.ScheduleRunCommand(cmd.Context(), rt, req)
		return finish(response)
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleCreateCmd)
	scheduleCmd.AddCommand(scheduleGetCmd)
	scheduleCmd.AddCommand(scheduleUpdateCmd)
	scheduleCmd.AddCommand(scheduleDeleteCmd)
	scheduleCmd.AddCommand(scheduleActionCmd(commands.SchedulePause, "Pause a schedule"))
	scheduleCmd.AddCommand(scheduleActionCmd(commands.ScheduleResume, "Resume a paused schedule"))
	scheduleCmd.AddCommand(scheduleActionCmd(commands.ScheduleTrigger, "Run a schedule now"))
	scheduleCmd.AddCommand(scheduleHistoryCmd)
	scheduleCmd.AddCommand(scheduleRunCmd)

	// schedule create flags
	addCaptureFlags(scheduleCreateCmd)
	scheduleCreateCmd.Flags().StringVar(&scheduleName, "name", "", "schedule name")
	scheduleCreateCmd.Flags().StringVar(&scheduleCron, "cron", "", "cron expression")
	scheduleCreateCmd.Flags().StringVar(&scheduleTimezone, "timezone", "", "IANA timezone for the cron expression (default UTC)")
	scheduleCreateCmd.Flags().StringVar(&scheduleWebhook, "webhook-url", "", "URL notified after each run")
	scheduleCreateCmd.Flags().IntVar(&scheduleRetentionDays, "retention-days", 0, "days to keep results (max 365)")

	// schedule update flags
	scheduleUpdateCmd.Flags().StringVar(&scheduleName, "name", "", "new name")
	scheduleUpdateCmd.Flags().StringVar(&scheduleURL, "url", "", "new URL")
	scheduleUpdateCmd.Flags().StringVar(&scheduleCron, "cron", "", "new cron expression")
	scheduleUpdateCmd.Flags().StringVar(&scheduleTimezone, "timezone", "", "new timezone")
	scheduleUpdateCmd.Flags().StringVar(&scheduleWebhook, "webhook-url", "", "new webhook URL")
	scheduleUpdateCmd.Flags().IntVar(&scheduleRetentionDays, "retention-days", 0, "new retention in days")

	// schedule history flags
	scheduleHistoryCmd.Flags().IntVarP(&scheduleHistoryLimit, "limit", "n", 10, "number of executions to show")

	// schedule run flags
	addCaptureFlags(scheduleRunCmd)
	scheduleRunCmd.Flags().StringVar(&scheduleCron, "cron", "", "cron expression")
	scheduleRunCmd.Flags().StringVar(&scheduleTimezone, "timezone", "", "IANA timezone for the cron expression (default UTC)")
	scheduleRunCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for the images (default defaults.output_dir)")
	scheduleRunCmd.Flags().IntVar(&scheduleMaxRuns, "max-runs", 0, "stop after this many captures (0 means no limit)")
}

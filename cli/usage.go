package cli

import (
	"github.com/allscreenshots/allscreenshots-cli/commands"
	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show API usage and quota",
	Long:  `Shows screenshots and bandwidth used in the current billing period against the plan's quota.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		req := commands.UsageRequest{
			Format:    usageFormat,
			QuotaOnly: usageQuotaOnly,
		}

		response := commands.UsageCommand(cmd.Context(), rt, req)
		return finish(response)
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)

	usageCmd.Flags().StringVar(&usageFormat, "format", commands.UsageFormatGraph, "output format: graph, table or json")
	usageCmd.Flags().BoolVar(&usageQuotaOnly, "quota-only", false, "only show the quota")
}

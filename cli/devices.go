package cli

import (
	"strings"

	"github.com/allscreenshots/allscreenshots-cli/commands"
	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List device presets",
	Long:  `Lists the device presets accepted by --device, grouped into desktop, tablet and mobile.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.DevicesCommand(rt)
		return finish(response)
	},
}

// completeDevice offers preset names in the snake_case form --device accepts.
func completeDevice(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(types.DevicePresets))
	for _, p := range types.DevicePresets {
		name := strings.ToLower(strings.ReplaceAll(p.Name, " ", "_"))
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			names = append(names, name+"\t"+p.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(devicesCmd)

	_ = rootCmd.RegisterFlagCompletionFunc("device", completeDevice)
}

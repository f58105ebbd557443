package cli

import (
	"fmt"
	"strings"

	"github.com/allscreenshots/allscreenshots-cli/commands"
	"github.com/allscreenshots/allscreenshots-cli/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration and the API key",
	Long: `Manage the configuration file and the stored API key.

The API key is taken from --api-key, then ` + config.EnvAPIKey + `, then the
config file, then the OS keyring.`,
}

var configAddAuthTokenCmd = &cobra.Command{
	Use:     "add-authtoken KEY",
	Short:   "Store the API key",
	Long:    `Stores the API key in the config file, or in the OS keyring with --keyring.`,
	Example: `  allscreenshots config add-authtoken as_live_xxxxxxxx`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		req := commands.AddAuthTokenRequest{
			Token:   args[0],
			Keyring: useKeyring,
		}

		response := commands.AddAuthTokenCommand(rt, req)
		return finish(response)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.ConfigShowCommand(rt)
		return finish(response)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.ConfigPathCommand(rt)
		return finish(response)
	},
}

var configRemoveAuthTokenCmd = &cobra.Command{
	Use:   "remove-authtoken",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.RemoveAuthTokenCommand(rt)
		return finish(response)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a config value",
	Long:  fmt.Sprintf("Sets a config value. Keys: %s.", strings.Join(config.Keys(), ", ")),
	Example: `  allscreenshots config set defaults.device iphone_14
  allscreenshots config set display.protocol blocks`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return config.Keys(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.ConfigSetCommand(rt, args[0], args[1])
		return finish(response)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print a config value",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return config.Keys(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		response := commands.ConfigGetCommand(rt, args[0])
		return finish(response)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configAddAuthTokenCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configRemoveAuthTokenCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)

	configAddAuthTokenCmd.Flags().BoolVar(&useKeyring, "keyring", false, "store the key in the OS keyring instead of the config file")
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/allscreenshots/allscreenshots-cli/api"
	"github.com/allscreenshots/allscreenshots-cli/commands"
	"github.com/allscreenshots/allscreenshots-cli/config"
	"github.com/allscreenshots/allscreenshots-cli/daemon"
	"github.com/allscreenshots/allscreenshots-cli/render"
	"github.com/allscreenshots/allscreenshots-cli/ui"
	"github.com/allscreenshots/allscreenshots-cli/utils"
	"github.com/spf13/cobra"
)

var version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "allscreenshots [URL]",
	Short: "Capture website screenshots from the terminal",
	Long: `A command-line client for the AllScreenshots API.

Capture pages synchronously or as background jobs, run batches, compose
several captures into one image, manage schedules and view results
inline in the terminal.

Running 'allscreenshots <URL>' is a shortcut for 'allscreenshots capture <URL>'.`,
	Example: `  allscreenshots https://example.com
  allscreenshots capture https://example.com --device iphone_14 -o shot.png
  allscreenshots batch -f urls.txt --output-dir ./shots`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Args:          cobra.MaximumNArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runCapture(cmd, args[0])
	},
}

func initConfig() {
	utils.SetVerbose(verbose)
	ui.SetNoColor(noColor)

	if err := config.LoadDotEnv(); err != nil {
		utils.Warn("failed to load .env: %v", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&apiKey, "api-key", "k", "", "API key (overrides "+config.EnvAPIKey+" and the config file)")
	flags.StringVarP(&outputPath, "output", "o", "", "write the image to a file or s3://bucket/key")
	flags.StringVarP(&device, "device", "d", "", "device preset, see 'allscreenshots devices'")
	flags.BoolVar(&fullPage, "full-page", false, "capture the full scrollable page")
	flags.BoolVar(&display, "display", false, "always show the image in the terminal")
	flags.BoolVar(&noDisplay, "no-display", false, "never show the image in the terminal")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVar(&jsonOutput, "json", false, "print results as JSON")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.StringVar(&configPath, "config", "", "path to the config file")

	rootCmd.MarkFlagsMutuallyExclusive("display", "no-display")

	addCaptureFlags(rootCmd)
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		utils.Warn("failed to encode JSON: %v", err)
		return
	}
	fmt.Println(string(jsonData))
}

// finish prints the envelope in JSON mode and turns an error response
// into the command's error.
func finish(response *commands.CommandResponse) error {
	if jsonOutput {
		printJson(response)
	}
	return response.Err()
}

// newRuntime loads the config and builds the per-invocation runtime.
func newRuntime() (*commands.Runtime, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	utils.Verbose("using config %s", path)

	// a detached watcher has no terminal to draw on, and spinner redraws
	// would clobber debug logs
	child := daemon.IsChild()

	rt := &commands.Runtime{
		Config:     cfg,
		ConfigPath: path,
		APIKeyFlag: apiKey,
		NewClient: func(key string) api.API {
			return api.NewClient(key, api.WithUserAgent("allscreenshots-cli/"+version))
		},
		Out:         os.Stdout,
		Err:         os.Stderr,
		JSON:        jsonOutput,
		Interactive: render.IsTerminal(os.Stderr) && !child && !utils.IsVerbose(),
	}
	if !child {
		rt.Renderer = render.New(os.Stdout, cfg.Display.Protocol, cfg.Display.Width, cfg.Display.Height)
	}

	return rt, nil
}

func outputOptions() commands.OutputOptions {
	return commands.OutputOptions{
		Output:    outputPath,
		Display:   display,
		NoDisplay: noDisplay,
	}
}

package cli

import (
	"time"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/spf13/cobra"
)

var (
	// global flags
	apiKey     string
	outputPath string
	device     string
	fullPage   bool
	display    bool
	noDisplay  bool
	verbose    bool
	jsonOutput bool
	noColor    bool
	configPath string

	// capture flags, shared by every command that captures
	width        int
	height       int
	format       string
	quality      int
	delayMs      int
	waitFor      string
	waitUntil    string
	darkMode     bool
	blockAds     bool
	blockCookies bool
	blockLevel   string
	selector     string
	customCSS    string

	// for async and jobs wait
	noPoll       bool
	pollInterval time.Duration
	pollTimeout  time.Duration

	// for batch
	batchFile        string
	batchConcurrency int

	// for batch, watch and schedule run
	outputDir string

	// for compose
	composeLayout     string
	composeColumns    int
	composeSpacing    int
	composePadding    int
	composeBackground string

	// for schedule
	scheduleName          string
	scheduleURL           string
	scheduleCron          string
	scheduleTimezone      string
	scheduleWebhook       string
	scheduleRetentionDays int
	scheduleHistoryLimit  int
	scheduleMaxRuns       int

	// for usage
	usageFormat    string
	usageQuotaOnly bool

	// for config
	useKeyring bool

	// for gallery
	galleryDir   string
	galleryLimit int
	gallerySize  string

	// for watch
	watchInterval    time.Duration
	watchMaxCaptures int
	watchDetach      bool
	watchStop        bool

	// for completions
	showInstructions bool
)

func addCaptureFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVarP(&width, "width", "W", 0, "viewport width in pixels")
	f.IntVarP(&height, "height", "H", 0, "viewport height in pixels")
	f.StringVar(&format, "format", "", "image format: png, jpeg, webp or pdf")
	f.IntVarP(&quality, "quality", "q", 0, "jpeg/webp quality (1-100)")
	f.IntVar(&delayMs, "delay", 0, "wait this many milliseconds before capturing (max 30000)")
	f.StringVar(&waitFor, "wait-for", "", "CSS selector to wait for before capturing")
	f.StringVar(&waitUntil, "wait-until", "", "navigation event: load, domcontentloaded, networkidle or commit")
	f.BoolVar(&darkMode, "dark-mode", false, "emulate prefers-color-scheme: dark")
	f.BoolVar(&blockAds, "block-ads", false, "block ads")
	f.BoolVar(&blockCookies, "block-cookies", false, "hide cookie banners")
	f.StringVar(&blockLevel, "block-level", "", "blocking level: none, light, normal, pro, pro_plus or ultimate")
	f.StringVar(&selector, "selector", "", "capture only the element matching this CSS selector")
	f.StringVar(&customCSS, "custom-css", "", "CSS injected before capturing")
}

// captureOptions collects the capture flags of cmd. Quality is only set
// when the flag was given.
func captureOptions(cmd *cobra.Command, rawURL string) types.CaptureOptions {
	opts := types.CaptureOptions{
		URL:          rawURL,
		Device:       device,
		Width:        width,
		Height:       height,
		Format:       format,
		FullPage:     fullPage,
		DarkMode:     darkMode,
		DelayMs:      delayMs,
		WaitUntil:    waitUntil,
		WaitFor:      waitFor,
		Selector:     selector,
		BlockAds:     blockAds,
		BlockCookies: blockCookies,
		BlockLevel:   blockLevel,
		CustomCSS:    customCSS,
	}
	if cmd.Flags().Changed("quality") {
		q := quality
		opts.Quality = &q
	}
	return opts
}

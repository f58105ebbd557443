package types

import (
	"slices"
	"strings"

	"github.com/allscreenshots/allscreenshots-cli/utils"
)

const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatWebP = "webp"
	FormatPDF  = "pdf"

	MaxDelayMs    = 30000
	MaxViewportPx = 10000
)

var (
	waitUntilValues  = []string{"load", "domcontentloaded", "networkidle", "commit"}
	blockLevelValues = []string{"none", "light", "normal", "pro", "pro_plus", "ultimate"}
)

// CaptureOptions holds raw, merged CLI and config values. Pointer fields
// distinguish "not given" from a zero value.
type CaptureOptions struct {
	URL           string
	Device        string
	DefaultDevice string
	Width         int
	Height        int
	Format        string
	DefaultFormat string
	Quality       *int
	FullPage      bool
	DarkMode      bool
	DelayMs       int
	WaitUntil     string
	WaitFor       string
	Selector      string
	BlockAds      bool
	BlockCookies  bool
	BlockLevel    string
	CustomCSS     string
}

type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CaptureRequest is a validated capture. It is built once by
// NewCaptureRequest and passed by value afterwards.
type CaptureRequest struct {
	URL          string    `json:"url"`
	Device       string    `json:"device,omitempty"`
	Viewport     *Viewport `json:"viewport,omitempty"`
	Format       string    `json:"format"`
	Quality      int       `json:"quality,omitempty"`
	FullPage     bool      `json:"fullPage,omitempty"`
	DarkMode     bool      `json:"darkMode,omitempty"`
	Delay        int       `json:"delay,omitempty"`
	WaitUntil    string    `json:"waitUntil,omitempty"`
	WaitFor      string    `json:"waitFor,omitempty"`
	Selector     string    `json:"selector,omitempty"`
	BlockAds     bool      `json:"blockAds,omitempty"`
	BlockCookies bool      `json:"blockCookieBanners,omitempty"`
	BlockLevel   string    `json:"blockLevel,omitempty"`
	CustomCSS    string    `json:"customCss,omitempty"`
}

func NewCaptureRequest(opts CaptureOptions) (CaptureRequest, error) {
	url, err := utils.NormalizeURL(opts.URL)
	if err != nil {
		return CaptureRequest{}, InvalidOption("url", "%v", err)
	}

	req := CaptureRequest{
		URL:          url,
		FullPage:     opts.FullPage,
		DarkMode:     opts.DarkMode,
		WaitFor:      strings.TrimSpace(opts.WaitFor),
		Selector:     strings.TrimSpace(opts.Selector),
		BlockAds:     opts.BlockAds,
		BlockCookies: opts.BlockCookies,
		CustomCSS:    opts.CustomCSS,
	}

	if opts.Device != "" && (opts.Width != 0 || opts.Height != 0) {
		return CaptureRequest{}, InvalidOption("device", "cannot be combined with --width/--height")
	}

	switch {
	case opts.Width != 0 || opts.Height != 0:
		vp, err := viewportFromSize(opts.Width, opts.Height)
		if err != nil {
			return CaptureRequest{}, err
		}
		req.Viewport = vp
	default:
		name := opts.Device
		if name == "" {
			name = opts.DefaultDevice
		}
		if name == "" {
			name = DefaultDevice
		}
		preset, ok := FindDevicePreset(name)
		if !ok {
			return CaptureRequest{}, InvalidOption("device", "unknown device %q (run 'allscreenshots devices' to list presets)", name)
		}
		req.Device = preset.Name
	}

	format := opts.Format
	if format == "" {
		format = opts.DefaultFormat
	}
	req.Format, err = NormalizeFormat(format)
	if err != nil {
		return CaptureRequest{}, err
	}

	if opts.Quality != nil {
		q := *opts.Quality
		if q < 1 || q > 100 {
			return CaptureRequest{}, InvalidOption("quality", "must be between 1 and 100, got %d", q)
		}
		req.Quality = q
	}

	if opts.DelayMs < 0 || opts.DelayMs > MaxDelayMs {
		return CaptureRequest{}, InvalidOption("delay", "must be between 0 and %d ms, got %d", MaxDelayMs, opts.DelayMs)
	}
	req.Delay = opts.DelayMs

	if opts.WaitUntil != "" {
		v := strings.ToLower(opts.WaitUntil)
		if !slices.Contains(waitUntilValues, v) {
			return CaptureRequest{}, InvalidOption("wait-until", "must be one of %s", strings.Join(waitUntilValues, ", "))
		}
		req.WaitUntil = v
	}

	if opts.BlockLevel != "" {
		v := strings.ToLower(opts.BlockLevel)
		if !slices.Contains(blockLevelValues, v) {
			return CaptureRequest{}, InvalidOption("block-level", "must be one of %s", strings.Join(blockLevelValues, ", "))
		}
		req.BlockLevel = v
	}

	return req, nil
}

// Extension returns the file extension for the request's format.
func (r CaptureRequest) Extension() string {
	if r.Format == FormatJPEG {
		return "jpg"
	}
	return r.Format
}

// NormalizeFormat maps user input onto a supported output format.
// An empty value means png.
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatJPEG, "jpg":
		return FormatJPEG, nil
	case FormatWebP:
		return FormatWebP, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", InvalidOption("format", "unsupported format %q (use png, jpeg, webp or pdf)", format)
	}
}

func viewportFromSize(width, height int) (*Viewport, error) {
	if width < 0 || width > MaxViewportPx {
		return nil, InvalidOption("width", "must be between 1 and %d", MaxViewportPx)
	}
	if height < 0 || height > MaxViewportPx {
		return nil, InvalidOption("height", "must be between 1 and %d", MaxViewportPx)
	}

	// a single dimension keeps the default preset's other side
	preset, _ := FindDevicePreset(DefaultDevice)
	if width == 0 {
		width = preset.Width
	}
	if height == 0 {
		height = preset.Height
	}
	return &Viewport{Width: width, Height: height}, nil
}

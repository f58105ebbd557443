package commands

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/allscreenshots/allscreenshots-cli/api"
	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/utils"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

const (
	MinComposeInputs = 2
	MaxComposeInputs = 20

	maxComposeSpacing = 500
	composeFetchLimit = 4
)

type Layout string

const (
	LayoutAuto       Layout = "auto"
	LayoutGrid       Layout = "grid"
	LayoutHorizontal Layout = "horizontal"
	LayoutVertical   Layout = "vertical"
)

type ComposeRequest struct {
	// Inputs are URLs to capture or paths of existing local images.
	Inputs     []string
	Layout     string
	Columns    int
	Spacing    int
	Padding    int
	Background string
	Format     string
	Quality    *int
	Options    types.CaptureOptions
	Output     OutputOptions
}

type ComposeResult struct {
	Inputs  int    `json:"inputs"`
	Layout  Layout `json:"layout"`
	Columns int    `json:"columns,omitempty"`
	CaptureResult
}

type composeSpec struct {
	layout     Layout
	columns    int
	spacing    int
	padding    int
	background color.Color
}

// ComposeCommand captures or loads each input and stitches them into
// one image locally.
func ComposeCommand(ctx context.Context, rt *Runtime, req ComposeRequest) *CommandResponse {
	if n := len(req.Inputs); n < MinComposeInputs || n > MaxComposeInputs {
		return NewErrorResponse(types.InvalidOption("", "compose needs between %d and %d inputs, got %d", MinComposeInputs, MaxComposeInputs, n))
	}

	spec, err := parseComposeSpec(req)
	if err != nil {
		return NewErrorResponse(err)
	}

	format, err := types.NormalizeFormat(req.Format)
	if err != nil {
		return NewErrorResponse(err)
	}
	if format != types.FormatPNG && format != types.FormatJPEG {
		return NewErrorResponse(types.InvalidOption("format", "compose can write png or jpeg, not %s", format))
	}
	quality := 0
	if req.Quality != nil {
		if *req.Quality < 1 || *req.Quality > 100 {
			return NewErrorResponse(types.InvalidOption("quality", "must be between 1 and 100, got %d", *req.Quality))
		}
		quality = *req.Quality
	}

	// captured inputs always come back as png; compose re-encodes
	captureOpts := req.Options
	captureOpts.Format = types.FormatPNG
	captureOpts.Quality = nil

	sources := make([]composeSource, len(req.Inputs))
	needsClient := false
	for i, in := range req.Inputs {
		sources[i] = composeSource{input: in}
		if info, err := os.Stat(in); err == nil && !info.IsDir() {
			sources[i].local = true
			continue
		}
		opts := captureOpts
		opts.URL = in
		capReq, err := rt.buildCaptureRequest(opts)
		if err != nil {
			return NewErrorResponse(fmt.Errorf("input %d: %w", i+1, err))
		}
		sources[i].req = capReq
		needsClient = true
	}

	var client api.API
	if needsClient {
		if client, err = rt.Client(); err != nil {
			return NewErrorResponse(err)
		}
	}

	spinner := rt.Spinner(fmt.Sprintf("Loading %d images...", len(sources)))
	start := rt.now()
	images, err := loadComposeSources(ctx, client, sources)
	if err != nil {
		spinner.Stop()
		return NewErrorResponse(err)
	}

	spinner.SetMessage("Composing...")
	canvas := composeImages(images, spec)
	data, err := utils.EncodeImage(canvas, format, quality)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to encode composed image: %w", err))
	}

	outReq := types.CaptureRequest{URL: "composed", Format: format}
	if !sources[0].local {
		outReq.URL = sources[0].req.URL
	}
	delivered, err := rt.deliver(ctx, outReq, data, req.Output, rt.now().Sub(start))
	if err != nil {
		return NewErrorResponse(err)
	}

	result := ComposeResult{
		Inputs:        len(images),
		Layout:        spec.layout,
		Columns:       spec.columns,
		CaptureResult: *delivered,
	}

	rt.printCaptureSummary("Composition created", delivered)
	rt.Printf("  Layout:     %s (%d images)\n", spec.layout, len(images))
	return NewSuccessResponse(result)
}

type composeSource struct {
	input string
	local bool
	req   types.CaptureRequest
}

func loadComposeSources(ctx context.Context, client api.API, sources []composeSource) ([]image.Image, error) {
	images := make([]image.Image, len(sources))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(composeFetchLimit)
	for i, src := range sources {
		eg.Go(func() error {
			var data []byte
			var err error
			if src.local {
				data, err = os.ReadFile(src.input)
				if err != nil {
					return &types.IOError{Op: "read", Path: src.input, Err: err}
				}
			} else {
				data, err = client.Capture(ctx, src.req)
				if err != nil {
					return fmt.Errorf("capture of %s failed: %w", src.req.URL, err)
				}
			}

			img, _, err := utils.DecodeImage(data)
			if err != nil {
				return fmt.Errorf("input %d (%s): %w", i+1, src.input, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func parseComposeSpec(req ComposeRequest) (composeSpec, error) {
	spec := composeSpec{
		spacing: req.Spacing,
		padding: req.Padding,
		columns: req.Columns,
	}

	switch l := Layout(strings.ToLower(req.Layout)); l {
	case "", LayoutAuto:
		spec.layout = LayoutAuto
	case LayoutGrid, LayoutHorizontal, LayoutVertical:
		spec.layout = l
	default:
		return spec, types.InvalidOption("layout", "must be one of grid, horizontal, vertical, auto")
	}

	if spec.columns < 0 || spec.columns > MaxComposeInputs {
		return spec, types.InvalidOption("columns", "must be between 1 and %d", MaxComposeInputs)
	}
	if spec.spacing < 0 || spec.spacing > maxComposeSpacing {
		return spec, types.InvalidOption("spacing", "must be between 0 and %d", maxComposeSpacing)
	}
	if spec.padding < 0 || spec.padding > maxComposeSpacing {
		return spec, types.InvalidOption("padding", "must be between 0 and %d", maxComposeSpacing)
	}

	bg, err := parseBackground(req.Background)
	if err != nil {
		return spec, err
	}
	spec.background = bg

	n := len(req.Inputs)
	if spec.layout == LayoutAuto {
		if n == 2 {
			spec.layout = LayoutHorizontal
		} else {
			spec.layout = LayoutGrid
		}
	}
	if spec.layout == LayoutGrid && spec.columns == 0 {
		spec.columns = int(math.Ceil(math.Sqrt(float64(n))))
	}
	if spec.layout != LayoutGrid {
		spec.columns = 0
	}

	return spec, nil
}

// parseBackground accepts #RRGGBB, RRGGBB or "transparent". Empty means
// white.
func parseBackground(s string) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return color.White, nil
	case "transparent":
		return color.Transparent, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return nil, types.InvalidOption("background", "expected #RRGGBB or transparent, got %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, types.InvalidOption("background", "expected #RRGGBB or transparent, got %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// composeImages lays images out on a single canvas. Grid cells are as
// large as the largest image and each image is centred in its cell.
func composeImages(images []image.Image, spec composeSpec) *image.RGBA {
	var maxW, maxH, sumW, sumH int
	for _, img := range images {
		b := img.Bounds()
		maxW = max(maxW, b.Dx())
		maxH = max(maxH, b.Dy())
		sumW += b.Dx()
		sumH += b.Dy()
	}
	n := len(images)
	gaps := spec.spacing * (n - 1)
	pad := spec.padding

	var canvas *image.RGBA
	place := func(img image.Image, x, y int) {
		b := img.Bounds()
		draw.Draw(canvas, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Over)
	}

	switch spec.layout {
	case LayoutHorizontal:
		canvas = newCanvas(sumW+gaps+2*pad, maxH+2*pad, spec.background)
		x := pad
		for _, img := range images {
			place(img, x, pad)
			x += img.Bounds().Dx() + spec.spacing
		}

	case LayoutVertical:
		canvas = newCanvas(maxW+2*pad, sumH+gaps+2*pad, spec.background)
		y := pad
		for _, img := range images {
			place(img, pad, y)
			y += img.Bounds().Dy() + spec.spacing
		}

	default:
		cols := max(min(spec.columns, n), 1)
		rows := (n + cols - 1) / cols
		width := cols*maxW + (cols-1)*spec.spacing + 2*pad
		height := rows*maxH + (rows-1)*spec.spacing + 2*pad
		canvas = newCanvas(width, height, spec.background)
		for i, img := range images {
			col, row := i%cols, i/cols
			b := img.Bounds()
			x := pad + col*(maxW+spec.spacing) + (maxW-b.Dx())/2
			y := pad + row*(maxH+spec.spacing) + (maxH-b.Dy())/2
			place(img, x, y)
		}
	}

	return canvas
}

func newCanvas(w, h int, bg color.Color) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return canvas
}

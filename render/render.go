// Package render draws images inline in the terminal using the kitty
// graphics protocol, iTerm2 inline images or truecolor half blocks.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/utils"
	"golang.org/x/term"
)

type Protocol string

const (
	ProtocolAuto   Protocol = "auto"
	ProtocolKitty  Protocol = "kitty"
	ProtocolITerm  Protocol = "iterm"
	ProtocolBlocks Protocol = "blocks"
	ProtocolNone   Protocol = "none"
)

// Displayer shows an encoded image to the user.
type Displayer interface {
	Display(data []byte) error
	// WithSize returns a Displayer bounded to width x height cells.
	WithSize(width, height int) Displayer
}

type Renderer struct {
	Protocol Protocol
	// Width and Height bound the image in terminal cells.
	Width  int
	Height int

	out io.Writer
}

// New builds a renderer for out. An "auto" protocol is resolved from the
// environment and whether out is a terminal.
func New(out io.Writer, protocol string, width, height int) *Renderer {
	p := Protocol(strings.ToLower(protocol))
	if p == "" || p == ProtocolAuto {
		p = DetectProtocol(os.Getenv, IsTerminal(out))
	}

	if tw, _, err := terminalSize(out); err == nil && tw > 0 && width > tw {
		width = tw
	}

	return &Renderer{
		Protocol: p,
		Width:    max(width, 1),
		Height:   max(height, 1),
		out:      out,
	}
}

// DetectProtocol picks the richest protocol the terminal advertises.
func DetectProtocol(getenv func(string) string, isTTY bool) Protocol {
	if strings.Contains(getenv("TERM"), "kitty") || getenv("KITTY_WINDOW_ID") != "" {
		return ProtocolKitty
	}
	switch getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm":
		return ProtocolITerm
	}
	if isTTY {
		return ProtocolBlocks
	}
	return ProtocolNone
}

func (r *Renderer) WithSize(width, height int) Displayer {
	c := *r
	c.Width = max(width, 1)
	c.Height = max(height, 1)
	return &c
}

func (r *Renderer) Display(data []byte) error {
	if r.Protocol == ProtocolNone {
		return &types.RenderError{Reason: "terminal has no image support"}
	}

	img, format, err := utils.DecodeImage(data)
	if err != nil {
		return &types.RenderError{Reason: "unsupported image data", Err: err}
	}

	cols, rows := fitCells(img.Bounds().Dx(), img.Bounds().Dy(), r.Width, r.Height)
	utils.Verbose("rendering %s image %dx%d as %dx%d cells via %s", format, img.Bounds().Dx(), img.Bounds().Dy(), cols, rows, r.Protocol)

	switch r.Protocol {
	case ProtocolKitty:
		err = writeKitty(r.out, img, cols, rows)
	case ProtocolITerm:
		err = writeITerm(r.out, img, cols, rows)
	case ProtocolBlocks:
		err = writeBlocks(r.out, img, cols, rows)
	default:
		return &types.RenderError{Reason: fmt.Sprintf("unknown protocol %q", r.Protocol)}
	}
	if err != nil {
		return &types.RenderError{Reason: "failed to write to terminal", Err: err}
	}
	return nil
}

// fitCells scales a w x h pixel image into at most maxCols x maxRows
// cells, keeping aspect ratio. A cell is about twice as tall as wide.
func fitCells(w, h, maxCols, maxRows int) (int, int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}

	cols := maxCols
	rows := int(float64(cols)*float64(h)/float64(w)/2 + 0.5)
	if rows > maxRows {
		rows = maxRows
		cols = int(float64(rows)*2*float64(w)/float64(h) + 0.5)
	}
	return max(cols, 1), max(rows, 1)
}

func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalSize(w io.Writer) (int, int, error) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, 0, fmt.Errorf("not a terminal")
	}
	return term.GetSize(int(f.Fd()))
}

var _ Displayer = (*Renderer)(nil)

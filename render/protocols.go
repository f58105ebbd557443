package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"golang.org/x/image/draw"
)

// approximate pixel size of one terminal cell
const (
	cellWidthPx  = 10
	cellHeightPx = 20
)

// scaled resizes img to w x h pixels over a black background.
func scaled(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// writeKitty transmits the image with the kitty graphics protocol. The
// image is scaled to the cell box first so the terminal places it at its
// pixel size.
func writeKitty(w io.Writer, img image.Image, cols, rows int) error {
	if err := rasterm.KittyWriteImage(w, scaled(img, cols*cellWidthPx, rows*cellHeightPx), rasterm.KittyImgOpts{}); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// writeITerm uses the OSC 1337 inline image sequence understood by
// iTerm2 and WezTerm.
func writeITerm(w io.Writer, img image.Image, cols, rows int) error {
	if err := rasterm.ItermWriteImage(w, scaled(img, cols*cellWidthPx, rows*cellHeightPx)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// writeBlocks draws two pixels per cell with the upper half block: the
// foreground colours the top pixel and the background the bottom one.
func writeBlocks(w io.Writer, img image.Image, cols, rows int) error {
	dst := scaled(img, cols, rows*2)

	bw := bufio.NewWriter(w)
	for y := 0; y < rows*2; y += 2 {
		for x := 0; x < cols; x++ {
			top := dst.RGBAAt(x, y)
			bottom := dst.RGBAAt(x, y+1)
			fmt.Fprintf(bw, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		bw.WriteString("\x1b[0m\n")
	}
	return bw.Flush()
}

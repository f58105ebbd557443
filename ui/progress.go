package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

// ProgressBar redraws a single status line; Println prints above it.
type ProgressBar struct {
	mu      sync.Mutex
	bar     progress.Model
	out     io.Writer
	total   int
	done    int
	enabled bool
}

func NewProgressBar(out io.Writer, total int, enabled bool) *ProgressBar {
	return &ProgressBar{
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		out:     out,
		total:   total,
		enabled: enabled,
	}
}

// Increment marks one more item finished and redraws the bar.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	p.draw()
}

// Println writes a line without tearing the bar.
func (p *ProgressBar) Println(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		fmt.Fprint(p.out, "\r\x1b[2K")
	}
	fmt.Fprintln(p.out, line)
	p.draw()
}

func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		fmt.Fprint(p.out, "\r\x1b[2K")
	}
}

func (p *ProgressBar) draw() {
	if !p.enabled || p.total == 0 {
		return
	}
	fmt.Fprintf(p.out, "\r\x1b[2K%s %d/%d", p.bar.ViewAs(float64(p.done)/float64(p.total)), p.done, p.total)
}

// QuotaBar renders a usage bar: green below 75%, yellow from 75%, red
// from 90%.
func QuotaBar(percent float64, width int) string {
	color := "#22c55e"
	switch {
	case percent >= 90:
		color = "#ef4444"
	case percent >= 75:
		color = "#eab308"
	}

	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	return bar.ViewAs(min(max(percent/100, 0), 1))
}

package utils

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatFileSize renders a byte count in IEC units, e.g. 1.5 MiB.
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatDuration renders 500ms, 1.5s or 1m5s.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}

func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

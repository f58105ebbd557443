// Package ui holds terminal styling, spinners and progress bars.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	AccentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	DimStyle     = lipgloss.NewStyle().Faint(true)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
	TitleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

const (
	CheckMark = "✓"
	CrossMark = "✗"
	Bullet    = "•"
)

// SetNoColor strips colour and text attributes from every style.
func SetNoColor(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func Success(s string) string { return SuccessStyle.Render(s) }
func Error(s string) string   { return ErrorStyle.Render(s) }
func Warn(s string) string    { return WarnStyle.Render(s) }
func Accent(s string) string  { return AccentStyle.Render(s) }
func Dim(s string) string     { return DimStyle.Render(s) }
func Bold(s string) string    { return BoldStyle.Render(s) }
func Title(s string) string   { return TitleStyle.Render(s) }

// StatusColor styles a job or schedule status word.
func StatusColor(status string) string {
	switch status {
	case "done", "completed", "COMPLETED", "ACTIVE", "active":
		return Success(status)
	case "failed", "FAILED", "cancelled", "CANCELLED":
		return Error(status)
	case "running", "queued", "PAUSED", "paused":
		return Warn(status)
	default:
		return status
	}
}

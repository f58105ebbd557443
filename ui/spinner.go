package ui

import (
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type Spinner interface {
	SetMessage(msg string)
	Stop()
}

// NewSpinner starts a spinner on out. When disabled, e.g. output is not
// a terminal or JSON was requested, a no-op spinner is returned.
func NewSpinner(out io.Writer, msg string, enabled bool) Spinner {
	if !enabled {
		return noopSpinner{}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = AccentStyle

	p := tea.NewProgram(
		spinnerModel{spinner: s, message: msg},
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	ts := &teaSpinner{program: p, done: make(chan struct{})}
	go func() {
		defer close(ts.done)
		_, _ = p.Run()
	}()
	return ts
}

type teaSpinner struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

func (s *teaSpinner) SetMessage(msg string) {
	s.program.Send(messageMsg(msg))
}

func (s *teaSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(stopMsg{})
		<-s.done
	})
}

type noopSpinner struct{}

func (noopSpinner) SetMessage(string) {}
func (noopSpinner) Stop()             {}

type messageMsg string

type stopMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messageMsg:
		m.message = string(msg)
		return m, nil
	case stopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.message
}

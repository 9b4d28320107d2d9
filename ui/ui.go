// Package ui is the bubbletea shell around the app core: it translates key
// events into the app's dispatcher, runs background preview fetches and
// external processes, and renders the active view.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nakamura-shuta/tij/app"
	"github.com/nakamura-shuta/tij/jj"
)

// Model is the bubbletea model. All state lives in the app; the model only
// carries terminal geometry.
type Model struct {
	app    *app.App
	keys   KeyMap
	width  int
	height int
	ready  bool
}

func New(a *app.App) *Model {
	return &Model{app: a, keys: DefaultKeyMap()}
}

// previewMsg carries a completed background preview fetch back to the main
// loop; it is merged only at an Update boundary, never racewise.
type previewMsg struct {
	req app.PreviewRequest
	p   jj.Preview
	err error
}

// externalDoneMsg reports an external process (editor, jj split, ...) exit.
type externalDoneMsg struct {
	action app.ExternalAction
	err    error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.schedulePreview(), tick())
}

// schedulePreview spawns the idle preview worker when a fetch is pending.
// Only the executor is touched off the main goroutine; the result is merged
// on the next Update.
func (m *Model) schedulePreview() tea.Cmd {
	req, ok := m.app.TakePendingPreview()
	if !ok {
		return nil
	}
	jjExec := m.app.JJ
	format := m.app.DiffFormat
	return func() tea.Msg {
		p, err := jjExec.Show(req.ChangeID, format)
		return previewMsg{req: req, p: p, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.app.ClearExpiredNotification()
		return m, tea.Batch(tick(), m.schedulePreview())

	case previewMsg:
		m.app.ApplyPreview(msg.req, msg.p, msg.err)
		return m, nil

	case externalDoneMsg:
		m.app.CompleteExternal(msg.action, msg.err)
		return m, m.schedulePreview()

	case tea.KeyMsg:
		eff := m.app.HandleKey(msg.String())
		if eff.Quit {
			return m, tea.Quit
		}
		if eff.Exec != nil {
			action := *eff.Exec
			return m, tea.ExecProcess(action.Cmd, func(err error) tea.Msg {
				return externalDoneMsg{action: action, err: err}
			})
		}
		return m, m.schedulePreview()
	}
	return m, nil
}

func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.render()
}

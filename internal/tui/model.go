// Package tui is an interactive terminal front end for the dashboard.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leapstack-labs/signalboard/internal/controller"
	"github.com/leapstack-labs/signalboard/pkg/core"
)

// bootstrapMsg reports the end of Controller.Bootstrap.
type bootstrapMsg struct{ err error }

// actionMsg reports the end of a tab or scenario interaction.
type actionMsg struct {
	what string
	err  error
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	page   Regions
	styles Styles
	keys   keyMap
	help   help.Model

	width   int
	busy    bool
	failed  bool
	status  string
	lastErr error
}

// New creates a Model driving ctrl. page must be the controller's painter.
func New(ctx context.Context, ctrl *controller.Controller, page Regions, styles Styles) Model {
	return Model{
		ctx:    ctx,
		ctrl:   ctrl,
		page:   page,
		styles: styles,
		keys:   defaultKeyMap(),
		help:   help.New(),
		busy:   true,
		status: "Loading…",
	}
}

// Init bootstraps the dashboard.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return bootstrapMsg{err: m.ctrl.Bootstrap(m.ctx)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case bootstrapMsg:
		m.busy = false
		m.lastErr = msg.err
		m.failed = msg.err != nil
		m.status = ""
		if m.failed {
			m.status = "Press q to quit."
		}
		return m, nil

	case actionMsg:
		m.busy = false
		m.lastErr = msg.err
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("%s: %v", msg.what, msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.busy || m.failed {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		return m.selectTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		return m.selectTab(-1)
	case key.Matches(msg, m.keys.Scenario):
		return m.selectScenario(int(msg.Runes[0] - '1'))
	case key.Matches(msg, m.keys.Refresh):
		return m.run("refresh", m.ctrl.Refresh)
	}
	return m, nil
}

// selectTab moves the active tab by delta, wrapping around.
func (m Model) selectTab(delta int) (tea.Model, tea.Cmd) {
	cfg := m.ctrl.Config()
	if cfg == nil || len(cfg.Tabs) == 0 {
		return m, nil
	}
	current := 0
	active := m.ctrl.State().ActiveTab
	for i, t := range cfg.Tabs {
		if t.ID == active {
			current = i
			break
		}
	}
	next := cfg.Tabs[(current+delta+len(cfg.Tabs))%len(cfg.Tabs)]
	return m.run("select tab", func(ctx context.Context) error {
		return m.ctrl.SelectTab(ctx, next.ID)
	})
}

// selectScenario activates the catalog's idx-th scenario in display order.
func (m Model) selectScenario(idx int) (tea.Model, tea.Cmd) {
	keys := m.ctrl.Catalog().Keys()
	if idx < 0 || idx >= len(keys) {
		return m, nil
	}
	selected := keys[idx]
	return m.run("select scenario", func(ctx context.Context) error {
		return m.ctrl.SelectScenario(ctx, selected)
	})
}

func (m Model) run(what string, fn func(context.Context) error) (tea.Model, tea.Cmd) {
	m.busy = true
	ctx := m.ctx
	return m, func() tea.Msg {
		return actionMsg{what: what, err: fn(ctx)}
	}
}

// View renders the dashboard.
func (m Model) View() string {
	view := Dashboard(m.styles, m.page, m.width)

	status := m.status
	if m.busy && status == "" {
		status = "Loading…"
	}
	if status != "" {
		view += "\n\n" + m.styles.Status.Render(status)
	}
	return view + "\n\n" + m.help.View(m.keys) + "\n"
}

// Err returns the error of the last bootstrap or interaction, if any.
func (m Model) Err() error {
	return m.lastErr
}

// State returns the controller's view state.
func (m Model) State() core.ViewState {
	return m.ctrl.State()
}

// Run starts the interactive dashboard and blocks until the user quits.
// It returns the bootstrap error if the dashboard never became ready.
func Run(ctx context.Context, ctrl *controller.Controller, page Regions, styles Styles, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(New(ctx, ctrl, page, styles), opts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(Model); ok && m.failed {
		return m.lastErr
	}
	return nil
}

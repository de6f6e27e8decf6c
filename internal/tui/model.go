// Package tui provides the interactive lingora session.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kannan/lingora/internal/app"
	"github.com/kannan/lingora/internal/config"
	"github.com/kannan/lingora/internal/logger"
	"github.com/kannan/lingora/internal/tui/styles"
	"github.com/kannan/lingora/internal/workspace"
)

// Model is the main TUI application model.
type Model struct {
	ctx     context.Context
	workDir string
	exec    workspace.Executor

	state   State
	args    Args
	cfg     *config.Config
	result  *workspace.Result
	err     error // rejected reconfiguration, shown in StateError
	execErr error // last execution failure, shown inline

	// gen identifies the current execution; results of older ones are dropped.
	gen     uint64
	running bool
	cancel  context.CancelFunc
	tickID  uint64

	screen  Screen
	input   textinput.Model
	spinner spinner.Model
	width   int
	height  int
}

// Messages

type startedMsg struct{}

type executionDoneMsg struct {
	gen    uint64
	result *workspace.Result
	err    error
}

type refreshTickMsg struct {
	id uint64
}

// New creates a session for an already validated configuration. Executions
// run under ctx.
func New(ctx context.Context, workDir string, exec workspace.Executor, args Args, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "--canonical=en-GB --primaries=fr-FR,it-IT"
	ti.CharLimit = 512
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	screen := args.Screen
	if screen == "" {
		screen = ScreenSummary
	}

	return Model{
		ctx:     ctx,
		workDir: workDir,
		exec:    exec,
		state:   StateStarting,
		args:    args.Clone(),
		cfg:     cfg,
		screen:  screen,
		input:   ti,
		spinner: s,
	}
}

// State returns the current session state.
func (m Model) State() State { return m.state }

// Config returns the configuration of the latest accepted arguments.
func (m Model) Config() *config.Config { return m.cfg }

// Result returns the latest execution result, which may predate the current
// configuration while an execution is in flight.
func (m Model) Result() *workspace.Result { return m.result }

// Err returns the error currently shown, if any.
func (m Model) Err() error {
	if m.err != nil {
		return m.err
	}
	return m.execErr
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(fmt.Sprintf("Lingora v%s", app.Version)),
		func() tea.Msg { return startedMsg{} },
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case startedMsg:
		if m.state != StateStarting {
			return m, nil
		}
		m.setState(StateReady)
		cmd := m.startExecution()
		return m, tea.Batch(cmd, m.refreshCmd())

	case executionDoneMsg:
		m.handleExecutionDone(msg)
		return m, nil

	case refreshTickMsg:
		if msg.id != m.tickID {
			return m, nil
		}
		next := m.refreshCmd()
		if m.state == StateReady {
			cmd := m.startExecution()
			return m, tea.Batch(cmd, next)
		}
		return m, next

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state == StateReconfiguring {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeyPress processes keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}

	switch m.state {
	case StateReconfiguring:
		switch key {
		case "enter":
			return m.applyEdit()
		case "esc":
			m.input.Blur()
			m.setState(m.idleState())
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case StateError:
		switch key {
		case "enter", "esc":
			m.err = nil
			m.setState(m.idleState())
		case ":":
			m.err = nil
			m.setState(m.idleState())
			cmd := m.openPrompt()
			return m, cmd
		case "q":
			return m.quit()
		}
		return m, nil
	}

	switch key {
	case "q":
		return m.quit()
	case ":":
		if m.state == StateReady || m.state == StateExecuting {
			cmd := m.openPrompt()
			return m, cmd
		}
	case "r":
		if m.state == StateReady {
			cmd := m.startExecution()
			return m, cmd
		}
	case "tab":
		m.screen = m.screen.next()
	case "1", "2", "3":
		m.screen = Screens[int(key[0]-'1')]
	}

	return m, nil
}

// setState moves to a new state if the transition is allowed.
func (m *Model) setState(to State) {
	if m.state == to {
		return
	}
	if !CanTransition(m.state, to) {
		logger.Warn("invalid state transition ignored", "from", m.state, "to", to)
		return
	}
	logger.Debug("state changed", "from", m.state, "to", to)
	m.state = to
}

// idleState is where the session rests when no prompt or error is shown.
func (m Model) idleState() State {
	if m.running {
		return StateExecuting
	}
	return StateReady
}

func (m *Model) openPrompt() tea.Cmd {
	m.input.Reset()
	m.setState(StateReconfiguring)
	return m.input.Focus()
}

// applyEdit validates the prompt line on top of the current arguments. The
// current configuration and result stay in place when it is rejected.
func (m Model) applyEdit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Blur()

	base := m.args
	base.Screen = m.screen

	args, err := parseEdit(base, line)
	var cfg *config.Config
	if err == nil {
		cfg, err = resolveArgs(m.workDir, args)
	}
	if err != nil {
		logger.Info("reconfiguration rejected", "input", line, "error", err)
		m.err = err
		m.setState(StateError)
		return m, nil
	}

	refreshChanged := args.Refresh != m.args.Refresh
	m.args = args
	m.cfg = cfg
	m.screen = args.Screen
	m.execErr = nil
	logger.Info("reconfigured", "canonical", cfg.Canonical(), "primaries", len(cfg.Primaries()))

	m.setState(StateReady)
	cmds := []tea.Cmd{m.startExecution()}
	if refreshChanged {
		m.tickID++
		cmds = append(cmds, m.refreshCmd())
	}
	return m, tea.Batch(cmds...)
}

// startExecution cancels any execution in flight and runs the current
// configuration under a new generation.
func (m *Model) startExecution() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.gen++
	m.running = true
	m.setState(StateExecuting)

	gen, exec, cfg := m.gen, m.exec, m.cfg
	logger.Debug("execution started", "generation", gen)

	run := func() tea.Msg {
		res, err := workspace.Run(ctx, exec, cfg)
		return executionDoneMsg{gen: gen, result: res, err: err}
	}
	return tea.Batch(run, m.spinner.Tick)
}

func (m *Model) handleExecutionDone(msg executionDoneMsg) {
	if msg.gen != m.gen {
		logger.Debug("superseded result discarded", "generation", msg.gen, "current", m.gen)
		return
	}

	m.running = false
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	if msg.err != nil {
		logger.Error("execution failed", "generation", msg.gen, "error", msg.err)
		m.execErr = msg.err
	} else {
		m.result = msg.result
		m.execErr = nil
	}

	if m.state == StateExecuting {
		m.setState(StateReady)
	}
}

func (m Model) refreshCmd() tea.Cmd {
	if m.args.Refresh <= 0 {
		return nil
	}
	id := m.tickID
	return tea.Tick(m.args.Refresh, func(time.Time) tea.Msg {
		return refreshTickMsg{id: id}
	})
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.shutdown()
	m.setState(StateExiting)
	return m, tea.Quit
}

// shutdown cancels the execution in flight, if any.
func (m *Model) shutdown() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.running = false
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal provides the interactive portfolio terminal for the TUI.
package terminal

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/termfolio-tui/internal/backend"
	"github.com/jeranaias/termfolio-tui/internal/commands"
	"github.com/jeranaias/termfolio-tui/internal/config"
	"github.com/jeranaias/termfolio-tui/internal/ui/components"
	"github.com/jeranaias/termfolio-tui/internal/ui/styles"
)

const (
	// LoadingLine is shown while a fetch is in flight.
	LoadingLine = "Loading..."
	// ErrorLine replaces the loading line when a fetch fails.
	ErrorLine = "Error fetching data"
	// CanceledLine replaces the loading line when the visitor cancels.
	CanceledLine = "^C"

	// historyLimit bounds how much persisted history is loaded.
	historyLimit = 500

	statusRefresh = 30 * time.Second
)

// =============================================================================
// TERMINAL STATE
// =============================================================================

// State represents what the terminal is doing.
type State int

const (
	StateReady   State = iota // Ready for input
	StateLoading              // Waiting for a fetch
	StateTyping               // Animating output
)

// HistoryStore persists submitted commands. *storage.Store implements it.
type HistoryStore interface {
	AppendHistory(ctx context.Context, cmd string) error
	HistoryCommands(ctx context.Context, limit int) ([]string, error)
}

// Options configures a Model.
type Options struct {
	Config  *config.Config
	Source  backend.Source
	History HistoryStore // optional
	Theme   *styles.Theme
	Logger  *zap.Logger

	// Badge is shown at the left of the status bar, e.g. "[DEMO]".
	Badge string

	// Clipboard writes text to the system clipboard. Defaults to atotto/clipboard.
	Clipboard func(string) error
}

// =============================================================================
// TERMINAL MODEL
// =============================================================================

// Model is the Bubble Tea model for the portfolio terminal.
type Model struct {
	state State

	cfg     *config.Config
	source  backend.Source
	history HistoryStore
	theme   *styles.Theme
	logger  *zap.Logger

	// Dimensions
	width  int
	height int

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	keys     KeyMap

	// Output buffer; the last line is where the typewriter writes.
	lines []string
	intro []string

	// Typewriter
	typing    *typewriter
	typeSeq   int
	typeSpeed time.Duration

	// Fetch in flight
	fetchSeq  int
	cancelMgr *cancelManager

	// Command history navigation; historyIndex is -1 when not browsing.
	cmdHistory   []string
	historyIndex int
	draft        string

	completer *commands.Completer

	// Last rendered response, for copy.
	lastResponse []string

	status    components.StatusBar
	clipboard func(string) error
	now       func() time.Time
}

// New creates a terminal model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	intro := components.Intro(cfg.UI)

	sourceName := "none"
	if opts.Source != nil {
		sourceName = opts.Source.Name()
	}

	m := Model{
		state:        StateReady,
		cfg:          cfg,
		source:       opts.Source,
		history:      opts.History,
		theme:        theme,
		logger:       logger,
		viewport:     vp,
		input:        ti,
		spinner:      sp,
		help:         help.New(),
		keys:         DefaultKeyMap(),
		intro:        intro,
		lines:        append([]string(nil), intro...),
		typeSpeed:    cfg.TypeSpeed(),
		cancelMgr:    newCancelManager(),
		historyIndex: -1,
		completer:    commands.NewCompleter(commands.NewRegistry()),
		status: components.StatusBar{
			Source: sourceName,
			Badge:  opts.Badge,
		},
		clipboard: copyFn,
		now:       time.Now,
	}
	m.updateViewport()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadHistory(), statusTick())
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Lines returns a copy of the output buffer.
func (m Model) Lines() []string {
	return append([]string(nil), m.lines...)
}

// State returns the current state.
func (m Model) State() State {
	return m.state
}

// Input returns the current input text.
func (m Model) Input() string {
	return m.input.Value()
}

// History returns the commands submitted so far, oldest first.
func (m Model) History() []string {
	return append([]string(nil), m.cmdHistory...)
}

// LastResponse returns the lines of the last successful response.
func (m Model) LastResponse() []string {
	return append([]string(nil), m.lastResponse...)
}

// StatusMessage returns the transient status bar message.
func (m Model) StatusMessage() string {
	return m.status.Message
}

// Cancel aborts any fetch in flight. Call it when the program exits.
func (m Model) Cancel() {
	m.cancelMgr.cancel()
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) loadHistory() tea.Cmd {
	if m.history == nil {
		return nil
	}
	store := m.history
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cmds, err := store.HistoryCommands(ctx, historyLimit)
		return HistoryLoadedMsg{Commands: cmds, Err: err}
	}
}

func (m Model) saveHistory(cmd string) tea.Cmd {
	if m.history == nil {
		return nil
	}
	store, logger := m.history, m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.AppendHistory(ctx, cmd); err != nil {
			logger.Warn("HISTORY_WRITE_FAILED", zap.Error(err))
		}
		return nil
	}
}

// fetchCmd fetches ep and reports the result tagged with seq.
func (m Model) fetchCmd(ctx context.Context, seq int, ep commands.Endpoint) tea.Cmd {
	src := m.source
	return func() tea.Msg {
		start := time.Now()
		if src == nil {
			return FetchResultMsg{Seq: seq, Endpoint: ep, Err: backend.ErrNotFound}
		}
		p, err := src.Fetch(ctx, ep)
		return FetchResultMsg{Seq: seq, Endpoint: ep, Payload: p, Err: err, Duration: time.Since(start)}
	}
}

func typeTick(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TypeTickMsg{Seq: seq}
	})
}

func statusTick() tea.Cmd {
	return tea.Tick(statusRefresh, func(time.Time) tea.Msg {
		return StatusTickMsg{}
	})
}

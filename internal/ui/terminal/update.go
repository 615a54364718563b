// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal provides the interactive portfolio terminal for the TUI.
package terminal

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/jeranaias/termfolio-tui/internal/backend"
	"github.com/jeranaias/termfolio-tui/internal/commands"
	"github.com/jeranaias/termfolio-tui/internal/ui/components"
	"github.com/jeranaias/termfolio-tui/internal/util"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case FetchResultMsg:
		return m.handleFetchResult(msg)

	case TypeTickMsg:
		return m.handleTypeTick(msg)

	case HistoryLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn("HISTORY_LOAD_FAILED", zap.Error(msg.Err))
			return m, nil
		}
		// Commands typed before the load finished stay at the end.
		m.cmdHistory = append(append([]string(nil), msg.Commands...), m.cmdHistory...)
		return m, nil

	case DataChangedMsg:
		names := make([]string, len(msg.Files))
		for i, f := range msg.Files {
			names[i] = filepath.Base(f)
		}
		m.status.Message = "data changed: " + strings.Join(names, ", ")
		return m, nil

	case StatusTickMsg:
		return m, statusTick()

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Layout: viewport + prompt line + status bar
	const reserved = 2
	vpHeight := m.height - reserved
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := m.width
	if vpWidth < 1 {
		vpWidth = 1
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight

	inputWidth := m.width - util.DisplayWidth(m.cfg.Prompt()) - 1
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth
	m.status.Width = m.width

	m.updateViewport()
	return m, nil
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelMgr.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		switch m.state {
		case StateTyping:
			return m.finishTyping(), nil
		case StateLoading:
			return m, nil
		}
		return m.submit()

	case key.Matches(msg, m.keys.Cancel):
		switch m.state {
		case StateTyping:
			return m.finishTyping(), nil
		case StateLoading:
			return m.cancelFetch(), nil
		}
		m.input.Reset()
		m.historyIndex = -1
		m.status.Message = ""
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		return m.clear(), nil

	case key.Matches(msg, m.keys.Copy):
		return m.copyLastResponse(), nil

	case key.Matches(msg, m.keys.HistoryPrev):
		return m.historyPrev(), nil

	case key.Matches(msg, m.keys.HistoryNext):
		return m.historyNext(), nil

	case key.Matches(msg, m.keys.Complete):
		return m.complete(), nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMIT
// =============================================================================

// submit runs the command in the input field.
func (m Model) submit() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.historyIndex = -1
	m.draft = ""
	m.status.Message = ""
	if raw == "" {
		return m, nil
	}

	m.cmdHistory = append(m.cmdHistory, raw)
	saveCmd := m.saveHistory(raw)

	result := commands.Parse(raw)
	m.logger.Debug("COMMAND", zap.String("input", raw), zap.Stringer("kind", result.Kind))

	switch result.Kind {
	case commands.KindClear:
		return m.clear(), saveCmd

	case commands.KindAPIRequest:
		m.lines = append(m.lines, m.cfg.Prompt()+raw, LoadingLine)
		m.state = StateLoading
		m.status.Status = components.StatusLoading
		m.fetchSeq++

		ctx, cancel := context.WithCancel(context.Background())
		m.cancelMgr.set(cancel)
		m.updateViewport()
		return m, tea.Batch(saveCmd, m.fetchCmd(ctx, m.fetchSeq, result.Endpoint), m.spinner.Tick)

	default:
		m.lines = append(m.lines, m.cfg.Prompt()+raw, "")
		cmd := m.startTyping(util.SplitLines(result.Output))
		return m, tea.Batch(saveCmd, cmd)
	}
}

// =============================================================================
// FETCH
// =============================================================================

func (m Model) handleFetchResult(msg FetchResultMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.fetchSeq || m.state != StateLoading {
		return m, nil
	}
	m.cancelMgr.cancel()

	if msg.Err != nil {
		m.logger.Warn("FETCH_FAILED",
			zap.String("endpoint", string(msg.Endpoint)),
			zap.Duration("duration", msg.Duration),
			zap.Error(msg.Err),
		)
		m.lines[len(m.lines)-1] = ErrorLine
		m.state = StateReady
		m.status.Status = components.StatusError
		m.updateViewport()
		return m, nil
	}

	p := msg.Payload
	m.logger.Info("FETCH_COMPLETE",
		zap.String("endpoint", string(msg.Endpoint)),
		zap.Duration("duration", msg.Duration),
		zap.Bool("from_cache", p.FromCache),
		zap.Bool("stale", p.Stale),
	)

	rendered := backend.Render(p)
	m.lastResponse = rendered
	m.status.LastEndpoint = string(msg.Endpoint)
	m.status.LastFetched = p.FetchedAt
	m.status.FromCache = p.FromCache
	m.status.Stale = p.Stale

	m.lines[len(m.lines)-1] = ""
	cmd := m.startTyping(rendered)
	return m, cmd
}

// cancelFetch abandons the fetch in flight.
func (m Model) cancelFetch() Model {
	m.cancelMgr.cancel()
	m.fetchSeq++
	m.lines[len(m.lines)-1] = CanceledLine
	m.state = StateReady
	m.status.Status = components.StatusReady
	m.updateViewport()
	return m
}

// =============================================================================
// TYPEWRITER
// =============================================================================

// startTyping animates lines into the output buffer.
func (m *Model) startTyping(lines []string) tea.Cmd {
	m.typeSeq++
	m.typing = newTypewriter(lines)
	m.state = StateTyping
	m.status.Status = components.StatusTyping

	if m.typeSpeed <= 0 {
		*m = m.finishTyping()
		return nil
	}
	m.updateViewport()
	return typeTick(m.typeSeq, m.typeSpeed)
}

func (m Model) handleTypeTick(msg TypeTickMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.typeSeq || m.typing == nil {
		return m, nil
	}
	m.lines = m.typing.step(m.lines)
	if m.typing.done() {
		return m.finishTyping(), nil
	}
	m.updateViewport()
	return m, typeTick(m.typeSeq, m.typeSpeed)
}

// finishTyping writes the rest of the animation at once.
func (m Model) finishTyping() Model {
	if m.typing != nil {
		m.lines = m.typing.flush(m.lines)
	}
	m.typing = nil
	m.typeSeq++
	m.state = StateReady
	m.status.Status = components.StatusReady
	m.updateViewport()
	return m
}

// =============================================================================
// ACTIONS
// =============================================================================

// clear resets the output to the intro and abandons any work in flight.
func (m Model) clear() Model {
	m.cancelMgr.cancel()
	m.fetchSeq++
	m.typeSeq++
	m.typing = nil
	m.lines = append([]string(nil), m.intro...)
	m.state = StateReady
	m.status.Status = components.StatusReady
	m.updateViewport()
	m.viewport.GotoTop()
	return m
}

func (m Model) copyLastResponse() Model {
	if len(m.lastResponse) == 0 {
		m.status.Message = "Nothing to copy"
		return m
	}
	text := strings.Join(m.lastResponse, "\n")
	if err := m.clipboard(text); err != nil {
		m.logger.Warn("CLIPBOARD_FAILED", zap.Error(err))
		m.status.Message = "Failed to copy: " + err.Error()
		return m
	}
	m.status.Message = fmt.Sprintf("Copied %s", humanize.Bytes(uint64(len(text))))
	return m
}

func (m Model) historyPrev() Model {
	if len(m.cmdHistory) == 0 {
		return m
	}
	if m.historyIndex == -1 {
		m.draft = m.input.Value()
		m.historyIndex = len(m.cmdHistory) - 1
	} else if m.historyIndex > 0 {
		m.historyIndex--
	}
	m.input.SetValue(m.cmdHistory[m.historyIndex])
	m.input.CursorEnd()
	return m
}

func (m Model) historyNext() Model {
	if m.historyIndex == -1 {
		return m
	}
	m.historyIndex++
	if m.historyIndex >= len(m.cmdHistory) {
		m.historyIndex = -1
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.cmdHistory[m.historyIndex])
	}
	m.input.CursorEnd()
	return m
}

// complete fills in a unique command name or lists the candidates.
func (m Model) complete() Model {
	prefix := m.input.Value()
	if name, ok := m.completer.Single(prefix); ok {
		m.input.SetValue(name)
		m.input.CursorEnd()
		m.status.Message = ""
		return m
	}
	names := m.completer.CompleteNames(prefix)
	if len(names) == 0 {
		m.status.Message = "no matching command"
		return m
	}
	m.status.Message = strings.Join(names, "  ")
	return m
}

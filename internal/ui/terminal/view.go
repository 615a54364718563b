// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal provides the interactive portfolio terminal for the TUI.
package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/termfolio-tui/internal/ui/components"
	"github.com/jeranaias/termfolio-tui/internal/ui/styles"
)

// View renders the terminal.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderPrompt())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// updateViewport re-renders the output buffer into the viewport and
// keeps it scrolled to the bottom.
func (m *Model) updateViewport() {
	styled := make([]string, len(m.lines))
	for i, line := range m.lines {
		styled[i] = m.styleLine(line)
	}
	if m.state == StateTyping && len(styled) > 0 {
		styled[len(styled)-1] += m.theme.Cursor.Render(styles.TypingCursor)
	}

	content := strings.Join(styled, "\n")
	if m.viewport.Width > 0 {
		content = lipgloss.NewStyle().Width(m.viewport.Width).Render(content)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

// styleLine picks a style from the line's content.
func (m Model) styleLine(line string) string {
	prompt := m.cfg.Prompt()
	switch {
	case strings.HasPrefix(line, prompt):
		return m.theme.RenderPrompt(m.cfg.UI.PromptUser, m.cfg.UI.PromptHost) +
			m.theme.Input.Render(strings.TrimPrefix(line, prompt))
	case line == LoadingLine && m.state == StateLoading:
		return m.theme.Loading.Render(m.spinner.View() + " " + line)
	case line == ErrorLine:
		return m.theme.Error.Render(line)
	case components.IsLogoLine(line):
		return m.theme.Banner.Render(line)
	case line == "":
		return ""
	default:
		return m.theme.Output.Render(line)
	}
}

func (m Model) renderPrompt() string {
	return m.theme.RenderPrompt(m.cfg.UI.PromptUser, m.cfg.UI.PromptHost) + m.input.View()
}

func (m Model) renderStatusBar() string {
	bar := m.status
	bar.Hints = m.help.ShortHelpView(m.keys.ShortHelp())
	return bar.Render(m.theme, m.now())
}

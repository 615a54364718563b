// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainTheme_RendersText(t *testing.T) {
	th := NewPlainTheme()
	assert.True(t, th.IsPlain())
	assert.Equal(t, "visitor@portfolio.dev:~$ ", th.RenderPrompt("visitor", "portfolio.dev"))
	assert.Equal(t, "Error fetching data", th.Error.Render("Error fetching data"))
}

func TestNewTheme_InitializesStyles(t *testing.T) {
	th := NewTheme()
	// Every style renders its input text regardless of the color profile.
	assert.Contains(t, th.Banner.Render("ABOUT"), "ABOUT")
	assert.Contains(t, th.StatusBar.Render("api"), "api")
	assert.Contains(t, th.RenderPrompt("u", "h"), "$ ")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termfolio-tui/internal/commands"
	"github.com/jeranaias/termfolio-tui/internal/config"
	"github.com/jeranaias/termfolio-tui/internal/ui/terminal"
)

// =============================================================================
// HELPERS
// =============================================================================

// testEnv is a private home directory and config file for one test.
type testEnv struct {
	t          *testing.T
	dir        string
	configPath string
}

// newTestEnv writes a config file keeping the database and log inside a
// temp dir. extra is appended to the file.
func newTestEnv(t *testing.T, extra string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("TERMFOLIO_API_BASE_URL", "")
	t.Setenv("VITE_API_BASE_URL", "")
	t.Setenv("TERMFOLIO_DATA_DIR", "")
	t.Setenv("TERMFOLIO_NO_CACHE", "")

	path := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf(`
[cache]
enabled = true
ttl_secs = 300
path = '%s'

[log]
file = '%s'

[ui]
type_speed_ms = 0
%s`, filepath.Join(dir, "termfolio.db"), filepath.Join(dir, "termfolio.log"), extra)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	return &testEnv{t: t, dir: dir, configPath: path}
}

// exec runs the command line with stdin and returns stdout and stderr.
func (e *testEnv) exec(stdin string, args ...string) (string, string, error) {
	e.t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(stdin), &out, &errOut)
	a.interactive = func() bool { return false }
	a.colorOut = func() bool { return false }

	err := run(context.Background(), a, append([]string{"--config", e.configPath}, args...))
	return out.String(), errOut.String(), err
}

// mustExec is exec that fails the test on error.
func (e *testEnv) mustExec(stdin string, args ...string) string {
	e.t.Helper()
	out, errOut, err := e.exec(stdin, args...)
	require.NoError(e.t, err, "stderr: %s", errOut)
	return out
}

// portfolioServer serves a fixed body per endpoint and counts requests.
func portfolioServer(t *testing.T, bodies map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := bodies[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

var allBodies = map[string]string{
	"about":      `{"name":"Ada Lovelace","headline":"Analyst"}`,
	"education":  `[]`,
	"skills":     `[{"name":"Go","category":"Languages","proficiency":"Expert"}]`,
	"projects":   `[]`,
	"experience": `[]`,
}

// =============================================================================
// RUN
// =============================================================================

func TestRun_StaticCommands(t *testing.T) {
	env := newTestEnv(t, "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"help", []string{"run", "help"}, commands.HelpText + "\n"},
		{"help mixed case", []string{"run", "  HeLp "}, commands.HelpText + "\n"},
		{"not found echoes raw", []string{"run", "Foo"}, "command not found: Foo\n"},
		{"multi word", []string{"run", "show", "me"}, "command not found: show me\n"},
		{"clear prints nothing", []string{"run", "clear"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, env.mustExec("", tt.args...))
		})
	}
}

func TestRun_Demo(t *testing.T) {
	env := newTestEnv(t, "")

	out := env.mustExec("", "run", "skills", "--demo")
	assert.True(t, strings.HasPrefix(out, "SKILLS\n------\n"), out)
	assert.Contains(t, out, "Languages:")
	assert.Contains(t, out, "Go (Expert)")
}

func TestRun_Raw(t *testing.T) {
	env := newTestEnv(t, "")

	out := env.mustExec("", "run", "about", "--raw", "--demo")
	assert.True(t, json.Valid([]byte(out)), out)
	assert.NotContains(t, out, "\x1b[")
}

func TestRun_DataDir(t *testing.T) {
	env := newTestEnv(t, "")
	data := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(data, "about.json"),
		[]byte(`{"name":"Grace Hopper","headline":"Rear Admiral"}`), 0644))

	out := env.mustExec("", "run", "about", "--data-dir", data)
	assert.Contains(t, out, "Name: Grace Hopper")
	assert.Contains(t, out, "Role: Rear Admiral")

	_, _, err := env.exec("", "run", "skills", "--data-dir", data)
	assert.Error(t, err)
}

func TestRun_API(t *testing.T) {
	srv, hits := portfolioServer(t, allBodies)
	env := newTestEnv(t, "")

	out := env.mustExec("", "run", "about", "--base-url", srv.URL)
	assert.Contains(t, out, "Name: Ada Lovelace")
	assert.Equal(t, int32(1), hits.Load())

	// Second run is answered from the cache.
	out = env.mustExec("", "run", "about", "--base-url", srv.URL)
	assert.Contains(t, out, "Name: Ada Lovelace")
	assert.Equal(t, int32(1), hits.Load())
}

func TestRun_StaleCacheWhenAPIDown(t *testing.T) {
	srv, _ := portfolioServer(t, allBodies)
	env := newTestEnv(t, "")
	// TTL 0 always goes upstream.
	env.mustExec("", "config", "set", "cache.ttl_secs", "0")

	env.mustExec("", "run", "skills", "--base-url", srv.URL)
	srv.Close()

	out, errOut, err := env.exec("", "run", "skills", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Go (Expert)")
	assert.Contains(t, errOut, "showing the copy cached")
}

func TestRun_FetchError(t *testing.T) {
	srv, _ := portfolioServer(t, map[string]string{})
	env := newTestEnv(t, "")

	_, _, err := env.exec("", "run", "projects", "--base-url", srv.URL, "--no-cache")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch projects")
}

func TestRun_RequiresArgs(t *testing.T) {
	env := newTestEnv(t, "")
	_, _, err := env.exec("", "run")
	assert.Error(t, err)
}

// =============================================================================
// PREFETCH
// =============================================================================

func TestPrefetch_API(t *testing.T) {
	srv, hits := portfolioServer(t, allBodies)
	env := newTestEnv(t, "")

	out := env.mustExec("", "prefetch", "--base-url", srv.URL)
	assert.Equal(t, 5, strings.Count(out, "  ok "), out)
	assert.Equal(t, 5, strings.Count(out, "fetched"))
	assert.Equal(t, int32(5), hits.Load())

	out = env.mustExec("", "prefetch", "--base-url", srv.URL)
	assert.Equal(t, 5, strings.Count(out, "cached"), out)
	assert.Equal(t, int32(5), hits.Load())

	env.mustExec("", "prefetch", "--base-url", srv.URL, "--refresh")
	assert.Equal(t, int32(10), hits.Load())
}

func TestPrefetch_Subset(t *testing.T) {
	srv, hits := portfolioServer(t, allBodies)
	env := newTestEnv(t, "")

	out := env.mustExec("", "prefetch", "skills", "about", "--base-url", srv.URL)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "skills")
	assert.Contains(t, lines[1], "about")
	assert.Equal(t, int32(2), hits.Load())
}

func TestPrefetch_Failures(t *testing.T) {
	srv, _ := portfolioServer(t, map[string]string{"about": `{}`})
	env := newTestEnv(t, "")

	out, _, err := env.exec("", "prefetch", "--base-url", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 of 5 endpoints failed")
	assert.Equal(t, 4, strings.Count(out, "FAIL"))
}

func TestPrefetch_List(t *testing.T) {
	srv, hits := portfolioServer(t, allBodies)
	env := newTestEnv(t, "")

	out := env.mustExec("", "prefetch", "--list")
	assert.Equal(t, 5, strings.Count(out, "not cached"), out)

	env.mustExec("", "prefetch", "skills", "--base-url", srv.URL)
	out = env.mustExec("", "prefetch", "--list", "--base-url", srv.URL)
	assert.Equal(t, 4, strings.Count(out, "not cached"), out)
	assert.Regexp(t, `skills\s+fresh`, out)
	assert.Equal(t, int32(1), hits.Load(), "--list does not fetch")
}

func TestPrefetch_InvalidEndpoint(t *testing.T) {
	env := newTestEnv(t, "")
	_, _, err := env.exec("", "prefetch", "bogus", "--demo")
	assert.Error(t, err)
}

func TestPrefetch_Demo(t *testing.T) {
	env := newTestEnv(t, "")

	out, errOut, err := env.exec("", "prefetch", "--demo")
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(out, "  ok "))
	assert.Contains(t, errOut, "not cached")
}

// =============================================================================
// REPL
// =============================================================================

func TestREPL_Transcript(t *testing.T) {
	env := newTestEnv(t, "")

	out := env.mustExec("help\n\nnope\nskills\nexit\nabout\n", "--demo")

	assert.Contains(t, out, "[DEMO]")
	assert.Contains(t, out, "visitor@portfolio.dev:~$ help\n")
	assert.Contains(t, out, commands.HelpText)
	assert.Contains(t, out, "command not found: nope")
	assert.Contains(t, out, "Go (Expert)")
	// Nothing after exit runs.
	assert.NotContains(t, out, "ABOUT")
}

func TestREPL_EOF(t *testing.T) {
	env := newTestEnv(t, "")
	out := env.mustExec("help", "--demo", "--plain")
	assert.Contains(t, out, commands.HelpText)
}

func TestREPL_FetchError(t *testing.T) {
	srv, _ := portfolioServer(t, map[string]string{})
	env := newTestEnv(t, "")

	out := env.mustExec("about\n", "--base-url", srv.URL, "--no-cache")
	assert.Contains(t, out, terminal.ErrorLine)
}

func TestREPL_ClearShowsIntro(t *testing.T) {
	env := newTestEnv(t, "")

	out := env.mustExec("clear\n", "--demo")
	first := strings.Index(out, "Welcome")
	require.GreaterOrEqual(t, first, 0, out)
	assert.Greater(t, strings.LastIndex(out, "Welcome"), first)
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistory(t *testing.T) {
	env := newTestEnv(t, "")

	out := env.mustExec("", "history")
	assert.Equal(t, "No history yet.\n", out)

	env.mustExec("about\n  Skills \n", "--demo")

	out = env.mustExec("", "history")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "about")
	assert.Contains(t, lines[1], "Skills")

	out = env.mustExec("", "history", "-n", "1")
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "Skills")

	assert.Equal(t, "History cleared.\n", env.mustExec("", "history", "--clear"))
	assert.Equal(t, "No history yet.\n", env.mustExec("", "history"))
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfig_InitGetSet(t *testing.T) {
	env := newTestEnv(t, "")
	path := filepath.Join(env.dir, "fresh", "config.toml")
	env.configPath = path

	out := env.mustExec("", "config", "path")
	assert.Equal(t, path+"\n", out)

	out = env.mustExec("", "config", "init")
	assert.Contains(t, out, "Wrote "+path)
	assert.FileExists(t, path)

	_, _, err := env.exec("", "config", "init")
	assert.Error(t, err)
	env.mustExec("", "config", "init", "--force")

	assert.Equal(t, "ui.type_speed_ms = 40\n", env.mustExec("", "config", "set", "ui.type_speed_ms", "40"))
	assert.Equal(t, "40\n", env.mustExec("", "config", "get", "ui.type_speed_ms"))

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.UI.TypeSpeedMs)
}

func TestConfig_SetRejectsInvalid(t *testing.T) {
	env := newTestEnv(t, "")

	_, _, err := env.exec("", "config", "set", "no.such_key", "1")
	assert.Error(t, err)

	_, _, err = env.exec("", "config", "set", "api.base_url", "ftp://example.com")
	assert.Error(t, err)

	_, _, err = env.exec("", "config", "set", "ui.type_speed_ms", "fast")
	assert.Error(t, err)
}

func TestConfig_ShowReflectsFlags(t *testing.T) {
	env := newTestEnv(t, "")

	out := env.mustExec("", "config", "show", "--base-url", "https://api.example.com/")
	assert.Contains(t, out, "api.base_url")
	assert.Contains(t, out, "https://api.example.com\n")

	out = env.mustExec("", "config", "show", "--json")
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "api")
}

func TestConfig_InvalidOverride(t *testing.T) {
	env := newTestEnv(t, "")

	_, _, err := env.exec("", "config", "show", "--base-url", "ftp://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
}

// =============================================================================
// VERSION
// =============================================================================

func TestVersion(t *testing.T) {
	env := newTestEnv(t, "")

	out := env.mustExec("", "version")
	assert.Contains(t, out, "termfolio version "+Version)
	assert.Contains(t, out, "Git commit: "+GitCommit)

	assert.Equal(t, out, env.mustExec("", "--version"))
}

// =============================================================================
// FLAGS
// =============================================================================

func TestGlobalFlags_Apply(t *testing.T) {
	cfg := config.Default()
	f := globalFlags{
		baseURL: "https://example.com/api",
		dataDir: "/srv/portfolio",
		demo:    true,
		noCache: true,
		debug:   true,
	}
	f.apply(cfg)

	assert.Equal(t, "https://example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "/srv/portfolio", cfg.Offline.DataDir)
	assert.True(t, cfg.Offline.Demo)
	assert.False(t, cfg.Cache.Enabled)
	assert.True(t, cfg.Log.Debug)

	// Unset flags leave the config alone.
	cfg = config.Default()
	(&globalFlags{}).apply(cfg)
	assert.Equal(t, config.Default().API.BaseURL, cfg.API.BaseURL)
	assert.True(t, cfg.Cache.Enabled)
}

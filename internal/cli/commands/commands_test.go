package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/signalboard/internal/cli/config"
	clitestutil "github.com/leapstack-labs/signalboard/internal/cli/testutil"
	"github.com/leapstack-labs/signalboard/internal/controller"
	"github.com/leapstack-labs/signalboard/internal/loader"
	"github.com/leapstack-labs/signalboard/internal/render"
	"github.com/leapstack-labs/signalboard/internal/sampledata"
	"github.com/leapstack-labs/signalboard/internal/testutil"
	"github.com/leapstack-labs/signalboard/pkg/core"
)

// execute runs cmd with cfg and a test logger in its context and returns stdout.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)

	ctx := context.WithValue(context.Background(), config.LoggerKey(), testutil.NewTestLogger(t))
	ctx = config.WithConfig(ctx, cfg)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

// embeddedConfig returns a config that falls back to the embedded sample data.
func embeddedConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	return config.Default()
}

func dirConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.SetDataDir(dir)
	return cfg
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{cmd: NewServeCommand(), use: "serve", flags: []string{"port", "no-browser", "watch", "session-ttl", "dev"}},
		{cmd: NewShowCommand(), use: "show", flags: []string{"tab", "scenario", "format"}},
		{cmd: NewCheckCommand(), use: "check", flags: []string{"format"}},
		{cmd: NewTUICommand(), use: "tui"},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Example, "Example should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}

	assert.Equal(t, []string{"ui"}, NewServeCommand().Aliases)
}

// =============================================================================
// Data source selection
// =============================================================================

func TestNewSource(t *testing.T) {
	t.Run("embedded fallback", func(t *testing.T) {
		cfg := embeddedConfig(t)
		source, dir, err := newSource(cfg)
		require.NoError(t, err)
		assert.Empty(t, dir)
		assert.Equal(t, "fs:embedded sample data", source.String())
	})

	t.Run("default data dir when present", func(t *testing.T) {
		cfg := embeddedConfig(t)
		require.NoError(t, copyDir(t, "data"))
		source, dir, err := newSource(cfg)
		require.NoError(t, err)
		assert.NotEmpty(t, dir)
		assert.Equal(t, "fs:"+dir, source.String())
	})

	t.Run("explicit dir", func(t *testing.T) {
		dir := clitestutil.SetupDataDir(t, nil)
		source, got, err := newSource(dirConfig(dir))
		require.NoError(t, err)
		assert.Equal(t, dir, got)
		assert.Equal(t, "fs:"+dir, source.String())
	})

	t.Run("explicit dir missing", func(t *testing.T) {
		_, _, err := newSource(dirConfig(t.TempDir() + "/nope"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "data directory does not exist")
	})

	t.Run("url", func(t *testing.T) {
		cfg := config.Default()
		cfg.DataURL = "http://example.com/board"
		source, dir, err := newSource(cfg)
		require.NoError(t, err)
		assert.Empty(t, dir)
		assert.Equal(t, "http://example.com/board/", source.String())
	})
}

// copyDir copies the sample data into name under the working directory.
func copyDir(t *testing.T, name string) error {
	t.Helper()
	src := clitestutil.SetupDataDir(t, nil)
	return os.Rename(src, name)
}

// =============================================================================
// show
// =============================================================================

func TestShow_MarkdownWhenPiped(t *testing.T) {
	out, err := execute(t, NewShowCommand(), embeddedConfig(t))
	require.NoError(t, err)

	for _, want := range []string{
		"# Network Overview",
		"**Scenario: Normal**",
		"> Freight is moving on plan",
		"- Terminal dwell below 40 minutes",
		"Live: North hub, Harbor terminal, Inland depot",
		"## KPIs",
		"| On-time delivery | 94.2% | +0.8 pts | neutral |",
		"## Recommendations",
		"| Plan | Shift weekend volume to the Inland depot |",
	} {
		assert.Contains(t, out, want)
	}
	clitestutil.AssertNoANSI(t, out)
}

func TestShow_JSONAppliesScenario(t *testing.T) {
	out, err := execute(t, NewShowCommand(), embeddedConfig(t),
		"--tab", "fleet", "--scenario", "disrupt", "--format", "json")
	require.NoError(t, err)

	var got ShowOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, core.Tab{ID: "fleet", Label: "Fleet"}, got.Tab)
	assert.Equal(t, core.ScenarioDisrupt, got.Scenario)
	assert.Equal(t, "Disrupt", got.ScenarioLabel)
	assert.Len(t, got.Signals, 4)
	require.NotNil(t, got.View)
	assert.Equal(t, []string{"Disruption detected"}, got.View.MapBadges)
	assert.Equal(t, core.ToneWarn, got.View.KPIs[0].Tone)
	require.Len(t, got.View.Recommendations, 3)
	assert.Equal(t, "Detect/Freeze", got.View.Recommendations[0].Tag)
	assert.Equal(t, "Maintain", got.View.Recommendations[1].Tag)
}

func TestShow_OutputConfigSelectsFormat(t *testing.T) {
	cfg := embeddedConfig(t)
	cfg.Output = config.OutputJSON

	out, err := execute(t, NewShowCommand(), cfg, "--tab", "corridors")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), "output should be JSON, got: %s", out)
}

func TestShow_Text(t *testing.T) {
	out, err := execute(t, NewShowCommand(), embeddedConfig(t),
		"--tab", "fleet", "--scenario", "correct", "--format", "text")
	require.NoError(t, err)

	for _, want := range []string{
		"Signalboard",
		"Scenario: Correct",
		"[Fleet]",
		"[3 Correct]",
		"Correction in progress",
		"Correct/Optimize",
		"Utilization",
	} {
		assert.Contains(t, out, want)
	}
	clitestutil.AssertNoANSI(t, out)
}

func TestShow_Errors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string][]byte
		args      []string
		wantErr   error
		wantLoad  bool
		wantText  string
	}{
		{
			name:    "unknown tab",
			args:    []string{"--tab", "nope"},
			wantErr: controller.ErrUnknownTab,
		},
		{
			name:    "unknown scenario",
			args:    []string{"--scenario", "heatWave"},
			wantErr: controller.ErrUnknownScenario,
		},
		{
			name:      "tab dataset missing",
			overrides: map[string][]byte{"fleet.json": nil},
			args:      []string{"--tab", "fleet", "--format", "text"},
			wantLoad:  true,
			wantText:  "Failed to load Fleet.",
		},
		{
			name:      "bootstrap failure",
			overrides: map[string][]byte{"scenarios.json": []byte("{")},
			args:      []string{"--format", "text"},
			wantLoad:  true,
			wantText:  render.BootstrapFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := clitestutil.SetupDataDir(t, tt.overrides)

			out, err := execute(t, NewShowCommand(), dirConfig(dir), tt.args...)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantLoad {
				assert.True(t, loader.IsLoadError(err), "expected a load error, got %v", err)
			}
			if tt.wantText != "" {
				assert.Contains(t, out, tt.wantText)
			}
		})
	}
}

func TestShow_MissingDataDir(t *testing.T) {
	_, err := execute(t, NewShowCommand(), dirConfig(t.TempDir()+"/missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory does not exist")
}

// =============================================================================
// check
// =============================================================================

func TestCheck_AllResources(t *testing.T) {
	out, err := execute(t, NewCheckCommand(), embeddedConfig(t), "--format", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "Source: fs:embedded sample data")
	for _, want := range []string{"config.json", "scenarios.json", "overview.json", "corridors.json", "fleet.json", "3 tabs", "3 scenarios"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, StatusFailed)
}

func TestCheck_ReportsFailures(t *testing.T) {
	dir := clitestutil.SetupDataDir(t, map[string][]byte{
		"fleet.json": nil,
		"scenarios.json": []byte(`{
			"normal": {"narration": "n", "signals": []},
			"drill": {"narration": "d", "signals": []}
		}`),
	})

	out, err := execute(t, NewCheckCommand(), dirConfig(dir), "--format", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 5 resources failed to load")

	var got CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Results, 5)

	byResource := make(map[string]CheckResult, len(got.Results))
	for _, res := range got.Results {
		byResource[res.Resource] = res
	}
	assert.Equal(t, StatusFailed, byResource["fleet.json"].Status)
	assert.Contains(t, byResource["fleet.json"].Detail, "fleet.json")
	assert.Equal(t, StatusOK, byResource["scenarios.json"].Status)
	assert.Contains(t, byResource["scenarios.json"].Detail, "no overlay for drill")
}

func TestCheck_ConfigMissingSkipsTabs(t *testing.T) {
	dir := clitestutil.SetupDataDir(t, map[string][]byte{"config.json": nil})

	out, err := execute(t, NewCheckCommand(), dirConfig(dir), "--format", "json")
	require.Error(t, err)

	var got CheckOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Results, 2)
	assert.Equal(t, 1, got.Failed)
}

func TestCheck_HTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.FileServer(http.FS(sampledata.FS())))
	defer srv.Close()

	cfg := config.Default()
	cfg.DataURL = srv.URL

	out, err := execute(t, NewCheckCommand(), cfg, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Source: "+srv.URL+"/")
	assert.Equal(t, 5, strings.Count(out, "| "+StatusOK+" |"))
}

// =============================================================================
// serve
// =============================================================================

func TestServe_StopsWithContext(t *testing.T) {
	cfg := embeddedConfig(t)
	cfg.UI.Port = 0
	cfg.UI.AutoOpen = false

	cmd := NewServeCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs(nil)

	ctx, cancel := context.WithCancel(config.WithConfig(context.Background(), cfg))
	cancel()

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, out.String(), "Serving dashboard on http://localhost:0")
}

func TestGenerateSessionSecret(t *testing.T) {
	a := generateSessionSecret()
	b := generateSessionSecret()

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

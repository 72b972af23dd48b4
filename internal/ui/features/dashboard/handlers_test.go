package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/signalboard/internal/render"
	"github.com/leapstack-labs/signalboard/internal/testutil"
	"github.com/leapstack-labs/signalboard/internal/ui/features"
	"github.com/leapstack-labs/signalboard/internal/ui/notifier"
	"github.com/leapstack-labs/signalboard/pkg/core"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

type testApp struct {
	router   chi.Router
	registry *Registry
	fixture  *features.TestFixture
}

func setupTestApp(t *testing.T, data fstest.MapFS) *testApp {
	t.Helper()

	fixture := features.SetupTestFixture(t, data)
	registry := NewRegistry(fixture.Loader, time.Minute, testutil.NewTestLogger(t))

	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, registry, fixture.SessionStore, fixture.Notifier, testutil.NewTestLogger(t)))

	return &testApp{router: r, registry: registry, fixture: fixture}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// openPage loads the dashboard page and returns the response carrying the session cookie.
func (a *testApp) openPage(t *testing.T) *http.Response {
	t.Helper()
	rec := a.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Result()
}

func (a *testApp) get(page *http.Response, target string) *httptest.ResponseRecorder {
	req := features.RequestWithCookies(httptest.NewRequest(http.MethodGet, target, nil), page)
	return a.do(req)
}

func (a *testApp) onlySession(t *testing.T) *Session {
	t.Helper()
	sessions := a.registry.snapshot()
	require.Len(t, sessions, 1)
	return sessions[0]
}

func countEvents(body string) int {
	return strings.Count(body, "event:")
}

// =============================================================================
// Page Tests - Full HTML page responses with server-rendered content
// =============================================================================

func TestPage(t *testing.T) {
	app := setupTestApp(t, nil)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	for _, want := range []string{
		"<!doctype html>",
		"<title>Operations - Signalboard</title>",
		"data-init",
		"/updates",
		`data-tab="ops"`,
		`data-tab="fleet"`,
		"Scenario: Normal",
		"All lanes nominal.",
		"Ops volume",
		"kpi-tile neutral",
		"Hold course",
	} {
		assert.Contains(t, body, want, "response should contain %q", want)
	}

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, 1, app.registry.Len())
}

func TestPage_ReloadRestartsSession(t *testing.T) {
	app := setupTestApp(t, nil)
	page := app.openPage(t)
	first := app.onlySession(t)

	rec := app.get(page, "/scenarios/disrupt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, core.ScenarioDisrupt, first.Controller.State().ActiveScenario)

	// Reloading keeps the session id but starts from the initial view state.
	rec = app.get(page, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	second := app.onlySession(t)
	assert.Equal(t, first.ID, second.ID)
	assert.NotSame(t, first, second)
	assert.Equal(t, core.ScenarioNormal, second.Controller.State().ActiveScenario)
	assert.Contains(t, rec.Body.String(), "Scenario: Normal")
}

func TestPage_BootstrapFailure(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{name: "config missing", missing: "config.json"},
		{name: "catalog missing", missing: "scenarios.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := features.SampleData()
			delete(data, tt.missing)
			app := setupTestApp(t, data)

			rec := app.do(httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Equal(t, 1, strings.Count(body, render.BootstrapFailure))
			assert.NotContains(t, body, "data-tab=")
			assert.NotContains(t, body, "data-init", "a failed page does not subscribe to updates")

			page := rec.Result()
			tab := app.get(page, "/tabs/ops")
			assert.Contains(t, tab.Body.String(), "console.error")
			assert.NotContains(t, tab.Body.String(), "kpi-grid")
		})
	}
}

// =============================================================================
// Interaction Tests - SSE responses patching regions
// =============================================================================

func TestSelectTab(t *testing.T) {
	app := setupTestApp(t, nil)
	page := app.openPage(t)

	rec := app.get(page, "/tabs/fleet")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.GreaterOrEqual(t, countEvents(body), 8, "tab nav plus every content region")
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "Fleet usage")
	assert.Contains(t, body, "Rotate tires")
	assert.NotContains(t, body, "Scenario: Normal", "scenario regions are not repainted")

	assert.Equal(t, "fleet", app.onlySession(t).Controller.State().ActiveTab)
}

func TestSelectScenario_ThenTab_KeepsOverlay(t *testing.T) {
	app := setupTestApp(t, nil)
	page := app.openPage(t)

	rec := app.get(page, "/scenarios/correct")
	body := rec.Body.String()
	assert.Contains(t, body, "Scenario: Correct")
	assert.Contains(t, body, "Recovery under way.")
	assert.Contains(t, body, "Correct/Optimize")
	assert.Contains(t, body, "Correction in progress")

	rec = app.get(page, "/tabs/fleet")
	body = rec.Body.String()
	assert.Contains(t, body, "Correct/Optimize")
	assert.Contains(t, body, "kpi-tile good")
	assert.Contains(t, body, "Fleet usage")

	assert.Equal(t, core.ViewState{ActiveTab: "fleet", ActiveScenario: core.ScenarioCorrect},
		app.onlySession(t).Controller.State())
}

func TestSelect_UnknownInput(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "unknown tab", target: "/tabs/nope"},
		{name: "unknown scenario", target: "/scenarios/heatWave"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(t, nil)
			page := app.openPage(t)

			rec := app.get(page, tt.target)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "console.error")
			assert.Equal(t, core.ViewState{ActiveTab: "ops", ActiveScenario: core.ScenarioNormal},
				app.onlySession(t).Controller.State())
		})
	}
}

func TestSelectTab_LoadFailurePatchesNotice(t *testing.T) {
	data := features.SampleData()
	delete(data, "fleet.json")
	app := setupTestApp(t, data)
	page := app.openPage(t)

	body := app.get(page, "/tabs/fleet").Body.String()

	assert.Contains(t, body, "Failed to load Fleet.")
	assert.Contains(t, body, "console.error")
	assert.NotContains(t, body, "Fleet usage")
}

func TestInteractions_WithoutSessionReload(t *testing.T) {
	app := setupTestApp(t, nil)

	for _, target := range []string{"/tabs/ops", "/scenarios/disrupt", "/updates"} {
		t.Run(target, func(t *testing.T) {
			rec := app.do(httptest.NewRequest(http.MethodGet, target, nil))
			body := rec.Body.String()
			assert.Equal(t, 1, countEvents(body))
			assert.Contains(t, body, "window.location.reload()")
		})
	}
}

// =============================================================================
// Updates Tests - SSE endpoint for live updates only
// =============================================================================

func streamUpdates(t *testing.T, app *testApp, page *http.Response, timeout time.Duration, events ...notifier.Event) string {
	t.Helper()

	req := features.RequestWithCookies(httptest.NewRequest(http.MethodGet, "/updates", nil), page)
	ctx, cancel := context.WithTimeout(req.Context(), timeout)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		app.router.ServeHTTP(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return app.fixture.Notifier.Len() == 1 }, time.Second, 5*time.Millisecond)
	for _, ev := range events {
		app.fixture.Notifier.Broadcast(ev)
		time.Sleep(20 * time.Millisecond)
	}

	<-done
	return rec.Body.String()
}

func TestUpdates_NoInitialState(t *testing.T) {
	app := setupTestApp(t, nil)
	page := app.openPage(t)

	body := streamUpdates(t, app, page, 50*time.Millisecond)

	assert.Equal(t, 0, countEvents(body), "should have no SSE events without broadcast")
}

func TestUpdates_RefreshesActiveTab(t *testing.T) {
	app := setupTestApp(t, nil)
	page := app.openPage(t)

	app.fixture.Data["ops.json"] = &fstest.MapFile{Data: []byte(`{"chartText":"Ops volume v2","kpis":[],"recommendations":[]}`)}
	app.registry.Invalidate("ops")

	body := streamUpdates(t, app, page, 300*time.Millisecond,
		notifier.Event{Kind: notifier.DataChanged, Tabs: []string{"ops"}})

	assert.GreaterOrEqual(t, countEvents(body), 1)
	assert.Contains(t, body, "Ops volume v2")
}

func TestUpdates_IgnoresOtherTabs(t *testing.T) {
	app := setupTestApp(t, nil)
	page := app.openPage(t)

	body := streamUpdates(t, app, page, 200*time.Millisecond,
		notifier.Event{Kind: notifier.DataChanged, Tabs: []string{"fleet"}})

	assert.Equal(t, 0, countEvents(body))
}

func TestUpdates_ReloadsPage(t *testing.T) {
	app := setupTestApp(t, nil)
	page := app.openPage(t)

	body := streamUpdates(t, app, page, 200*time.Millisecond, notifier.Event{Kind: notifier.Reload})

	assert.Equal(t, 1, countEvents(body))
	assert.Contains(t, body, "window.location.reload()")
}

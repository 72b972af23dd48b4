// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/signalboard/internal/loader"
	"github.com/leapstack-labs/signalboard/internal/testutil"
	"github.com/leapstack-labs/signalboard/internal/ui/notifier"
)

// TestSessionSecret signs session cookies in tests.
const TestSessionSecret = "test-secret-key-32-bytes-long!!"

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Data         fstest.MapFS
	Loader       *loader.Loader
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

// SampleData returns a two-tab dataset with all three scenarios.
func SampleData() fstest.MapFS {
	return fstest.MapFS{
		"config.json": {Data: []byte(`{"tabs":[{"id":"ops","label":"Operations"},{"id":"fleet","label":"Fleet"}]}`)},
		"scenarios.json": {Data: []byte(`{
			"normal":{"narration":"All lanes nominal.","signals":["steady demand"]},
			"disrupt":{"narration":"Storm front inbound.","signals":["wind"]},
			"correct":{"narration":"Recovery under way.","signals":["lanes reopening"]}}`)},
		"ops.json": {Data: []byte(`{"chartText":"Ops volume","explain":"Ops within plan.","mapBadges":["North"],
			"kpis":[{"label":"On-time","value":"94%","delta":"+1","tone":"neutral"}],
			"recommendations":[{"tag":"Plan","text":"Hold course","why":"Stable."}]}`)},
		"fleet.json": {Data: []byte(`{"chartText":"Fleet usage","explain":"Fleet healthy.","mapBadges":[],
			"kpis":[{"label":"Trucks","value":"120","delta":"0","tone":"neutral"}],
			"recommendations":[{"tag":"Maintain","text":"Rotate tires","why":"Schedule."}]}`)},
	}
}

// SetupTestFixture creates a fixture serving data. A nil data uses SampleData.
func SetupTestFixture(t *testing.T, data fstest.MapFS) *TestFixture {
	t.Helper()
	if data == nil {
		data = SampleData()
	}
	return &TestFixture{
		Data:         data,
		Loader:       loader.New(loader.FSSource(data, "test"), testutil.NewTestLogger(t)),
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithCookies copies the cookies set by a previous response onto r.
func RequestWithCookies(r *http.Request, resp *http.Response) *http.Request {
	for _, c := range resp.Cookies() {
		r.AddCookie(c)
	}
	return r
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte(TestSessionSecret))
}

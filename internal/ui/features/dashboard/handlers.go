// Package dashboard serves the dashboard page and its interactions.
package dashboard

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/signalboard/internal/controller"
	"github.com/leapstack-labs/signalboard/internal/ui/components"
	"github.com/leapstack-labs/signalboard/internal/ui/notifier"
	"github.com/leapstack-labs/signalboard/pkg/core"
)

const (
	// CookieName is the name of the session cookie.
	CookieName   = "signalboard"
	sessionIDKey = "id"
	reloadScript = "window.location.reload()"
)

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	registry     *Registry
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(registry *Registry, sessionStore sessions.Store, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		registry:     registry,
		sessionStore: sessionStore,
		notifier:     notify,
		logger:       logger,
	}
}

// Page starts a fresh dashboard for the browser and renders the full page.
// A failed bootstrap still renders the page, showing only the failure notice.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	cookie, _ := h.sessionStore.Get(r, CookieName)
	id, _ := cookie.Values[sessionIDKey].(string)

	sess := h.registry.Start(id)
	cookie.Values[sessionIDKey] = sess.ID
	if err := cookie.Save(r, w); err != nil {
		h.logger.Error("failed to save session cookie", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := sess.Controller.Bootstrap(r.Context()); err != nil {
		h.logger.Error("dashboard unavailable", "session", sess.ID, "error", err)
	}

	data := components.PageData{
		Regions:    sess.Page.Regions(),
		UpdatesURL: "/updates",
	}
	if !sess.Controller.Ready() {
		data.UpdatesURL = ""
	}
	if tab, ok := activeTab(sess.Controller); ok {
		data.Title = tab.Label
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.Page(data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SelectTab switches the session to the tab in the URL and streams the
// repainted regions.
func (h *Handlers) SelectTab(w http.ResponseWriter, r *http.Request) {
	tabID := chi.URLParam(r, "tabID")
	sess, ok := h.session(r)
	sse := datastar.NewSSE(w, r)
	if !ok {
		_ = sse.ExecuteScript(reloadScript)
		return
	}

	ctx := controller.WithPainter(r.Context(), ssePainter{sse: sse})
	if err := sess.Controller.SelectTab(ctx, tabID); err != nil {
		h.report(sse, sess, "tab selection failed", err, "tab", tabID)
	}
}

// SelectScenario switches the session to the scenario in the URL and
// streams the repainted regions.
func (h *Handlers) SelectScenario(w http.ResponseWriter, r *http.Request) {
	key := core.ScenarioKey(chi.URLParam(r, "key"))
	sess, ok := h.session(r)
	sse := datastar.NewSSE(w, r)
	if !ok {
		_ = sse.ExecuteScript(reloadScript)
		return
	}

	ctx := controller.WithPainter(r.Context(), ssePainter{sse: sse})
	if err := sess.Controller.SelectScenario(ctx, key); err != nil {
		h.report(sse, sess, "scenario selection failed", err, "scenario", key)
	}
}

// Updates is the long-lived SSE endpoint of the page. It repaints the active
// tab when its data changes and reloads the page when bootstrap resources
// change. Nothing is sent up front; the page is already rendered.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	sse := datastar.NewSSE(w, r)
	if !ok {
		_ = sse.ExecuteScript(reloadScript)
		return
	}

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	painter := ssePainter{sse: sse}
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-updates:
			if ev.Kind == notifier.Reload {
				if err := sse.ExecuteScript(reloadScript); err != nil {
					return
				}
				continue
			}
			state := sess.Controller.State()
			if len(ev.Tabs) > 0 && !slices.Contains(ev.Tabs, state.ActiveTab) {
				continue
			}
			if err := sess.Controller.Refresh(controller.WithPainter(ctx, painter)); err != nil {
				h.report(sse, sess, "refresh failed", err)
			}
		}
	}
}

// session returns the live session named by the request's cookie.
func (h *Handlers) session(r *http.Request) (*Session, bool) {
	cookie, err := h.sessionStore.Get(r, CookieName)
	if err != nil {
		return nil, false
	}
	id, _ := cookie.Values[sessionIDKey].(string)
	if id == "" {
		return nil, false
	}
	return h.registry.Lookup(id)
}

func (h *Handlers) report(sse *datastar.ServerSentEventGenerator, sess *Session, msg string, err error, args ...any) {
	args = append(args, "session", sess.ID, "error", err)
	if errors.Is(err, controller.ErrNotReady) {
		h.logger.Debug(msg, args...)
	} else {
		h.logger.Warn(msg, args...)
	}
	_ = sse.ConsoleError(err)
}

func activeTab(c *controller.Controller) (core.Tab, bool) {
	cfg := c.Config()
	if cfg == nil {
		return core.Tab{}, false
	}
	return cfg.Tab(c.State().ActiveTab)
}

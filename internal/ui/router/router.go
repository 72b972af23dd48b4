// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	dashboardFeature "github.com/leapstack-labs/signalboard/internal/ui/features/dashboard"
	"github.com/leapstack-labs/signalboard/internal/ui/notifier"
	"github.com/leapstack-labs/signalboard/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	registry *dashboardFeature.Registry,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) error {
	if isDev {
		setupReload(router, notify)
	}

	router.Handle("/static/*", resources.Handler())

	return dashboardFeature.SetupRoutes(router, registry, sessionStore, notify, logger)
}

// setupReload lets external tooling reload every open page, for example after
// rebuilding the binary or editing the stylesheet.
func setupReload(router chi.Router, notify *notifier.Notifier) {
	router.Post("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		notify.Broadcast(notifier.Event{Kind: notifier.Reload})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

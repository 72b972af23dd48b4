package dashboard

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/signalboard/internal/ui/notifier"
)

// SetupRoutes configures routes for the dashboard feature.
func SetupRoutes(
	router chi.Router,
	registry *Registry,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(registry, sessionStore, notify, logger)

	router.Get("/", handlers.Page)
	router.Get("/tabs/{tabID}", handlers.SelectTab)
	router.Get("/scenarios/{key}", handlers.SelectScenario)
	router.Get("/updates", handlers.Updates)

	return nil
}

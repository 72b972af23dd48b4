package controller

import "errors"

var (
	// ErrNotReady is returned by interactions before a successful Bootstrap.
	ErrNotReady = errors.New("dashboard not ready")
	// ErrUnknownTab is returned when a tab id is not in the configuration.
	ErrUnknownTab = errors.New("unknown tab")
	// ErrUnknownScenario is returned when a scenario key is not in the catalog.
	ErrUnknownScenario = errors.New("unknown scenario")
)

// Package loader fetches and decodes the dashboard's JSON resources.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/leapstack-labs/signalboard/pkg/core"
)

// Resource paths relative to the data root.
const (
	ConfigPath  = "config.json"
	CatalogPath = "scenarios.json"
)

// TabPath returns the resource path of a tab's dataset.
func TabPath(tabID string) string {
	return tabID + ".json"
}

// Loader decodes resources from a Source. It never retries: a failure is
// returned to the caller immediately as a *LoadError.
type Loader struct {
	source Source
	logger *slog.Logger
}

// New creates a Loader. A nil logger discards output.
func New(source Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{source: source, logger: logger}
}

// Source returns the underlying source.
func (l *Loader) Source() Source {
	return l.source
}

// Load fetches path and decodes its JSON payload into v.
func (l *Loader) Load(ctx context.Context, path string, v any) error {
	start := time.Now()

	rc, err := l.source.Open(ctx, path)
	if err != nil {
		le := newLoadError(path, err)
		l.logger.Warn("resource load failed", "path", path, "source", l.source.String(), "error", err)
		return le
	}
	defer func() { _ = rc.Close() }()

	if err := decodeOne(rc, v); err != nil {
		l.logger.Warn("resource parse failed", "path", path, "source", l.source.String(), "error", err)
		return &LoadError{Path: path, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	l.logger.Debug("resource loaded", "path", path, "source", l.source.String(), "duration", time.Since(start))
	return nil
}

// decodeOne decodes exactly one JSON value from r; anything but whitespace
// after it is an error.
func decodeOne(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after top-level value")
		}
		return err
	}
	return nil
}

// LoadConfig loads and checks the dashboard configuration.
func (l *Loader) LoadConfig(ctx context.Context) (*core.Config, error) {
	var cfg core.Config
	if err := l.Load(ctx, ConfigPath, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Path: ConfigPath, Err: err}
	}
	return &cfg, nil
}

// LoadCatalog loads and checks the scenario catalog.
func (l *Loader) LoadCatalog(ctx context.Context) (core.Catalog, error) {
	var catalog core.Catalog
	if err := l.Load(ctx, CatalogPath, &catalog); err != nil {
		return nil, err
	}
	if err := catalog.Validate(); err != nil {
		return nil, &LoadError{Path: CatalogPath, Err: err}
	}
	return catalog, nil
}

// LoadTab loads the dataset of a single tab.
func (l *Loader) LoadTab(ctx context.Context, tabID string) (*core.Dataset, error) {
	var data core.Dataset
	if err := l.Load(ctx, TabPath(tabID), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Package controller owns the view state of one dashboard session and drives
// the pipeline from user interaction to painted regions.
//
// A tab or scenario selection updates the view state, asks the tab cache for
// the base dataset, derives the scenario view model and paints the rendered
// regions. Fetches run without holding any lock, so interactions may overlap;
// every pipeline run carries a generation number and a run that finishes after
// a newer one has started is discarded instead of painted.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/signalboard/internal/render"
	"github.com/leapstack-labs/signalboard/internal/scenario"
	"github.com/leapstack-labs/signalboard/pkg/core"
)

// Resources loads the bootstrap resources. *loader.Loader satisfies it.
type Resources interface {
	LoadConfig(ctx context.Context) (*core.Config, error)
	LoadCatalog(ctx context.Context) (core.Catalog, error)
}

// TabData supplies base datasets per tab. *tabcache.Cache satisfies it.
type TabData interface {
	Get(ctx context.Context, tabID string) (*core.Dataset, error)
}

// Options configures a Controller.
type Options struct {
	Loader  Resources
	Cache   TabData
	Painter Painter
	Logger  *slog.Logger
}

// Controller is the state machine of one dashboard session.
type Controller struct {
	loader  Resources
	cache   TabData
	painter Painter
	logger  *slog.Logger

	// paintMu orders state transitions with the paints they cause.
	// Lock order: paintMu, then mu.
	paintMu sync.Mutex

	mu         sync.Mutex
	state      core.ViewState
	cfg        *core.Config
	catalog    core.Catalog
	ready      bool
	bootErr    error
	generation uint64
}

// New creates a Controller in the initial view state. A nil Painter records
// into a fresh Recorder; a nil Logger discards output.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	painter := opts.Painter
	if painter == nil {
		painter = NewRecorder()
	}
	return &Controller{
		loader:  opts.Loader,
		cache:   opts.Cache,
		painter: painter,
		logger:  logger,
		state:   core.InitialViewState(),
	}
}

// run is one pipeline execution for a tab under a scenario.
type run struct {
	generation uint64
	tab        core.Tab
	scenario   core.ScenarioKey
}

// Bootstrap loads the configuration and scenario catalog, paints the
// selectors and narration, and selects the first tab.
//
// If a bootstrap resource fails to load, Bootstrap paints a single failure
// notice and returns the load error. The controller then stays unusable and
// later interactions return ErrNotReady.
func (c *Controller) Bootstrap(ctx context.Context) error {
	cfg, err := c.loader.LoadConfig(ctx)
	if err != nil {
		return c.fail(ctx, err)
	}
	catalog, err := c.loader.LoadCatalog(ctx)
	if err != nil {
		return c.fail(ctx, err)
	}

	c.paintMu.Lock()
	c.mu.Lock()
	c.cfg = cfg
	c.catalog = catalog
	c.ready = true
	c.bootErr = nil
	c.state = core.InitialViewState()
	c.generation++
	key := c.state.ActiveScenario
	c.mu.Unlock()

	regions := []render.Region{
		render.ClearNotice(),
		render.Tabs(cfg.Tabs, ""),
		render.ScenarioControls(catalog.Keys(), key),
		render.ScenarioPill(key),
	}
	regions = append(regions, render.Scenario(catalog[key])...)
	err = c.paint(ctx, regions...)
	c.paintMu.Unlock()
	if err != nil {
		return err
	}

	c.logger.Debug("dashboard bootstrapped", "tabs", len(cfg.Tabs), "scenarios", len(catalog))

	first, _ := cfg.FirstTab()
	return c.SelectTab(ctx, first.ID)
}

func (c *Controller) fail(ctx context.Context, err error) error {
	c.paintMu.Lock()
	defer c.paintMu.Unlock()

	c.mu.Lock()
	c.ready = false
	c.bootErr = err
	c.mu.Unlock()

	c.logger.Error("dashboard bootstrap failed", "error", err)
	if perr := c.paint(ctx, render.Notice(render.BootstrapFailure)); perr != nil {
		c.logger.Warn("failed to paint bootstrap notice", "error", perr)
	}
	return fmt.Errorf("bootstrap: %w", err)
}

// SelectTab makes tabID the active tab, repaints the tab selector and renders
// the tab's content under the active scenario.
func (c *Controller) SelectTab(ctx context.Context, tabID string) error {
	c.paintMu.Lock()
	c.mu.Lock()
	if !c.ready {
		c.mu.Unlock()
		c.paintMu.Unlock()
		return ErrNotReady
	}
	tab, ok := c.cfg.Tab(tabID)
	if !ok {
		c.mu.Unlock()
		c.paintMu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownTab, tabID)
	}
	c.state.ActiveTab = tab.ID
	r := c.beginLocked(tab)
	tabs := c.cfg.Tabs
	c.mu.Unlock()

	err := c.paint(ctx, render.Tabs(tabs, tab.ID))
	c.paintMu.Unlock()
	if err != nil {
		return err
	}
	return c.execute(ctx, r)
}

// SelectScenario makes key the active scenario, repaints the scenario
// indicator and narration, and re-renders the active tab if there is one.
func (c *Controller) SelectScenario(ctx context.Context, key core.ScenarioKey) error {
	c.paintMu.Lock()
	c.mu.Lock()
	if !c.ready {
		c.mu.Unlock()
		c.paintMu.Unlock()
		return ErrNotReady
	}
	if !c.catalog.Has(key) {
		c.mu.Unlock()
		c.paintMu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownScenario, key)
	}
	c.state.ActiveScenario = key
	s := c.catalog[key]
	keys := c.catalog.Keys()

	var r *run
	if c.state.HasActiveTab() {
		tab, _ := c.cfg.Tab(c.state.ActiveTab)
		next := c.beginLocked(tab)
		r = &next
	}
	c.mu.Unlock()

	regions := []render.Region{
		render.ScenarioPill(key),
		render.ScenarioControls(keys, key),
	}
	regions = append(regions, render.Scenario(s)...)
	err := c.paint(ctx, regions...)
	c.paintMu.Unlock()
	if err != nil || r == nil {
		return err
	}
	return c.execute(ctx, *r)
}

// Refresh re-renders the active tab. It is a no-op when no tab is active.
// Callers invalidate cached data first when the underlying data changed.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if !c.ready {
		c.mu.Unlock()
		return ErrNotReady
	}
	if !c.state.HasActiveTab() {
		c.mu.Unlock()
		return nil
	}
	tab, _ := c.cfg.Tab(c.state.ActiveTab)
	r := c.beginLocked(tab)
	c.mu.Unlock()

	return c.execute(ctx, r)
}

// State returns a snapshot of the view state.
func (c *Controller) State() core.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Config returns the loaded configuration, or nil before Bootstrap succeeds.
func (c *Controller) Config() *core.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Catalog returns the loaded scenario catalog, or nil before Bootstrap succeeds.
func (c *Controller) Catalog() core.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog
}

// Ready reports whether Bootstrap has succeeded.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Err returns the error of the last failed Bootstrap, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bootErr
}

// beginLocked starts a new pipeline run. c.mu must be held.
func (c *Controller) beginLocked(tab core.Tab) run {
	c.generation++
	return run{generation: c.generation, tab: tab, scenario: c.state.ActiveScenario}
}

// execute fetches the run's base data and paints its content, unless a newer
// run started in the meantime.
func (c *Controller) execute(ctx context.Context, r run) error {
	base, err := c.cache.Get(ctx, r.tab.ID)

	c.paintMu.Lock()
	defer c.paintMu.Unlock()

	if !c.current(r.generation) {
		c.logger.Debug("discarding stale render",
			"tab", r.tab.ID, "scenario", r.scenario, "generation", r.generation, "error", err)
		return nil
	}

	if err != nil {
		c.logger.Warn("tab load failed", "tab", r.tab.ID, "error", err)
		if perr := c.paint(ctx, render.Notice(fmt.Sprintf("Failed to load %s.", r.tab.Label))); perr != nil {
			c.logger.Warn("failed to paint notice", "error", perr)
		}
		return fmt.Errorf("load tab %q: %w", r.tab.ID, err)
	}

	view := scenario.Transform(base, r.scenario)
	regions := append(render.Content(r.tab.Label, view), render.ClearNotice())
	return c.paint(ctx, regions...)
}

func (c *Controller) current(generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation == generation
}

// paint applies regions to the session painter and to any painter carried by ctx.
func (c *Controller) paint(ctx context.Context, regions ...render.Region) error {
	if err := c.painter.Paint(ctx, regions...); err != nil {
		return fmt.Errorf("paint: %w", err)
	}
	if p := painterFrom(ctx); p != nil {
		if err := p.Paint(ctx, regions...); err != nil {
			return fmt.Errorf("paint: %w", err)
		}
	}
	return nil
}

package core

import (
	"errors"
	"fmt"
)

// Tab describes one content view backed by its own dataset resource.
type Tab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Config is the static dashboard configuration, loaded once per session.
type Config struct {
	Tabs []Tab `json:"tabs"`
}

// Validate checks the existence invariants: at least one tab, ids present and unique.
func (c *Config) Validate() error {
	if c == nil || len(c.Tabs) == 0 {
		return errors.New("config must declare at least one tab")
	}
	seen := make(map[string]bool, len(c.Tabs))
	for i, t := range c.Tabs {
		if t.ID == "" {
			return fmt.Errorf("tab %d has an empty id", i)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate tab id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// Tab returns the tab with the given id.
func (c *Config) Tab(id string) (Tab, bool) {
	if c == nil {
		return Tab{}, false
	}
	for _, t := range c.Tabs {
		if t.ID == id {
			return t, true
		}
	}
	return Tab{}, false
}

// FirstTab returns the first configured tab, if any.
func (c *Config) FirstTab() (Tab, bool) {
	if c == nil || len(c.Tabs) == 0 {
		return Tab{}, false
	}
	return c.Tabs[0], true
}

// KPI is a labeled metric tile with a qualitative tone indicator.
type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta"`
	Tone  string `json:"tone"`
}

// KPI tones used by scenario overlays. Datasets may carry other tones.
const (
	ToneGood    = "good"
	ToneWarn    = "warn"
	ToneNeutral = "neutral"
)

// Recommendation is one entry of the recommendation list.
type Recommendation struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
	Why  string `json:"why"`
}

// Dataset is the per-tab data resource. Once fetched it is owned by the tab
// cache and must not be mutated; derive copies with Clone.
type Dataset struct {
	ChartText       string           `json:"chartText"`
	Explain         string           `json:"explain"`
	MapBadges       []string         `json:"mapBadges"`
	KPIs            []KPI            `json:"kpis"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Clone returns a deep copy of d that shares no slices with it.
// Nil slices stay nil and empty slices stay empty.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	return &Dataset{
		ChartText:       d.ChartText,
		Explain:         d.Explain,
		MapBadges:       cloneSlice(d.MapBadges),
		KPIs:            cloneSlice(d.KPIs),
		Recommendations: cloneSlice(d.Recommendations),
	}
}

// cloneSlice copies a slice of value types. All element types used here
// (string, KPI, Recommendation) contain no references.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

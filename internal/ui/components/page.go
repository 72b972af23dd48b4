package components

import (
	"github.com/leapstack-labs/signalboard/internal/render"
)

// DatastarScript is the client runtime that applies SSE patches.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0-RC.6/bundles/datastar.js"

// PageData holds everything needed to render the full dashboard page.
type PageData struct {
	Title string
	// Regions painted so far; containers without a region render empty.
	Regions []render.Region
	// UpdatesURL is the long-lived SSE endpoint the page subscribes to.
	UpdatesURL string
}

type slot struct {
	id    string
	tag   string
	class string
}

// Slots in page order. Each is a placeholder until a region with its id is painted.
var (
	headerSlots = []slot{
		{render.IDScenarioPill, "span", "pill"},
	}
	navSlots = []slot{
		{render.IDTabNav, "nav", "tab-nav"},
	}
	asideSlots = []slot{
		{render.IDScenarioControls, "div", "scenario-controls"},
		{render.IDNarration, "p", "narration"},
		{render.IDSignals, "ul", "signals"},
	}
	mainSlots = []slot{
		{render.IDNotice, "div", "notice"},
		{render.IDTabTitle, "h2", "tab-title"},
		{render.IDChartText, "p", "chart-text"},
		{render.IDMapBadgeLabel, "span", "map-label"},
		{render.IDMapBadges, "div", "map-badges"},
		{render.IDExplainText, "p", "explain-text"},
		{render.IDKPIGrid, "div", "kpi-grid"},
		{render.IDRecList, "ul", "rec-list"},
	}
)

func pageTitle(title string) string {
	if title == "" {
		return "Signalboard"
	}
	return title + " - Signalboard"
}

// fillSlots returns the painted region for each slot, or an empty container
// when nothing with that id has been painted yet.
func fillSlots(painted []render.Region, list []slot) []render.Region {
	byID := make(map[string]render.Region, len(painted))
	for _, r := range painted {
		byID[r.ID] = r
	}
	out := make([]render.Region, 0, len(list))
	for _, s := range list {
		r, ok := byID[s.id]
		if !ok {
			r = render.Region{ID: s.id, Tag: s.tag, Class: s.class}
		}
		out = append(out, r)
	}
	return out
}

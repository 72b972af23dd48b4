package render

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/signalboard/pkg/core"
)

// LiveLabel is shown above the map badges whenever content renders.
const LiveLabel = "Live"

// BootstrapFailure is the notice shown when the dashboard cannot start.
const BootstrapFailure = "Failed to load data. Ensure files are served via http."

// Tabs renders the tab selector, marking activeID as active.
func Tabs(tabs []core.Tab, activeID string) Region {
	children := make([]Node, 0, len(tabs))
	for _, tab := range tabs {
		class := ""
		if tab.ID == activeID {
			class = "active"
		}
		children = append(children, Node{
			Tag:    "button",
			Class:  class,
			Text:   tab.Label,
			Attrs:  []Attr{{Key: "data-tab", Value: tab.ID}},
			Action: &Action{Kind: ActionSelectTab, Value: tab.ID},
		})
	}
	return Region{ID: IDTabNav, Tag: "nav", Class: "tab-nav", Children: children}
}

// ScenarioControls renders one button per scenario key, marking active.
func ScenarioControls(keys []core.ScenarioKey, active core.ScenarioKey) Region {
	children := make([]Node, 0, len(keys))
	for _, key := range keys {
		activeClass := ""
		if key == active {
			activeClass = "active"
		}
		children = append(children, Node{
			Tag:    "button",
			Class:  classes("scenario-btn", activeClass),
			Text:   ScenarioLabel(key),
			Attrs:  []Attr{{Key: "data-scenario", Value: string(key)}},
			Action: &Action{Kind: ActionSelectScenario, Value: string(key)},
		})
	}
	return Region{ID: IDScenarioControls, Tag: "div", Class: "scenario-controls", Children: children}
}

// ScenarioLabel returns the display label of a scenario key: its first letter
// upper-cased, the rest unchanged ("high-load" becomes "High-load").
func ScenarioLabel(key core.ScenarioKey) string {
	s := string(key)
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	// A Caser is stateful, so each call gets its own.
	return cases.Upper(language.English).String(s[:size]) + s[size:]
}

// ScenarioPill renders the active scenario indicator.
func ScenarioPill(key core.ScenarioKey) Region {
	return Region{
		ID:       IDScenarioPill,
		Tag:      "span",
		Class:    "pill",
		Children: []Node{text("Scenario: " + ScenarioLabel(key))},
	}
}

// Narration renders the narration text of a scenario.
func Narration(s core.Scenario) Region {
	return Region{ID: IDNarration, Tag: "p", Class: "narration", Children: []Node{text(s.Narration)}}
}

// Signals renders the signal list of a scenario, one item per signal.
func Signals(s core.Scenario) Region {
	children := make([]Node, 0, len(s.Signals))
	for _, signal := range s.Signals {
		children = append(children, textEl("li", "", signal))
	}
	return Region{ID: IDSignals, Tag: "ul", Class: "signals", Children: children}
}

// Scenario renders both narration regions for s.
func Scenario(s core.Scenario) []Region {
	return []Region{Narration(s), Signals(s)}
}

// Content renders every region driven by a tab's view model.
// title is the active tab's label; it may be empty.
func Content(title string, data *core.Dataset) []Region {
	if data == nil {
		data = &core.Dataset{}
	}
	return []Region{
		TabTitle(title),
		MapBadgeLabel(),
		ChartText(data.ChartText),
		ExplainText(data.Explain),
		MapBadges(data.MapBadges),
		KPIs(data.KPIs),
		Recommendations(data.Recommendations),
	}
}

// TabTitle renders the heading of the content area.
func TabTitle(title string) Region {
	return textRegion(IDTabTitle, "h2", "tab-title", title)
}

// MapBadgeLabel renders the label above the map badges.
func MapBadgeLabel() Region {
	return textRegion(IDMapBadgeLabel, "span", "map-label", LiveLabel)
}

// ChartText renders the chart caption.
func ChartText(s string) Region {
	return textRegion(IDChartText, "p", "chart-text", s)
}

// ExplainText renders the explanation paragraph.
func ExplainText(s string) Region {
	return textRegion(IDExplainText, "p", "explain-text", s)
}

// MapBadges renders one badge per entry, in order.
func MapBadges(badges []string) Region {
	children := make([]Node, 0, len(badges))
	for _, b := range badges {
		children = append(children, textEl("span", "badge", b))
	}
	return Region{ID: IDMapBadges, Tag: "div", Class: "map-badges", Children: children}
}

// KPIs renders one tile per KPI, classed by tone.
func KPIs(kpis []core.KPI) Region {
	children := make([]Node, 0, len(kpis))
	for _, kpi := range kpis {
		children = append(children, el("div", classes("kpi-tile", kpi.Tone),
			textEl("p", "kpi-label", kpi.Label),
			textEl("p", "kpi-value", kpi.Value),
			textEl("p", "kpi-delta", kpi.Delta),
		))
	}
	return Region{ID: IDKPIGrid, Tag: "div", Class: "kpi-grid", Children: children}
}

// Recommendations renders the recommendation list, in order.
func Recommendations(recs []core.Recommendation) Region {
	children := make([]Node, 0, len(recs))
	for _, rec := range recs {
		children = append(children, el("li", "rec-item",
			textEl("div", "rec-tag", rec.Tag),
			el("div", "",
				textEl("p", "rec-text", rec.Text),
				textEl("p", "rec-why", rec.Why),
			),
		))
	}
	return Region{ID: IDRecList, Tag: "ul", Class: "rec-list", Children: children}
}

// Notice renders a visible error notice.
func Notice(msg string) Region {
	return Region{ID: IDNotice, Tag: "div", Class: "notice notice-error", Children: []Node{text(msg)}}
}

// ClearNotice renders an empty, hidden notice.
func ClearNotice() Region {
	return Region{ID: IDNotice, Tag: "div", Class: "notice"}
}

func textRegion(id, tag, class, s string) Region {
	r := Region{ID: id, Tag: tag, Class: class}
	if s != "" {
		r.Children = []Node{text(s)}
	}
	return r
}

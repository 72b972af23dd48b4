// Package render turns dashboard data into pure descriptions of UI regions.
//
// Renderers never touch a concrete UI. Each returns a Region that fully
// describes one container and all of its contents; applying a Region replaces
// whatever the container held before, so rendering twice with the same input
// yields the same result. Painters in other packages apply regions to HTML or
// a terminal.
package render

import "strings"

// Region ids, one per UI container.
const (
	IDTabNav           = "tab-nav"
	IDScenarioControls = "scenario-controls"
	IDScenarioPill     = "scenario-pill"
	IDNarration        = "narration"
	IDSignals          = "signals-list"
	IDTabTitle         = "tab-title"
	IDMapBadgeLabel    = "map-badge-label"
	IDChartText        = "chart-text"
	IDExplainText      = "explain-text"
	IDMapBadges        = "map-badges"
	IDKPIGrid          = "kpi-grid"
	IDRecList          = "rec-list"
	IDNotice           = "notice"
)

// ActionKind names the user interaction a node triggers.
type ActionKind string

// Action kinds.
const (
	ActionSelectTab      ActionKind = "tab"
	ActionSelectScenario ActionKind = "scenario"
)

// Action is the interaction bound to a node, such as selecting a tab.
type Action struct {
	Kind  ActionKind
	Value string
}

// Attr is a single element attribute. Attributes keep their declared order.
type Attr struct {
	Key   string
	Value string
}

// Node is one element of a region. A node with an empty Tag is a text node.
type Node struct {
	Tag      string
	Class    string
	Text     string
	Attrs    []Attr
	Action   *Action
	Children []Node
}

// Region describes a UI container and its complete contents.
type Region struct {
	ID       string
	Tag      string
	Class    string
	Children []Node
}

// Text returns the text content of the region, one line per text-bearing node.
func (r Region) Text() string {
	var lines []string
	for _, n := range r.Children {
		lines = n.appendText(lines)
	}
	return strings.Join(lines, "\n")
}

// TextContent returns the text content of the node and its descendants.
func (n Node) TextContent() string {
	return strings.Join(n.appendText(nil), "\n")
}

func (n Node) appendText(lines []string) []string {
	if n.Text != "" {
		lines = append(lines, n.Text)
	}
	for _, c := range n.Children {
		lines = c.appendText(lines)
	}
	return lines
}

// Attr returns the value of the named attribute.
func (n Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// HasClass reports whether the node's class list contains class.
func (n Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

func text(s string) Node {
	return Node{Text: s}
}

func el(tag, class string, children ...Node) Node {
	return Node{Tag: tag, Class: class, Children: children}
}

func textEl(tag, class, s string) Node {
	return Node{Tag: tag, Class: class, Text: s}
}

func classes(names ...string) string {
	var out []string
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

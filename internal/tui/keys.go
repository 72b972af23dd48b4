package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	NextTab  key.Binding
	PrevTab  key.Binding
	Scenario key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("→/tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("←/shift+tab", "previous tab"),
		),
		Scenario: key.NewBinding(
			key.WithKeys(scenarioKeys()...),
			key.WithHelp("1-9", "scenario"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Scenario, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab},
		{k.Scenario, k.Refresh},
		{k.Help, k.Quit},
	}
}

// maxScenarioKeys is the number of scenarios reachable by a digit key.
const maxScenarioKeys = 9

func scenarioKeys() []string {
	keys := make([]string, 0, maxScenarioKeys)
	for i := 1; i <= maxScenarioKeys; i++ {
		keys = append(keys, strconv.Itoa(i))
	}
	return keys
}

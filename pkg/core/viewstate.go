package core

// ViewState is the per-session UI state: the active tab and active scenario.
// An empty ActiveTab means no tab has been selected yet.
type ViewState struct {
	ActiveTab      string
	ActiveScenario ScenarioKey
}

// InitialViewState returns the state a session starts in.
func InitialViewState() ViewState {
	return ViewState{ActiveScenario: DefaultScenario}
}

// HasActiveTab reports whether a tab has been selected.
func (s ViewState) HasActiveTab() bool {
	return s.ActiveTab != ""
}

package core

import (
	"errors"
	"sort"
)

// ScenarioKey identifies a scenario in the catalog.
type ScenarioKey string

// Scenario keys with defined overlay behaviour.
const (
	ScenarioNormal  ScenarioKey = "normal"
	ScenarioDisrupt ScenarioKey = "disrupt"
	ScenarioCorrect ScenarioKey = "correct"

	// DefaultScenario is active when a session starts.
	DefaultScenario = ScenarioNormal
)

// Scenario is the narration shown for a scenario key.
type Scenario struct {
	Narration string   `json:"narration"`
	Signals   []string `json:"signals"`
}

// Catalog maps scenario keys to their narration.
type Catalog map[ScenarioKey]Scenario

// Validate checks that the catalog defines the default scenario.
func (c Catalog) Validate() error {
	if _, ok := c[DefaultScenario]; !ok {
		return errors.New("scenario catalog must define the \"normal\" scenario")
	}
	return nil
}

// Has reports whether key is defined in the catalog.
func (c Catalog) Has(key ScenarioKey) bool {
	_, ok := c[key]
	return ok
}

// Keys returns the catalog keys in display order: normal, disrupt, correct,
// then any remaining keys sorted.
func (c Catalog) Keys() []ScenarioKey {
	keys := make([]ScenarioKey, 0, len(c))
	known := map[ScenarioKey]bool{}
	for _, k := range []ScenarioKey{ScenarioNormal, ScenarioDisrupt, ScenarioCorrect} {
		known[k] = true
		if c.Has(k) {
			keys = append(keys, k)
		}
	}

	var rest []ScenarioKey
	for k := range c {
		if !known[k] {
			rest = append(rest, k)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })

	return append(keys, rest...)
}

// Package scenario derives render-ready view models from cached tab datasets.
package scenario

import "github.com/leapstack-labs/signalboard/pkg/core"

// Overlay is the fixed perturbation a non-default scenario applies to a dataset.
type Overlay struct {
	Badge          string
	Recommendation core.Recommendation
	// LeadTone replaces the tone of the first KPI.
	LeadTone string
}

var overlays = map[core.ScenarioKey]Overlay{
	core.ScenarioDisrupt: {
		Badge: "Disruption detected",
		Recommendation: core.Recommendation{
			Tag:  "Detect/Freeze",
			Text: "Isolate volatile corridors and throttle risky trips",
			Why:  "Anomaly signatures triggered freeze protocols.",
		},
		LeadTone: core.ToneWarn,
	},
	core.ScenarioCorrect: {
		Badge: "Correction in progress",
		Recommendation: core.Recommendation{
			Tag:  "Correct/Optimize",
			Text: "Stabilize lanes and optimize dwell times",
			Why:  "Recovery phase active—optimize flows to restore margins.",
		},
		LeadTone: core.ToneGood,
	},
}

// OverlayFor returns the overlay applied by key, if it has one.
func OverlayFor(key core.ScenarioKey) (Overlay, bool) {
	o, ok := overlays[key]
	return o, ok
}

// Known reports whether key has defined transform behaviour.
func Known(key core.ScenarioKey) bool {
	if key == core.ScenarioNormal {
		return true
	}
	_, ok := overlays[key]
	return ok
}

// Transform returns a deep copy of base adjusted for key. base is never
// modified and the result shares no slices with it.
//
// The default scenario, and any key without an overlay, yields the plain copy.
func Transform(base *core.Dataset, key core.ScenarioKey) *core.Dataset {
	data := base.Clone()
	if data == nil {
		return nil
	}

	o, ok := overlays[key]
	if !ok {
		return data
	}

	data.MapBadges = prepend(data.MapBadges, o.Badge)
	data.Recommendations = prepend(data.Recommendations, o.Recommendation)
	if len(data.KPIs) > 0 {
		data.KPIs[0].Tone = o.LeadTone
	}
	return data
}

func prepend[T any](s []T, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, v)
	return append(out, s...)
}

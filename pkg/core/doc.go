// Package core defines the shared language of the signalboard system.
//
// This package contains:
//   - Dashboard configuration (Config, Tab)
//   - Scenario catalog entries (Catalog, Scenario, ScenarioKey)
//   - Per-tab datasets (Dataset, KPI, Recommendation)
//   - The session view state (ViewState)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core

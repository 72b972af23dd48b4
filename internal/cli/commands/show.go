package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/signalboard/internal/cli/output"
	"github.com/leapstack-labs/signalboard/internal/controller"
	"github.com/leapstack-labs/signalboard/internal/render"
	"github.com/leapstack-labs/signalboard/internal/scenario"
	"github.com/leapstack-labs/signalboard/internal/tabcache"
	"github.com/leapstack-labs/signalboard/internal/tui"
	"github.com/leapstack-labs/signalboard/pkg/core"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	Tab      string
	Scenario string
	Format   string
}

// ShowOutput is the JSON output for the show command.
type ShowOutput struct {
	Tab           core.Tab         `json:"tab"`
	Scenario      core.ScenarioKey `json:"scenario"`
	ScenarioLabel string           `json:"scenarioLabel"`
	Narration     string           `json:"narration"`
	Signals       []string         `json:"signals"`
	View          *core.Dataset    `json:"view"`
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print one tab of the dashboard under a scenario",
		Long: `Render a single dashboard view and exit.

The view goes through the same pipeline as the web UI: the tab's dataset is
loaded, the scenario overlay is applied, and the regions are rendered.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: The scenario view model`,
		Example: `  # Show the first tab under the normal scenario
  signalboard show

  # Show the fleet tab during a disruption
  signalboard show --tab fleet --scenario disrupt

  # Machine-readable view model
  signalboard show --tab corridors --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Tab, "tab", "", "Tab id (default: first tab)")
	cmd.Flags().StringVarP(&opts.Scenario, "scenario", "s", string(core.DefaultScenario), "Scenario key")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json (default: --output)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runShow(cmd *cobra.Command, opts *ShowOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	mode, err := output.ParseMode(opts.Format)
	if err != nil {
		return err
	}
	r := cc.Renderer
	if opts.Format != "" {
		r = r.WithMode(mode)
	}

	ctx := cmd.Context()
	page := controller.NewRecorder()
	ctrl, cache := cc.NewController(page)

	err = selectView(ctx, ctrl, opts)
	if r.Mode() == output.ModeText {
		// Text output shows whatever was painted, failure notices included.
		r.Println(tui.Dashboard(textStyles(r), page, r.Width()))
	}
	if err != nil {
		return err
	}

	switch r.Mode() {
	case output.ModeJSON:
		out, err := buildShowOutput(ctx, ctrl, cache)
		if err != nil {
			return err
		}
		return r.JSON(out)
	case output.ModeMarkdown:
		out, err := buildShowOutput(ctx, ctrl, cache)
		if err != nil {
			return err
		}
		renderShowMarkdown(r, out)
	}
	return nil
}

func selectView(ctx context.Context, ctrl *controller.Controller, opts *ShowOptions) error {
	if err := ctrl.Bootstrap(ctx); err != nil {
		return err
	}
	if opts.Scenario != "" {
		if err := ctrl.SelectScenario(ctx, core.ScenarioKey(opts.Scenario)); err != nil {
			return err
		}
	}
	if opts.Tab != "" && opts.Tab != ctrl.State().ActiveTab {
		if err := ctrl.SelectTab(ctx, opts.Tab); err != nil {
			return err
		}
	}
	return nil
}

// buildShowOutput derives the view model of the controller's active view.
// The tab is already cached by the time it runs.
func buildShowOutput(ctx context.Context, ctrl *controller.Controller, cache *tabcache.Cache) (*ShowOutput, error) {
	state := ctrl.State()
	tab, _ := ctrl.Config().Tab(state.ActiveTab)
	base, err := cache.Get(ctx, tab.ID)
	if err != nil {
		return nil, fmt.Errorf("load tab %q: %w", tab.ID, err)
	}
	narration := ctrl.Catalog()[state.ActiveScenario]
	return &ShowOutput{
		Tab:           tab,
		Scenario:      state.ActiveScenario,
		ScenarioLabel: render.ScenarioLabel(state.ActiveScenario),
		Narration:     narration.Narration,
		Signals:       narration.Signals,
		View:          scenario.Transform(base, state.ActiveScenario),
	}, nil
}

func renderShowMarkdown(r *output.Renderer, out *ShowOutput) {
	view := out.View

	r.Printf("# %s\n\n", out.Tab.Label)
	r.Printf("**Scenario: %s**\n\n", out.ScenarioLabel)
	if out.Narration != "" {
		r.Printf("> %s\n\n", out.Narration)
	}
	for _, s := range out.Signals {
		r.Printf("- %s\n", s)
	}
	if len(out.Signals) > 0 {
		r.Println()
	}

	if view.ChartText != "" {
		r.Printf("%s\n\n", view.ChartText)
	}
	if view.Explain != "" {
		r.Printf("_%s_\n\n", view.Explain)
	}
	if len(view.MapBadges) > 0 {
		r.Printf("%s: %s\n\n", render.LiveLabel, strings.Join(view.MapBadges, ", "))
	}

	if len(view.KPIs) > 0 {
		r.Println("## KPIs")
		r.Println()
		rows := make([]table.Row, 0, len(view.KPIs))
		for _, k := range view.KPIs {
			rows = append(rows, table.Row{k.Label, k.Value, k.Delta, k.Tone})
		}
		r.Table(table.Row{"KPI", "Value", "Delta", "Tone"}, rows)
		r.Println()
	}

	if len(view.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println()
		rows := make([]table.Row, 0, len(view.Recommendations))
		for _, rec := range view.Recommendations {
			rows = append(rows, table.Row{rec.Tag, rec.Text, rec.Why})
		}
		r.Table(table.Row{"Tag", "Recommendation", "Why"}, rows)
	}
}

func textStyles(r *output.Renderer) tui.Styles {
	if r.Styled() {
		return tui.DefaultStyles()
	}
	return tui.PlainStyles()
}

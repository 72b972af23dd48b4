package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/signalboard/internal/cli/output"
	"github.com/leapstack-labs/signalboard/internal/loader"
	"github.com/leapstack-labs/signalboard/internal/scenario"
)

// Check statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// CheckResult is the outcome of loading one resource.
type CheckResult struct {
	Resource string `json:"resource"`
	Kind     string `json:"kind"`
	Status   string `json:"status"`
	Detail   string `json:"detail,omitempty"`
}

// CheckOutput is the JSON output for the check command.
type CheckOutput struct {
	Source  string        `json:"source"`
	Results []CheckResult `json:"results"`
	Failed  int           `json:"failed"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load every dashboard resource and report problems",
		Long: `Load the configuration, the scenario catalog and every tab dataset from the
configured data source, and report the status of each.

The command exits non-zero when any resource fails to load.`,
		Example: `  signalboard check
  signalboard check --data-url https://example.com/board --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			mode, err := output.ParseMode(format)
			if err != nil {
				return err
			}
			r := cc.Renderer
			if format != "" {
				r = r.WithMode(mode)
			}

			out := runCheck(cmd.Context(), cc.Loader)
			if err := renderCheck(r, out); err != nil {
				return err
			}
			if out.Failed > 0 {
				return fmt.Errorf("%d of %d resources failed to load", out.Failed, len(out.Results))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json (default: --output)")
	return cmd
}

// runCheck loads every resource once. Tab datasets are only checked when
// the configuration loads.
func runCheck(ctx context.Context, ld *loader.Loader) *CheckOutput {
	out := &CheckOutput{Source: ld.Source().String()}
	add := func(res CheckResult, err error) {
		if err != nil {
			res.Status = StatusFailed
			res.Detail = err.Error()
			out.Failed++
		} else {
			res.Status = StatusOK
		}
		out.Results = append(out.Results, res)
	}

	cfg, err := ld.LoadConfig(ctx)
	res := CheckResult{Resource: loader.ConfigPath, Kind: "config"}
	if err == nil {
		res.Detail = fmt.Sprintf("%d tabs", len(cfg.Tabs))
	}
	add(res, err)

	catalog, err := ld.LoadCatalog(ctx)
	res = CheckResult{Resource: loader.CatalogPath, Kind: "scenarios"}
	if err == nil {
		res.Detail = fmt.Sprintf("%d scenarios", len(catalog))
		var plain []string
		for _, key := range catalog.Keys() {
			if !scenario.Known(key) {
				plain = append(plain, string(key))
			}
		}
		if len(plain) > 0 {
			res.Detail += "; no overlay for " + strings.Join(plain, ", ")
		}
	}
	add(res, err)

	if cfg == nil {
		return out
	}
	for _, tab := range cfg.Tabs {
		data, err := ld.LoadTab(ctx, tab.ID)
		res := CheckResult{Resource: loader.TabPath(tab.ID), Kind: "tab " + tab.ID}
		if err == nil {
			res.Detail = fmt.Sprintf("%d KPIs, %d recommendations", len(data.KPIs), len(data.Recommendations))
		}
		add(res, err)
	}
	return out
}

func renderCheck(r *output.Renderer, out *CheckOutput) error {
	if r.Mode() == output.ModeJSON {
		return r.JSON(out)
	}

	r.Printf("Source: %s\n\n", out.Source)
	rows := make([]table.Row, 0, len(out.Results))
	for _, res := range out.Results {
		rows = append(rows, table.Row{res.Resource, res.Kind, res.Status, res.Detail})
	}
	r.Table(table.Row{"Resource", "Kind", "Status", "Detail"}, rows)
	return nil
}

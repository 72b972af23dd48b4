package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/signalboard/internal/render"
)

// Regions looks up painted regions by id. *controller.Recorder satisfies it.
type Regions interface {
	Region(id string) (render.Region, bool)
}

// Dashboard draws every painted region as terminal text. Unpainted regions
// are skipped. width bounds the KPI row; zero means unbounded.
func Dashboard(s Styles, regions Regions, width int) string {
	get := func(id string) (render.Region, bool) {
		r, ok := regions.Region(id)
		return r, ok && len(r.Children) > 0
	}

	var sections []string

	header := s.Header.Render("Signalboard")
	if pill, ok := get(render.IDScenarioPill); ok {
		header = lipgloss.JoinHorizontal(lipgloss.Center, header, "  ", s.Pill.Render(pill.Text()))
	}
	sections = append(sections, header)

	if nav, ok := get(render.IDTabNav); ok {
		sections = append(sections, buttonRow(nav, s.Tab, s.ActiveTab, false))
	}
	if controls, ok := get(render.IDScenarioControls); ok {
		sections = append(sections, s.Muted.Render("Scenario: ")+buttonRow(controls, s.Scenario, s.Active, true))
	}
	if notice, ok := get(render.IDNotice); ok {
		sections = append(sections, s.Notice.Render(notice.Text()))
	}
	if narration, ok := get(render.IDNarration); ok {
		sections = append(sections, s.Body.Render(narration.Text()))
	}
	if signals, ok := get(render.IDSignals); ok {
		sections = append(sections, bullets(s.Muted, signals))
	}

	if title, ok := get(render.IDTabTitle); ok {
		sections = append(sections, s.Title.Render(title.Text()))
	}
	if chart, ok := get(render.IDChartText); ok {
		sections = append(sections, s.Body.Render(chart.Text()))
	}
	if badges, ok := get(render.IDMapBadges); ok {
		line := ""
		if label, ok := get(render.IDMapBadgeLabel); ok {
			line = s.Muted.Render(label.Text()+":") + " "
		}
		parts := make([]string, 0, len(badges.Children))
		for _, b := range badges.Children {
			parts = append(parts, s.Badge.Render(b.TextContent()))
		}
		sections = append(sections, line+strings.Join(parts, " "))
	}
	if explain, ok := get(render.IDExplainText); ok {
		sections = append(sections, s.Muted.Render(explain.Text()))
	}
	if kpis, ok := get(render.IDKPIGrid); ok {
		sections = append(sections, kpiRow(s, kpis, width))
	}
	if recs, ok := get(render.IDRecList); ok {
		sections = append(sections, recommendations(s, recs))
	}

	return strings.Join(sections, "\n")
}

// buttonRow draws a row of selectable buttons, bracketing the active one.
func buttonRow(r render.Region, normal, active lipgloss.Style, numbered bool) string {
	parts := make([]string, 0, len(r.Children))
	for i, b := range r.Children {
		label := b.TextContent()
		if numbered && i < maxScenarioKeys {
			label = strconv.Itoa(i+1) + " " + label
		}
		if b.HasClass("active") {
			parts = append(parts, active.Render("["+label+"]"))
		} else {
			parts = append(parts, normal.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

func bullets(style lipgloss.Style, r render.Region) string {
	lines := make([]string, 0, len(r.Children))
	for _, item := range r.Children {
		lines = append(lines, style.Render("• "+item.TextContent()))
	}
	return strings.Join(lines, "\n")
}

func kpiRow(s Styles, r render.Region, width int) string {
	var (
		rows    []string
		current []string
		used    int
	)
	for _, tile := range r.Children {
		style := s.Tile
		for tone, color := range s.ToneColors {
			if tile.HasClass(tone) {
				style = style.BorderForeground(color)
			}
		}
		lines := make([]string, 0, len(tile.Children))
		for _, part := range tile.Children {
			lines = append(lines, part.TextContent())
		}
		rendered := style.Render(strings.Join(lines, "\n"))

		w := lipgloss.Width(rendered)
		if width > 0 && used > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current, used = nil, 0
		}
		current = append(current, rendered)
		used += w
	}
	if len(current) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}
	return strings.Join(rows, "\n")
}

func recommendations(s Styles, r render.Region) string {
	lines := make([]string, 0, len(r.Children))
	for _, item := range r.Children {
		if len(item.Children) < 2 {
			continue
		}
		tag := item.Children[0].TextContent()
		body := item.Children[1].Children
		text, why := "", ""
		if len(body) > 0 {
			text = body[0].TextContent()
		}
		if len(body) > 1 {
			why = body[1].TextContent()
		}
		lines = append(lines, s.RecTag.Render(tag)+text)
		if why != "" {
			lines = append(lines, s.RecTag.Render("")+s.Muted.Render(why))
		}
	}
	return strings.Join(lines, "\n")
}

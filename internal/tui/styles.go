package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#0369a1", Dark: "#38bdf8"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#64748b", Dark: "#94a3b8"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#cbd5e1", Dark: "#334155"}
	colorGood    = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#22c55e"}
	colorWarn    = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f59e0b"}
	colorNeutral = lipgloss.AdaptiveColor{Light: "#475569", Dark: "#64748b"}
	colorError   = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#ef4444"}
)

// Styles holds the lipgloss styles used to draw the dashboard.
type Styles struct {
	Header    lipgloss.Style
	Pill      lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Scenario  lipgloss.Style
	Active    lipgloss.Style
	Title     lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Badge     lipgloss.Style
	Notice    lipgloss.Style
	RecTag    lipgloss.Style
	Status    lipgloss.Style
	// Tile is the base KPI tile; ToneColors picks its border per tone.
	Tile       lipgloss.Style
	ToneColors map[string]lipgloss.TerminalColor
}

// DefaultStyles returns the colored dashboard styles.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Pill:      lipgloss.NewStyle().Foreground(colorAccent).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent),
		Tab:       lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent).Padding(0, 1),
		Scenario:  lipgloss.NewStyle().Foreground(colorMuted),
		Active:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Title:     lipgloss.NewStyle().Bold(true).MarginTop(1),
		Body:      lipgloss.NewStyle(),
		Muted:     lipgloss.NewStyle().Foreground(colorMuted),
		Badge:     lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), false, true).BorderForeground(colorBorder),
		Notice:    lipgloss.NewStyle().Bold(true).Foreground(colorError),
		RecTag:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Width(18),
		Status:    lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Tile:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(22),
		ToneColors: map[string]lipgloss.TerminalColor{
			"good":    colorGood,
			"warn":    colorWarn,
			"neutral": colorNeutral,
		},
	}
}

// PlainStyles returns styles without color or decoration, for piped output.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:     plain,
		Pill:       plain,
		Tab:        plain.Padding(0, 1),
		ActiveTab:  plain.Padding(0, 1),
		Scenario:   plain,
		Active:     plain,
		Title:      plain.MarginTop(1),
		Body:       plain,
		Muted:      plain,
		Badge:      plain.Padding(0, 1),
		Notice:     plain,
		RecTag:     plain.Width(18),
		Status:     plain,
		Tile:       plain.Border(lipgloss.NormalBorder()).Padding(0, 1).Width(22),
		ToneColors: map[string]lipgloss.TerminalColor{},
	}
}

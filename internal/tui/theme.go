package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	TextPrimary lipgloss.AdaptiveColor
	TextMuted   lipgloss.AdaptiveColor
	Accent      lipgloss.AdaptiveColor
	Success     lipgloss.AdaptiveColor
	Error       lipgloss.AdaptiveColor
	Border      lipgloss.AdaptiveColor

	Title     lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	Pane      lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	ErrText   lipgloss.Style
	OkText    lipgloss.Style
	Footer    lipgloss.Style
	Badge     lipgloss.Style
}

func NewTheme() Theme {
	t := Theme{
		TextPrimary: lipgloss.AdaptiveColor{Light: "#1F2430", Dark: "#E6E8EC"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		Accent:      lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"},
		Success:     lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"},
		Error:       lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"},
		Border:      lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"},
	}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.TabActive = lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Underline(true)
	t.TabIdle = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Pane = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.Label = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Value = lipgloss.NewStyle().Foreground(t.TextPrimary)
	t.Selected = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.ErrText = lipgloss.NewStyle().Foreground(t.Error)
	t.OkText = lipgloss.NewStyle().Foreground(t.Success)
	t.Footer = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Badge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}).Background(t.Accent).Padding(0, 1)

	return t
}

package monitor

import "github.com/charmbracelet/lipgloss"

// Dashboard palette. AdaptiveColor picks the variant matching the
// detected terminal background, so the dashboard stays readable on
// light terminals too.
var (
	ColorHealthy  = lipgloss.AdaptiveColor{Light: "28", Dark: "#39FF14"}
	ColorWarning  = lipgloss.AdaptiveColor{Light: "130", Dark: "#FFAA00"}
	ColorCritical = lipgloss.AdaptiveColor{Light: "124", Dark: "#FF0055"}

	ColorTextPrimary   = lipgloss.AdaptiveColor{Light: "235", Dark: "#FFFFFF"}
	ColorTextSecondary = lipgloss.AdaptiveColor{Light: "240", Dark: "#B4B4D0"}
	ColorTextMuted     = lipgloss.AdaptiveColor{Light: "245", Dark: "#6B6B8D"}

	ColorAccent = lipgloss.AdaptiveColor{Light: "33", Dark: "#00AFFF"}
	ColorGraph  = lipgloss.AdaptiveColor{Light: "30", Dark: "#00FFFF"}
)

// Thresholds for metric severity levels, in percent.
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	HeaderInfoStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	ColumnHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary).
				Bold(true)

	RowStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "#2A2A4A"}).
				Bold(true)

	NameStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	NotifyInfoStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy).
			Bold(true)

	NotifyErrorStyle = lipgloss.NewStyle().
				Foreground(ColorCritical).
				Bold(true)

	ConfirmStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 2)

	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 2)
)

// Expansion markers for tree rows.
const (
	MarkerExpanded  = "▼"
	MarkerCollapsed = "▶"
	MarkerLeaf      = "•"
)

// MetricColor maps a 0-100 value to the severity palette.
func MetricColor(percent float64) lipgloss.AdaptiveColor {
	switch {
	case percent >= CriticalThreshold:
		return ColorCritical
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

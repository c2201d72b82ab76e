package monitor

import "strings"

// helpBindings drives the help overlay, in display order.
var helpBindings = []struct {
	keys string
	desc string
}{
	{"j / ↓", "select next cgroup"},
	{"k / ↑", "select previous cgroup"},
	{"home / end", "jump to first / last"},
	{"enter / space / →", "expand or collapse"},
	{"←", "collapse, or jump to parent"},
	{"v", "detail view for selection"},
	{"/", "fuzzy search and jump"},
	{"d", "delete selected cgroup (confirm)"},
	{"D", "delete parent cgroup (confirm)"},
	{"r", "refresh now"},
	{"?", "toggle this help"},
	{"q / ctrl+c", "quit"},
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(ValueStyle.Render("Key bindings"))
	b.WriteByte('\n')
	for _, binding := range helpBindings {
		b.WriteString(LabelStyle.Render(padRight(binding.keys, 20)))
		b.WriteString(MutedStyle.Render(binding.desc))
		b.WriteByte('\n')
	}
	return HelpStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func padRight(s string, width int) string {
	for len([]rune(s)) < width {
		s += " "
	}
	return s
}

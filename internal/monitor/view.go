package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cgtop/cgtop/internal/cgroup"
)

// Fixed column widths for the stats side of each row. The name column
// absorbs whatever width remains.
const (
	colMemory = 22
	colMemPct = 7
	colCPU    = 7
	colPIDs   = 9
	colProcs  = 6
)

func (m Model) renderTree() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteByte('\n')
	b.WriteString(m.renderColumnHeader())
	b.WriteByte('\n')

	rows := m.renderRows()
	b.WriteString(rows)

	if overlay := m.renderOverlay(); overlay != "" {
		b.WriteByte('\n')
		b.WriteString(overlay)
	}

	b.WriteByte('\n')
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("cgtop")
	info := fmt.Sprintf("%s │ %d cgroups │ updated %ds ago",
		m.tree.Root(), visibleNodeCount(m), m.SecondsSinceUpdate())
	return lipgloss.JoinHorizontal(lipgloss.Top, title, HeaderInfoStyle.Render(info))
}

func visibleNodeCount(m Model) int {
	n := m.tree.Len()
	if n > 0 {
		n-- // exclude the sentinel root
	}
	return n
}

func (m Model) renderColumnHeader() string {
	nameWidth := m.nameWidth()
	header := fmt.Sprintf(" %-*s %*s %*s %*s %*s %*s",
		nameWidth, "NAME",
		colMemory, "MEMORY",
		colMemPct, "MEM%",
		colCPU, "CPU%",
		colPIDs, "PIDS",
		colProcs, "PROCS")
	return ColumnHeaderStyle.Render(header)
}

func (m Model) renderRows() string {
	visible := m.tree.Visible()
	if len(visible) == 0 {
		return MutedStyle.Render("  waiting for data...")
	}

	height := m.treeHeight()
	offset := m.tree.ScrollOffset()
	end := offset + height
	if end > len(visible) {
		end = len(visible)
	}

	selected, _ := m.tree.Selected()

	lines := make([]string, 0, end-offset)
	for _, key := range visible[offset:end] {
		lines = append(lines, m.renderRow(key, key == selected))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(key string, isSelected bool) string {
	node, ok := m.tree.Node(key)
	if !ok {
		return ""
	}

	marker := MarkerLeaf
	if m.tree.HasChildren(key) {
		marker = MarkerCollapsed
		if node.Expanded {
			marker = MarkerExpanded
		}
	}

	indent := strings.Repeat("  ", node.Depth-1)
	name := indent + marker + " " + node.Name
	name = truncate(name, m.nameWidth())

	var stats cgroup.Stats
	var procs int
	if m.snapshot != nil {
		stats, _ = m.snapshot.Stats(node.Path)
		procs = m.snapshot.ProcessCount(node.Path)
	}

	memPct := memPercent(stats.Memory.Current, stats.Memory.Max)
	row := fmt.Sprintf(" %-*s %*s %*s %*s %*s %*d",
		m.nameWidth(), name,
		colMemory, FormatLimit(stats.Memory.Current, stats.Memory.Max),
		colMemPct, FormatPercent(memPct),
		colCPU, FormatPercent(m.CPUPercent(node.Path)),
		colPIDs, FormatCount(stats.PIDs.Current, stats.PIDs.Max),
		colProcs, procs)

	if isSelected {
		return SelectedRowStyle.Render(row)
	}
	return RowStyle.Render(row)
}

// nameWidth is the width left over for the name column.
func (m Model) nameWidth() int {
	w := m.width - colMemory - colMemPct - colCPU - colPIDs - colProcs - 7
	if w < 16 {
		w = 16
	}
	return w
}

// renderOverlay renders whichever modal element is active: confirm
// prompt, search input, notifications, or the help panel.
func (m Model) renderOverlay() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.confirmPath != "" {
		return ConfirmStyle.Render(
			fmt.Sprintf("Delete %s and all children? (y/n)", m.confirmPath))
	}
	if m.searching {
		return m.searchInput.View()
	}

	notes := m.notes.Active()
	if len(notes) == 0 {
		return ""
	}
	lines := make([]string, 0, len(notes))
	for _, note := range notes {
		style := NotifyInfoStyle
		if note.Level == NotifyError {
			style = NotifyErrorStyle
		}
		lines = append(lines, style.Render(note.Text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	return FooterStyle.Render(
		"j/k: navigate │ enter: expand │ d: delete │ /: search │ v: detail │ ?: help │ q: quit")
}

// truncate cuts s to at most width runes, appending an ellipsis when it
// had to cut.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

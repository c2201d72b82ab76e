package monitor

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// sparkWidth is the sparkline width in the detail view.
const sparkWidth = 40

func (m Model) renderDetail() string {
	var b strings.Builder

	key, _ := m.tree.Selected()
	node, _ := m.tree.Node(key)

	b.WriteString(HeaderStyle.Render("cgtop · " + node.Path))
	b.WriteByte('\n')
	b.WriteString(m.detailViewport.View())
	b.WriteByte('\n')
	b.WriteString(FooterStyle.Render("↑/↓: scroll │ esc: back │ ctrl+c: quit"))
	return b.String()
}

// updateDetailContent rebuilds the viewport content for the selected
// cgroup. Called when the selection, snapshot, or window changes while
// the detail view is open.
func (m *Model) updateDetailContent() {
	if !m.viewportReady {
		m.resizeViewport()
	}

	path, ok := m.tree.SelectedPath()
	if !ok || m.snapshot == nil {
		m.detailViewport.SetContent(MutedStyle.Render("no data"))
		return
	}

	stats, _ := m.snapshot.Stats(path)
	var b strings.Builder

	section := func(title string) {
		b.WriteString(LabelStyle.Render(title))
		b.WriteByte('\n')
	}
	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %-18s %s\n",
			LabelStyle.Render(label), ValueStyle.Render(value)))
	}

	section("Memory")
	row("current", FormatBytes(stats.Memory.Current))
	if stats.Memory.Max > 0 {
		row("limit", FormatBytes(stats.Memory.Max))
		row("pressure", FormatPercent(memPercent(stats.Memory.Current, stats.Memory.Max)))
	} else {
		row("limit", "unlimited")
	}
	if stats.Memory.Peak > 0 {
		row("peak", FormatBytes(stats.Memory.Peak))
	}
	if ev := stats.Memory.Events; ev.OOMKill > 0 || ev.OOM > 0 || ev.Max > 0 {
		row("oom kills", fmt.Sprintf("%d (oom %d, at limit %d)", ev.OOMKill, ev.OOM, ev.Max))
	}
	if bd := stats.Memory.Breakdown; bd.Anon > 0 || bd.File > 0 {
		row("anon/file", fmt.Sprintf("%s / %s", FormatBytes(bd.Anon), FormatBytes(bd.File)))
	}
	if bd := stats.Memory.Breakdown; bd.Slab > 0 || bd.KernelStack > 0 || bd.Sock > 0 {
		row("kernel", fmt.Sprintf("slab %s, stack %s, sock %s",
			FormatBytes(bd.Slab), FormatBytes(bd.KernelStack), FormatBytes(bd.Sock)))
	}
	if spark := RenderSparkline(m.history.Memory(path, sparkWidth), sparkWidth, ColorGraph); spark != "" {
		b.WriteString("  " + spark + "\n")
	}
	b.WriteByte('\n')

	section("CPU")
	row("usage", FormatPercent(m.CPUPercent(path)))
	row("total", (time.Duration(stats.CPU.UsageUsec) * time.Microsecond).String())
	row("user/system", fmt.Sprintf("%s / %s",
		time.Duration(stats.CPU.UserUsec)*time.Microsecond,
		time.Duration(stats.CPU.SystemUsec)*time.Microsecond))
	if stats.CPU.NrThrottled > 0 {
		row("throttled", fmt.Sprintf("%d periods, %s",
			stats.CPU.NrThrottled,
			time.Duration(stats.CPU.ThrottledUsec)*time.Microsecond))
	}
	if spark := RenderPercentSparkline(m.history.CPU(path, sparkWidth), sparkWidth); spark != "" {
		b.WriteString("  " + spark + "\n")
	}
	b.WriteByte('\n')

	section("IO")
	row("read", fmt.Sprintf("%s (%d ops)", FormatBytes(stats.IO.ReadBytes), stats.IO.ReadOps))
	row("write", fmt.Sprintf("%s (%d ops)", FormatBytes(stats.IO.WriteBytes), stats.IO.WriteOps))
	b.WriteByte('\n')

	section("Tasks")
	row("pids", FormatCount(stats.PIDs.Current, stats.PIDs.Max))

	procs := m.snapshot.ProcsIn(path)
	if len(procs) > 0 {
		sort.Slice(procs, func(i, j int) bool { return procs[i].PID < procs[j].PID })
		b.WriteByte('\n')
		section("Processes")
		for _, p := range procs {
			b.WriteString(fmt.Sprintf("  %7d  %s\n", p.PID, p.Command))
		}
	}

	m.detailViewport.SetContent(b.String())
}

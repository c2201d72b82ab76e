// Package monitor implements the terminal dashboard: a Bubble Tea model
// that consumes bus events, reconciles the cgroup tree, and renders it.
package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cgtop/cgtop/internal/cgroup"
	"github.com/cgtop/cgtop/internal/events"
	"github.com/cgtop/cgtop/internal/logger"
	"github.com/cgtop/cgtop/internal/tree"
)

// Model is the Bubble Tea model for the dashboard. All of its state is
// mutated only from the Bubble Tea update loop.
type Model struct {
	tree     *tree.State
	snapshot *cgroup.Snapshot
	history  *History
	notes    *Notifications
	bus      *events.Bus[events.Event]
	log      logger.Logger

	// resample asks the sampling producer for an early snapshot, used
	// after deletes and manual refresh. May be nil in tests.
	resample func()

	// CPU percentages are derived from usage_usec deltas between
	// consecutive snapshots.
	prevUsage map[string]uint64
	prevAt    time.Time
	cpuPct    map[string]float64

	width      int
	height     int
	lastUpdate time.Time
	quitting   bool
	viewMode   ViewMode
	showHelp   bool

	// confirmPath is the pending delete target; "" means no prompt.
	confirmPath string

	searching   bool
	searchInput textinput.Model

	detailViewport viewport.Model
	viewportReady  bool
}

// busEventMsg wraps one event read from the bus; ok is false once the
// bus has closed and drained.
type busEventMsg struct {
	event events.Event
	ok    bool
}

// removeResultMsg reports the outcome of an asynchronous cgroup delete.
type removeResultMsg struct {
	path string
	err  error
}

// NewModel creates a dashboard consuming the given bus, monitoring the
// hierarchy rooted at root.
func NewModel(bus *events.Bus[events.Event], root string, resample func(), log logger.Logger) Model {
	if log == nil {
		log = logger.Noop()
	}

	input := textinput.New()
	input.Placeholder = "search cgroups"
	input.Prompt = "/"
	input.CharLimit = 128

	return Model{
		tree:        tree.New(root),
		history:     NewHistory(DefaultHistorySize),
		notes:       NewNotifications(),
		bus:         bus,
		log:         log,
		resample:    resample,
		prevUsage:   make(map[string]uint64),
		cpuPct:      make(map[string]float64),
		searchInput: input,
	}
}

// Init arms the first bus read.
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		m.tree.AdjustScroll(m.treeHeight())
		if m.viewMode == ViewDetail {
			m.updateDetailContent()
		}

	case busEventMsg:
		if !msg.ok {
			m.quitting = true
			return m, tea.Quit
		}
		m.applyEvent(msg.event)
		if m.quitting {
			return m, tea.Quit
		}
		return m, m.waitForEvent()

	case removeResultMsg:
		if msg.err != nil {
			m.log.Error("delete failed: %v", msg.err)
			m.notes.Push("Delete failed: "+msg.path, NotifyError)
		} else {
			m.notes.Push("Removed "+msg.path, NotifyInfo)
			if m.resample != nil {
				m.resample()
			}
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.viewMode == ViewDetail {
		return m.renderDetail()
	}
	return m.renderTree()
}

// waitForEvent reads the next bus event. Re-armed after each delivery so
// the consumer loop stays single-threaded inside Bubble Tea.
func (m Model) waitForEvent() tea.Cmd {
	ch := m.bus.Events()
	return func() tea.Msg {
		ev, ok := <-ch
		return busEventMsg{event: ev, ok: ok}
	}
}

func (m *Model) applyEvent(ev events.Event) {
	switch ev := ev.(type) {
	case events.Update:
		m.applySnapshot(ev.Snapshot)
	case events.Cleanup:
		pruned := m.history.Prune(ev.Cutoff)
		stale := m.tree.PruneStale()
		if pruned > 0 || stale > 0 {
			m.log.Debug("housekeeping: %d history series, %d expansion keys", pruned, stale)
		}
	case events.Terminate:
		m.quitting = true
	}
}

// applySnapshot is the per-tick reconciliation: derive CPU percentages,
// rebuild the tree from the snapshot's path set, and append history.
func (m *Model) applySnapshot(snap *cgroup.Snapshot) {
	if snap == nil {
		return
	}

	m.deriveCPUPercent(snap)
	m.snapshot = snap
	m.lastUpdate = snap.At

	m.tree.Ingest(snap.Paths())
	m.tree.AdjustScroll(m.treeHeight())

	for path, stats := range snap.Usage {
		pct, ok := m.cpuPct[path]
		if !ok {
			pct = -1
		}
		m.history.Push(path, stats.Memory.Current, pct, snap.At)
	}

	if m.viewMode == ViewDetail {
		m.updateDetailContent()
	}
}

// deriveCPUPercent turns cumulative usage_usec counters into percentages
// over the interval since the previous snapshot. The first snapshot has
// no baseline, so every path reads as unknown until the second tick.
func (m *Model) deriveCPUPercent(snap *cgroup.Snapshot) {
	elapsed := snap.At.Sub(m.prevAt)
	nextUsage := make(map[string]uint64, len(snap.Usage))
	nextPct := make(map[string]float64, len(snap.Usage))

	for path, stats := range snap.Usage {
		nextUsage[path] = stats.CPU.UsageUsec
		prev, ok := m.prevUsage[path]
		if !ok || m.prevAt.IsZero() || elapsed <= 0 || stats.CPU.UsageUsec < prev {
			continue
		}
		deltaUsec := float64(stats.CPU.UsageUsec - prev)
		nextPct[path] = deltaUsec / float64(elapsed.Microseconds()) * 100
	}

	m.prevUsage = nextUsage
	m.prevAt = snap.At
	m.cpuPct = nextPct
}

// treeHeight is the number of rows available for tree content.
func (m Model) treeHeight() int {
	// header, column header, footer
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) resizeViewport() {
	headerHeight := 2
	footerHeight := 1
	vh := m.height - headerHeight - footerHeight
	if vh < 1 {
		vh = 1
	}
	if !m.viewportReady {
		m.detailViewport = viewport.New(m.width, vh)
		m.detailViewport.YPosition = headerHeight
		m.viewportReady = true
	} else {
		m.detailViewport.Width = m.width
		m.detailViewport.Height = vh
	}
}

// SelectedStats returns the stats of the cursor's cgroup, if any.
func (m Model) SelectedStats() (cgroup.Stats, bool) {
	if m.snapshot == nil {
		return cgroup.Stats{}, false
	}
	path, ok := m.tree.SelectedPath()
	if !ok {
		return cgroup.Stats{}, false
	}
	return m.snapshot.Stats(path)
}

// CPUPercent returns the derived CPU usage of path, or -1 when unknown.
func (m Model) CPUPercent(path string) float64 {
	if pct, ok := m.cpuPct[path]; ok {
		return pct
	}
	return -1
}

// SecondsSinceUpdate reports the age of the data on screen.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

// Tree exposes the reconciler state, used by the view and tests.
func (m Model) Tree() *tree.State {
	return m.tree
}

package monitor

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/cgtop/cgtop/internal/cgroup"
	"github.com/cgtop/cgtop/internal/tree"
)

// Key bindings as constants for consistency.
const (
	KeyQuit         = "q"
	KeyQuitAlt      = "ctrl+c"
	KeyRefresh      = "r"
	KeySelectPrev   = "up"
	KeySelectPrevK  = "k"
	KeySelectNext   = "down"
	KeySelectNextJ  = "j"
	KeySelectFirst  = "home"
	KeySelectLast   = "end"
	KeyToggle       = "enter"
	KeyToggleSpace  = " "
	KeyToggleRight  = "right"
	KeyCollapse     = "left"
	KeyDelete       = "d"
	KeyDeleteParent = "D"
	KeyConfirmYes   = "y"
	KeyConfirmNo    = "n"
	KeySearch       = "/"
	KeyDetail       = "v"
	KeyToggleHelp   = "?"
	KeyEscape       = "esc"
)

// HandleKeyMsg processes keyboard input. Returns true if the key was
// handled. Modal states take precedence: an open confirm prompt, search
// input, or help overlay captures keys before normal navigation.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if m.confirmPath != "" {
		return m.handleConfirmKey(key)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.showHelp {
		if key == KeyEscape || key == KeyToggleHelp || key == KeyQuit {
			m.showHelp = false
		}
		return true, nil
	}
	if m.viewMode == ViewDetail {
		return m.handleDetailKey(msg)
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyRefresh:
		if m.resample != nil {
			m.resample()
		}
		return true, nil

	case KeySelectNext, KeySelectNextJ:
		m.tree.SelectNext()
		m.tree.AdjustScroll(m.treeHeight())
		return true, nil

	case KeySelectPrev, KeySelectPrevK:
		m.tree.SelectPrevious()
		m.tree.AdjustScroll(m.treeHeight())
		return true, nil

	case KeySelectFirst:
		m.tree.SelectFirst()
		m.tree.AdjustScroll(m.treeHeight())
		return true, nil

	case KeySelectLast:
		m.tree.SelectLast()
		m.tree.AdjustScroll(m.treeHeight())
		return true, nil

	case KeyToggle, KeyToggleSpace, KeyToggleRight:
		if selected, ok := m.tree.Selected(); ok {
			m.tree.ToggleExpand(selected)
			m.tree.AdjustScroll(m.treeHeight())
		}
		return true, nil

	case KeyCollapse:
		m.collapseOrAscend()
		return true, nil

	case KeyDelete:
		if path, ok := m.tree.SelectedPath(); ok {
			m.requestDelete(path)
		}
		return true, nil

	case KeyDeleteParent:
		if path, ok := m.tree.SelectedParentPath(); ok {
			m.requestDelete(path)
		} else {
			m.notes.Push("Selection has no deletable parent", NotifyError)
		}
		return true, nil

	case KeySearch:
		m.searching = true
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		return true, textinput.Blink

	case KeyDetail:
		if _, ok := m.tree.Selected(); ok {
			m.viewMode = ViewDetail
			m.updateDetailContent()
		}
		return true, nil

	case KeyToggleHelp:
		m.showHelp = true
		return true, nil
	}

	return false, nil
}

// collapseOrAscend collapses an expanded selection; a collapsed or leaf
// selection moves the cursor to its parent instead.
func (m *Model) collapseOrAscend() {
	selected, ok := m.tree.Selected()
	if !ok {
		return
	}
	if m.tree.HasChildren(selected) && m.tree.IsExpanded(selected) {
		m.tree.ToggleExpand(selected)
	} else if parent := tree.ParentKey(selected); parent != "" {
		m.tree.Reveal(parent)
	}
	m.tree.AdjustScroll(m.treeHeight())
}

// requestDelete opens the confirm prompt, refusing targets outside the
// monitored hierarchy up front.
func (m *Model) requestDelete(path string) {
	if !cgroup.IsSafeToRemove(path, m.tree.Root()) {
		m.notes.Push("Refusing to delete "+path, NotifyError)
		return
	}
	m.confirmPath = path
}

func (m *Model) handleConfirmKey(key string) (bool, tea.Cmd) {
	switch key {
	case KeyConfirmYes:
		path := m.confirmPath
		m.confirmPath = ""
		return true, m.removeCmd(path)
	case KeyConfirmNo, KeyEscape, KeyQuit:
		m.confirmPath = ""
		return true, nil
	}
	return true, nil
}

// removeCmd deletes the cgroup off the update loop so a slow rmdir never
// freezes the UI.
func (m *Model) removeCmd(path string) tea.Cmd {
	log := m.log
	return func() tea.Msg {
		return removeResultMsg{path: path, err: cgroup.RemoveRecursive(path, log)}
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case KeyEscape:
		m.searching = false
		m.searchInput.Blur()
		return true, nil
	case "enter":
		query := m.searchInput.Value()
		m.searching = false
		m.searchInput.Blur()
		m.jumpToMatch(query)
		return true, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return true, cmd
}

// jumpToMatch fuzzy-matches query against every node key and reveals the
// best hit, expanding collapsed ancestors along the way.
func (m *Model) jumpToMatch(query string) {
	if query == "" {
		return
	}
	matches := fuzzy.Find(query, m.tree.Keys())
	if len(matches) == 0 {
		m.notes.Push("No match for \""+query+"\"", NotifyError)
		return
	}
	m.tree.Reveal(matches[0].Str)
	m.tree.AdjustScroll(m.treeHeight())
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case KeyEscape, KeyDetail, KeyQuit:
		m.viewMode = ViewTree
		return true, nil
	case KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return true, cmd
}

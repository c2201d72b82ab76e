package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInvariants verifies the structural invariants that must hold after
// every public operation.
func checkInvariants(t *testing.T, s *State) {
	t.Helper()

	if len(s.nodes) > 0 {
		root, ok := s.nodes[""]
		require.True(t, ok, "non-empty tree must have a sentinel root")
		assert.True(t, root.Expanded, "sentinel root must be expanded")
	}

	for key, node := range s.nodes {
		for _, child := range node.Children {
			childNode, ok := s.nodes[child]
			require.True(t, ok, "child %q of %q must exist", child, key)
			assert.Equal(t, node.Depth+1, childNode.Depth,
				"child %q depth must be parent depth + 1", child)
		}
	}

	for _, key := range s.visible {
		_, ok := s.nodes[key]
		require.True(t, ok, "visible key %q must exist", key)

		// Every proper ancestor (up to but excluding root) must be expanded.
		for parent := ParentKey(key); parent != ""; parent = ParentKey(parent) {
			assert.True(t, s.nodes[parent].Expanded,
				"ancestor %q of visible %q must be expanded", parent, key)
		}
	}

	// Conversely, a node whose ancestors are all expanded must be visible.
	for key := range s.nodes {
		if key == "" {
			continue
		}
		allExpanded := true
		for parent := ParentKey(key); parent != ""; parent = ParentKey(parent) {
			if !s.nodes[parent].Expanded {
				allExpanded = false
				break
			}
		}
		if allExpanded {
			assert.True(t, s.isVisible(key), "key %q with expanded ancestors must be visible", key)
		}
	}

	if s.selected != "" {
		assert.True(t, s.isVisible(s.selected), "selection %q must be visible", s.selected)
	}
}

func scenarioAPaths() []string {
	return []string{"/root", "/root/a", "/root/a/x", "/root/b"}
}

func TestIngest_ScenarioA_FirstBuild(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())

	// Depth-1 nodes auto-expand on the first build, so a/x is visible.
	assert.Equal(t, []string{"a", "a/x", "b"}, s.Visible())

	selected, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", selected)

	checkInvariants(t, s)
}

func TestIngest_ScenarioB_EmptySnapshot(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())
	s.Ingest(nil)

	assert.Zero(t, s.Len())
	assert.Empty(t, s.Visible())

	_, ok := s.Selected()
	assert.False(t, ok, "selection must be cleared by an empty snapshot")

	checkInvariants(t, s)
}

func TestToggleExpand_ScenarioC_Collapse(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())

	s.ToggleExpand("a")

	assert.Equal(t, []string{"a", "b"}, s.Visible())
	checkInvariants(t, s)
}

func TestIngest_Idempotent(t *testing.T) {
	s := New("/root")
	paths := scenarioAPaths()

	s.Ingest(paths)
	firstVisible := append([]string(nil), s.Visible()...)
	firstSelected, _ := s.Selected()

	s.Ingest(paths)

	assert.Equal(t, firstVisible, s.Visible())
	selected, _ := s.Selected()
	assert.Equal(t, firstSelected, selected)
	checkInvariants(t, s)
}

func TestIngest_SelectionPreservedAcrossRebuild(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())

	s.SelectNext()
	selected, _ := s.Selected()
	require.Equal(t, "a/x", selected)

	// K still present and visible in the next snapshot.
	s.Ingest(append(scenarioAPaths(), "/root/c"))

	selected, _ = s.Selected()
	assert.Equal(t, "a/x", selected)
	checkInvariants(t, s)
}

func TestIngest_SelectionFallsBackWhenKeyVanishes(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())
	s.SelectLast()

	s.Ingest([]string{"/root/a"})

	selected, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", selected, "selection falls back to the first visible node")
	checkInvariants(t, s)
}

func TestIngest_ExpansionPreservedAcrossRebuild(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())

	// Second build: depth-1 auto-expand no longer applies, only carry-over.
	s.Ingest(scenarioAPaths())
	require.Equal(t, []string{"a", "a/x", "b"}, s.Visible())

	s.ToggleExpand("a") // collapse
	s.Ingest(scenarioAPaths())

	node, ok := s.Node("a")
	require.True(t, ok)
	assert.False(t, node.Expanded)
	assert.False(t, s.IsExpanded("a"))
	assert.Equal(t, []string{"a", "b"}, s.Visible())

	s.ToggleExpand("a") // expand again
	s.Ingest(scenarioAPaths())

	node, _ = s.Node("a")
	assert.True(t, node.Expanded)
	assert.True(t, s.IsExpanded("a"))
	assert.Equal(t, []string{"a", "a/x", "b"}, s.Visible())
	checkInvariants(t, s)
}

func TestIngest_DeepIntermediateNodesCreated(t *testing.T) {
	s := New("/sys/fs/cgroup")
	s.Ingest([]string{"/sys/fs/cgroup/user.slice/user-1000.slice/session-2.scope"})

	for _, key := range []string{"user.slice", "user.slice/user-1000.slice",
		"user.slice/user-1000.slice/session-2.scope"} {
		_, ok := s.Node(key)
		assert.True(t, ok, "intermediate node %q must exist", key)
	}

	node, _ := s.Node("user.slice/user-1000.slice/session-2.scope")
	assert.Equal(t, 3, node.Depth)
	assert.Equal(t, "session-2.scope", node.Name)
	assert.Equal(t, "/sys/fs/cgroup/user.slice/user-1000.slice/session-2.scope", node.Path)
	checkInvariants(t, s)
}

func TestIngest_PrefixMismatchFallsBackToRawPath(t *testing.T) {
	s := New("/sys/fs/cgroup")
	s.Ingest([]string{"/weird/other/path"})

	// The raw string is segmented; the tree is degenerate but valid.
	_, ok := s.Node("weird/other/path")
	assert.True(t, ok)
	checkInvariants(t, s)
}

func TestIngest_DuplicateChildrenDeduplicated(t *testing.T) {
	s := New("/root")
	s.Ingest([]string{"/root/a", "/root/a/x", "/root/a", "/root/a/x"})

	root, _ := s.Node("")
	assert.Equal(t, []string{"a"}, root.Children)

	a, _ := s.Node("a")
	assert.Equal(t, []string{"a/x"}, a.Children)
	checkInvariants(t, s)
}

func TestIngest_ChildrenSorted(t *testing.T) {
	s := New("/root")
	s.Ingest([]string{"/root/zeta", "/root/alpha", "/root/mid"})

	root, _ := s.Node("")
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, root.Children)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, s.Visible())
}

func TestIngest_RootOnlySnapshot(t *testing.T) {
	s := New("/root")
	s.Ingest([]string{"/root"})

	assert.Equal(t, 1, s.Len(), "only the sentinel exists")
	assert.Empty(t, s.Visible())
	_, ok := s.Selected()
	assert.False(t, ok)
	checkInvariants(t, s)
}

func TestSelectNext_CircularOverFullList(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())

	start, _ := s.Selected()
	for range s.Visible() {
		s.SelectNext()
	}
	end, _ := s.Selected()
	assert.Equal(t, start, end, "len(visible) steps must return to the start")
}

func TestSelectPrevious_WrapsToBottom(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())

	s.SelectFirst()
	s.SelectPrevious()

	selected, _ := s.Selected()
	assert.Equal(t, "b", selected)
}

func TestSelect_FromUnselectedState(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())
	s.selected = "" // force the unselected state

	s.SelectNext()
	selected, _ := s.Selected()
	assert.Equal(t, "a", selected, "first SelectNext from unselected lands on index 0")

	s.selected = ""
	s.SelectPrevious()
	selected, _ = s.Selected()
	assert.Equal(t, "b", selected, "first SelectPrevious from unselected lands on the last index")
}

func TestSelect_NoOpOnEmptyList(t *testing.T) {
	s := New("/root")
	s.SelectNext()
	s.SelectPrevious()
	s.SelectFirst()
	s.SelectLast()

	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestToggleExpand_UnknownKeyIsNoOp(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())
	before := append([]string(nil), s.Visible()...)

	s.ToggleExpand("does/not/exist")

	assert.Equal(t, before, s.Visible())
	checkInvariants(t, s)
}

func TestToggleExpand_RootIsNoOp(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())

	s.ToggleExpand("")

	root, _ := s.Node("")
	assert.True(t, root.Expanded)
	checkInvariants(t, s)
}

func TestToggleExpand_CollapseMovesHiddenSelection(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())
	s.SelectNext() // a/x

	s.ToggleExpand("a")

	selected, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", selected, "selection moves to the collapsed ancestor")
	checkInvariants(t, s)
}

func TestToggleExpand_DoesNotTouchVisibleSelection(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())
	s.SelectLast() // b

	s.ToggleExpand("a")

	selected, _ := s.Selected()
	assert.Equal(t, "b", selected)
}

func TestAdjustScroll_KeepsSelectionInWindow(t *testing.T) {
	s := New("/root")
	s.Ingest([]string{
		"/root/a", "/root/b", "/root/c", "/root/d", "/root/e",
		"/root/f", "/root/g", "/root/h",
	})

	s.SelectLast()
	s.AdjustScroll(3)

	idx := s.SelectedIndex()
	assert.GreaterOrEqual(t, idx, s.ScrollOffset())
	assert.Less(t, idx, s.ScrollOffset()+3)

	s.SelectFirst()
	s.AdjustScroll(3)
	assert.Equal(t, 0, s.ScrollOffset())
}

func TestAdjustScroll_ClampsWhenListShorterThanViewport(t *testing.T) {
	s := New("/root")
	s.Ingest([]string{"/root/a", "/root/b"})
	s.scroll = 5

	s.AdjustScroll(10)

	assert.Equal(t, 0, s.ScrollOffset())
}

func TestPruneStale_DropsVanishedKeys(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())

	s.Ingest([]string{"/root/a"})
	require.True(t, s.IsExpanded("b"), "stale expansion carries over between cleanups")

	removed := s.PruneStale()

	assert.Positive(t, removed)
	assert.False(t, s.IsExpanded("b"))
	assert.True(t, s.IsExpanded(""), "the root entry survives pruning")
	checkInvariants(t, s)
}

func TestIngest_ExpansionSurvivesDisappearance(t *testing.T) {
	s := New("/root")
	s.Ingest(scenarioAPaths())

	// "a" vanishes for one tick, then returns before any cleanup ran.
	s.Ingest([]string{"/root/b"})
	s.Ingest(scenarioAPaths())

	node, ok := s.Node("a")
	require.True(t, ok)
	assert.True(t, node.Expanded)
	assert.Contains(t, s.Visible(), "a/x")
	checkInvariants(t, s)
}

func TestNew_StripsTrailingSlash(t *testing.T) {
	s := New("/sys/fs/cgroup/")
	assert.Equal(t, "/sys/fs/cgroup", s.Root())

	s.Ingest([]string{"/sys/fs/cgroup/init.scope"})
	_, ok := s.Node("init.scope")
	assert.True(t, ok)
}

// Package tree implements the stateful cgroup tree reconciler. The tree is
// rebuilt from a flat path snapshot on every sampling tick; expansion state,
// selection, and scroll position survive rebuilds by string-key matching
// rather than object identity. Keys are paths relative to the monitored
// root, with the empty string reserved for the sentinel root node.
package tree

import (
	"sort"
	"strings"
)

// RootName is the display label of the sentinel root node.
const RootName = "root"

// Node is one cgroup entry. Nodes carry no pointers to each other; children
// are referenced by key so that a full rebuild cannot leave dangling links.
type Node struct {
	// Path is the absolute filesystem path of the cgroup.
	Path string
	// Name is the last path segment, or "root" for the sentinel.
	Name string
	// Depth is the distance from the monitored root; the sentinel is 0.
	Depth int
	// Children holds child keys, lexicographically sorted, deduplicated.
	Children []string
	// Expanded reports whether the children are rendered.
	Expanded bool
}

// State is the reconciler's mutable state. It must only ever be mutated by
// a single goroutine (the dashboard's update loop).
type State struct {
	root     string
	nodes    map[string]*Node
	expanded map[string]struct{}
	visible  []string
	visIndex map[string]int
	selected string // visible-list key; "" means no selection (root is never selectable)
	scroll   int
}

// New creates an empty tree state for the given monitored root path.
// A trailing slash on the root is stripped so it can be used as a prefix.
func New(root string) *State {
	return &State{
		root:     strings.TrimRight(root, "/"),
		nodes:    make(map[string]*Node),
		expanded: make(map[string]struct{}),
		visIndex: make(map[string]int),
	}
}

// Root returns the monitored root path.
func (s *State) Root() string {
	return s.root
}

// Ingest rebuilds the entire tree from a flat snapshot of cgroup paths.
// It never fails: paths that do not match the monitored root prefix are
// inserted using their raw form. An empty snapshot empties the tree
// completely, including the sentinel root and any selection.
//
// On the very first ingest, depth-1 nodes are auto-expanded. On later
// ingests a node is expanded iff its key was expanded before the rebuild.
// The selection is kept when its key is still visible, otherwise it falls
// back to the first visible node.
func (s *State) Ingest(paths []string) {
	savedSelected := s.selected
	first := len(s.nodes) == 0

	s.nodes = make(map[string]*Node, len(paths)+1)

	for _, p := range paths {
		s.insertPath(p)
	}

	// The expanded set is carried over as-is so a key that vanishes for a
	// tick and reappears keeps its expansion. Stale entries are reaped by
	// PruneStale on housekeeping ticks, not here.
	for key, node := range s.nodes {
		switch {
		case key == "":
			node.Expanded = true
			s.expanded[key] = struct{}{}
		case first && node.Depth == 1:
			node.Expanded = true
			s.expanded[key] = struct{}{}
		default:
			_, node.Expanded = s.expanded[key]
		}
	}

	s.rebuildVisible()

	switch {
	case savedSelected != "" && s.contains(savedSelected) && s.isVisible(savedSelected):
		s.selected = savedSelected
	case len(s.visible) > 0:
		s.selected = s.visible[0]
	default:
		s.selected = ""
	}

	s.clampScroll()
}

// clampScroll keeps the scroll offset inside the visible list after a
// mutation; the height-aware fit happens in AdjustScroll.
func (s *State) clampScroll() {
	if s.scroll >= len(s.visible) {
		s.scroll = len(s.visible) - 1
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}

// insertPath adds one snapshot path, creating any missing intermediate
// nodes. The sentinel root is created as soon as any path is processed.
func (s *State) insertPath(path string) {
	rel := path
	if path == s.root {
		rel = ""
	} else if rest, ok := strings.CutPrefix(path, s.root+"/"); ok {
		rel = rest
	}

	if _, ok := s.nodes[""]; !ok {
		s.nodes[""] = &Node{
			Path:  s.root,
			Name:  RootName,
			Depth: 0,
		}
	}

	parentKey := ""
	key := ""
	for _, part := range strings.Split(rel, "/") {
		if part == "" {
			continue
		}
		if key == "" {
			key = part
		} else {
			key = key + "/" + part
		}

		if _, ok := s.nodes[key]; !ok {
			s.nodes[key] = &Node{
				Path:  s.root + "/" + key,
				Name:  part,
				Depth: strings.Count(key, "/") + 1,
			}
			s.attachChild(parentKey, key)
		}
		parentKey = key
	}
}

// attachChild inserts childKey into the parent's sorted child list,
// skipping duplicates.
func (s *State) attachChild(parentKey, childKey string) {
	parent, ok := s.nodes[parentKey]
	if !ok {
		return
	}
	i := sort.SearchStrings(parent.Children, childKey)
	if i < len(parent.Children) && parent.Children[i] == childKey {
		return
	}
	parent.Children = append(parent.Children, "")
	copy(parent.Children[i+1:], parent.Children[i:])
	parent.Children[i] = childKey
}

// rebuildVisible recomputes the visible list: a pre-order depth-first walk
// starting at the root's children (the root itself is excluded), descending
// into a node's children only when it is expanded.
func (s *State) rebuildVisible() {
	s.visible = s.visible[:0]
	s.visIndex = make(map[string]int, len(s.nodes))

	root, ok := s.nodes[""]
	if !ok {
		return
	}
	for _, child := range root.Children {
		s.walkVisible(child)
	}
}

func (s *State) walkVisible(key string) {
	node, ok := s.nodes[key]
	if !ok {
		return
	}
	s.visIndex[key] = len(s.visible)
	s.visible = append(s.visible, key)
	if !node.Expanded {
		return
	}
	for _, child := range node.Children {
		s.walkVisible(child)
	}
}

// ToggleExpand flips the expansion of the node at key and recomputes the
// visible list. Unknown keys and the sentinel root are no-ops. The selection
// is untouched unless the collapse hid it, in which case it moves to the
// collapsed node itself.
func (s *State) ToggleExpand(key string) {
	if key == "" {
		return
	}
	node, ok := s.nodes[key]
	if !ok {
		return
	}

	node.Expanded = !node.Expanded
	if node.Expanded {
		s.expanded[key] = struct{}{}
	} else {
		delete(s.expanded, key)
	}

	s.rebuildVisible()

	if s.selected != "" && !s.isVisible(s.selected) {
		if s.isVisible(key) {
			s.selected = key
		} else if len(s.visible) > 0 {
			s.selected = s.visible[0]
		} else {
			s.selected = ""
		}
	}
	s.clampScroll()
}

// SelectNext moves the cursor down one visible row, wrapping to the top.
// From an unselected state it lands on the first visible row.
func (s *State) SelectNext() {
	if len(s.visible) == 0 {
		return
	}
	idx, ok := s.visIndex[s.selected]
	if !ok {
		s.selected = s.visible[0]
		return
	}
	idx++
	if idx >= len(s.visible) {
		idx = 0
	}
	s.selected = s.visible[idx]
}

// SelectPrevious moves the cursor up one visible row, wrapping to the
// bottom. From an unselected state it lands on the last visible row.
func (s *State) SelectPrevious() {
	if len(s.visible) == 0 {
		return
	}
	idx, ok := s.visIndex[s.selected]
	if !ok {
		s.selected = s.visible[len(s.visible)-1]
		return
	}
	idx--
	if idx < 0 {
		idx = len(s.visible) - 1
	}
	s.selected = s.visible[idx]
}

// SelectFirst moves the cursor to the first visible row.
func (s *State) SelectFirst() {
	if len(s.visible) > 0 {
		s.selected = s.visible[0]
	}
}

// SelectLast moves the cursor to the last visible row.
func (s *State) SelectLast() {
	if len(s.visible) > 0 {
		s.selected = s.visible[len(s.visible)-1]
	}
}

// AdjustScroll shifts the scroll offset so the selected row falls inside a
// viewport of the given height, then clamps the offset so the window never
// extends past the end of the visible list.
func (s *State) AdjustScroll(height int) {
	if height <= 0 {
		return
	}
	if idx, ok := s.visIndex[s.selected]; ok {
		if idx < s.scroll {
			s.scroll = idx
		} else if idx >= s.scroll+height {
			s.scroll = idx - height + 1
		}
	}
	if s.scroll+height > len(s.visible) {
		s.scroll = len(s.visible) - height
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}

// PruneStale drops expansion-state entries whose keys no longer have a
// backing node. Long-running sessions with high cgroup churn would
// otherwise accumulate these indefinitely. Returns the number removed.
func (s *State) PruneStale() int {
	removed := 0
	for key := range s.expanded {
		if _, ok := s.nodes[key]; !ok {
			delete(s.expanded, key)
			removed++
		}
	}
	return removed
}

// Node returns a copy of the node at key.
func (s *State) Node(key string) (Node, bool) {
	node, ok := s.nodes[key]
	if !ok {
		return Node{}, false
	}
	return *node, true
}

// Visible returns the ordered visible-node keys. Callers must treat the
// returned slice as read-only; it is invalidated by the next mutation.
func (s *State) Visible() []string {
	return s.visible
}

// Selected returns the current cursor key, if any.
func (s *State) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// SelectedIndex returns the cursor's position in the visible list, or -1.
func (s *State) SelectedIndex() int {
	if idx, ok := s.visIndex[s.selected]; ok {
		return idx
	}
	return -1
}

// ScrollOffset returns the index of the first rendered visible row.
func (s *State) ScrollOffset() int {
	return s.scroll
}

// Keys returns every node key except the sentinel root, sorted. The
// slice is freshly allocated on each call.
func (s *State) Keys() []string {
	keys := make([]string, 0, len(s.nodes))
	for key := range s.nodes {
		if key != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of nodes, including the sentinel root.
func (s *State) Len() int {
	return len(s.nodes)
}

// IsExpanded reports whether key is in the carried-over expansion set.
func (s *State) IsExpanded(key string) bool {
	_, ok := s.expanded[key]
	return ok
}

func (s *State) contains(key string) bool {
	_, ok := s.nodes[key]
	return ok
}

func (s *State) isVisible(key string) bool {
	_, ok := s.visIndex[key]
	return ok
}

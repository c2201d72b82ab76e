package tree

import "strings"

// SelectedPath returns the absolute filesystem path of the cursor, for use
// as a stats lookup key or a delete target.
func (s *State) SelectedPath() (string, bool) {
	if s.selected == "" {
		return "", false
	}
	node, ok := s.nodes[s.selected]
	if !ok {
		return "", false
	}
	return node.Path, true
}

// ParentKey returns the key of a node's immediate parent. The parent of a
// depth-1 key is the sentinel root ("").
func ParentKey(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[:i]
	}
	return ""
}

// SelectedParentPath returns the absolute path of the cursor's parent, if
// the cursor has one other than the sentinel root.
func (s *State) SelectedParentPath() (string, bool) {
	if s.selected == "" {
		return "", false
	}
	parent := ParentKey(s.selected)
	if parent == "" {
		return "", false
	}
	node, ok := s.nodes[parent]
	if !ok {
		return "", false
	}
	return node.Path, true
}

// HasChildren reports whether the node at key has any children.
func (s *State) HasChildren(key string) bool {
	node, ok := s.nodes[key]
	return ok && len(node.Children) > 0
}

// Reveal expands every ancestor of key and moves the selection to it.
// Returns false for unknown keys and the sentinel root.
func (s *State) Reveal(key string) bool {
	if key == "" {
		return false
	}
	if _, ok := s.nodes[key]; !ok {
		return false
	}

	for parent := ParentKey(key); parent != ""; parent = ParentKey(parent) {
		if node, ok := s.nodes[parent]; ok {
			node.Expanded = true
			s.expanded[parent] = struct{}{}
		}
	}

	s.rebuildVisible()
	s.selected = key
	s.clampScroll()
	return true
}

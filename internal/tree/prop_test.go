package tree

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

const propRoot = "/sys/fs/cgroup"

// pathGen draws absolute cgroup paths one to four segments deep from a
// small alphabet, so snapshots share prefixes and exercise intermediate
// node creation.
func pathGen() *rapid.Generator[string] {
	segment := rapid.SampledFrom([]string{
		"system.slice", "user.slice", "init.scope", "machine.slice",
		"app", "web", "db", "worker-1", "worker-2",
	})
	return rapid.Custom(func(t *rapid.T) string {
		n := rapid.IntRange(1, 4).Draw(t, "depth")
		parts := make([]string, n)
		for i := range parts {
			parts[i] = segment.Draw(t, "segment")
		}
		return propRoot + "/" + strings.Join(parts, "/")
	})
}

func snapshotGen() *rapid.Generator[[]string] {
	return rapid.SliceOfN(pathGen(), 0, 20)
}

// validate checks invariants 1-5 directly against the internals.
func validate(t *rapid.T, s *State) {
	t.Helper()

	if len(s.nodes) > 0 {
		root, ok := s.nodes[""]
		if !ok {
			t.Fatalf("non-empty tree without sentinel root")
		}
		if !root.Expanded {
			t.Fatalf("sentinel root not expanded")
		}
	}

	for key, node := range s.nodes {
		for _, child := range node.Children {
			childNode, ok := s.nodes[child]
			if !ok {
				t.Fatalf("dangling child %q of %q", child, key)
			}
			if childNode.Depth != node.Depth+1 {
				t.Fatalf("child %q depth %d, parent %q depth %d",
					child, childNode.Depth, key, node.Depth)
			}
		}
	}

	seen := map[string]bool{}
	for _, key := range s.visible {
		if _, ok := s.nodes[key]; !ok {
			t.Fatalf("visible key %q has no node", key)
		}
		if seen[key] {
			t.Fatalf("visible key %q listed twice", key)
		}
		seen[key] = true
		for parent := ParentKey(key); parent != ""; parent = ParentKey(parent) {
			if !s.nodes[parent].Expanded {
				t.Fatalf("visible key %q under collapsed ancestor %q", key, parent)
			}
		}
	}

	if s.selected != "" && !s.isVisible(s.selected) {
		t.Fatalf("selection %q not visible", s.selected)
	}
}

func TestState_InvariantsUnderRandomOperations(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(propRoot)

		ops := rapid.IntRange(1, 40).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			switch rapid.IntRange(0, 5).Draw(t, "op") {
			case 0:
				s.Ingest(snapshotGen().Draw(t, "snapshot"))
			case 1:
				if len(s.visible) > 0 {
					idx := rapid.IntRange(0, len(s.visible)-1).Draw(t, "toggleIdx")
					s.ToggleExpand(s.visible[idx])
				}
			case 2:
				s.SelectNext()
			case 3:
				s.SelectPrevious()
			case 4:
				s.AdjustScroll(rapid.IntRange(1, 30).Draw(t, "height"))
			case 5:
				s.PruneStale()
			}
			validate(t, s)
		}
	})
}

func TestState_IngestIsIdempotentForAnySnapshot(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(propRoot)
		snap := snapshotGen().Draw(t, "snapshot")

		s.Ingest(snap)
		visible := append([]string(nil), s.visible...)
		selected := s.selected

		s.Ingest(snap)

		if selected != s.selected {
			t.Fatalf("selection changed: %q -> %q", selected, s.selected)
		}
		if len(visible) != len(s.visible) {
			t.Fatalf("visible length changed: %d -> %d", len(visible), len(s.visible))
		}
		for i := range visible {
			if visible[i] != s.visible[i] {
				t.Fatalf("visible[%d] changed: %q -> %q", i, visible[i], s.visible[i])
			}
		}
	})
}

func TestState_NavigationIsCircular(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(propRoot)
		s.Ingest(snapshotGen().Draw(t, "snapshot"))
		if len(s.visible) == 0 {
			return
		}

		start := s.selected
		for range s.visible {
			s.SelectNext()
		}
		if s.selected != start {
			t.Fatalf("selection did not return to %q after %d steps, got %q",
				start, len(s.visible), s.selected)
		}
	})
}

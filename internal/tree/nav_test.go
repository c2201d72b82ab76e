package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectedPath(t *testing.T) {
	s := New("/root")
	s.Ingest([]string{"/root/a", "/root/a/x", "/root/b"})

	path, ok := s.SelectedPath()
	assert.True(t, ok)
	assert.Equal(t, "/root/a", path)

	s.SelectNext()
	path, ok = s.SelectedPath()
	assert.True(t, ok)
	assert.Equal(t, "/root/a/x", path)
}

func TestSelectedPath_NoSelection(t *testing.T) {
	s := New("/root")

	_, ok := s.SelectedPath()
	assert.False(t, ok)
}

func TestParentKey(t *testing.T) {
	assert.Equal(t, "a/b", ParentKey("a/b/c"))
	assert.Equal(t, "a", ParentKey("a/b"))
	assert.Equal(t, "", ParentKey("a"))
	assert.Equal(t, "", ParentKey(""))
}

func TestSelectedParentPath(t *testing.T) {
	s := New("/root")
	s.Ingest([]string{"/root/a/x"})

	s.SelectNext() // a -> a/x
	path, ok := s.SelectedParentPath()
	assert.True(t, ok)
	assert.Equal(t, "/root/a", path)
}

func TestSelectedParentPath_Depth1HasNone(t *testing.T) {
	s := New("/root")
	s.Ingest([]string{"/root/a"})

	_, ok := s.SelectedParentPath()
	assert.False(t, ok)
}

func TestReveal_ExpandsAncestorsAndSelects(t *testing.T) {
	s := New("/root")
	s.Ingest([]string{"/root/a/x/deep", "/root/b"})

	// a/x starts collapsed, so a/x/deep is hidden.
	assert.False(t, s.IsExpanded("a/x"))

	assert.True(t, s.Reveal("a/x/deep"))

	selected, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, "a/x/deep", selected)
	assert.True(t, s.IsExpanded("a/x"))
	assert.GreaterOrEqual(t, s.SelectedIndex(), 0)
}

func TestReveal_UnknownKey(t *testing.T) {
	s := New("/root")
	s.Ingest([]string{"/root/a"})

	assert.False(t, s.Reveal("missing"))
	assert.False(t, s.Reveal(""))
}

func TestHasChildren(t *testing.T) {
	s := New("/root")
	s.Ingest([]string{"/root/a/x", "/root/b"})

	assert.True(t, s.HasChildren(""))
	assert.True(t, s.HasChildren("a"))
	assert.False(t, s.HasChildren("a/x"))
	assert.False(t, s.HasChildren("b"))
	assert.False(t, s.HasChildren("missing"))
}

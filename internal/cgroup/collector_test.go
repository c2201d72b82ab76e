package cgroup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgtop/cgtop/internal/errors"
	"github.com/cgtop/cgtop/internal/logger"
)

// writeCgroup creates a fake cgroup directory with the given controller
// file contents.
func writeCgroup(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func newTestCollector(root string) *Collector {
	c := NewCollector(root, logger.Noop())
	c.resolveCommand = func(pid int32) string { return "proc-stub" }
	return c
}

func TestCollect_WalksHierarchy(t *testing.T) {
	root := t.TempDir()
	writeCgroup(t, root, map[string]string{
		"cpu.stat": "usage_usec 5000\nuser_usec 3000\nsystem_usec 2000\n",
	})
	writeCgroup(t, filepath.Join(root, "system.slice"), map[string]string{
		"memory.current": "1048576\n",
		"memory.max":     "max\n",
		"pids.current":   "7\n",
		"pids.max":       "512\n",
	})
	writeCgroup(t, filepath.Join(root, "system.slice", "ssh.service"), map[string]string{
		"memory.current": "2048\n",
	})

	snap, err := newTestCollector(root).Collect(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Usage, 3)
	assert.False(t, snap.At.IsZero())

	rootStats := snap.Usage[root]
	assert.Equal(t, uint64(5000), rootStats.CPU.UsageUsec)
	assert.Equal(t, uint64(3000), rootStats.CPU.UserUsec)

	slice := snap.Usage[filepath.Join(root, "system.slice")]
	assert.Equal(t, uint64(1048576), slice.Memory.Current)
	assert.Zero(t, slice.Memory.Max, "memory.max of 'max' maps to 0")
	assert.Equal(t, uint64(7), slice.PIDs.Current)
	assert.Equal(t, uint64(512), slice.PIDs.Max)
}

func TestCollect_MissingRootFails(t *testing.T) {
	c := newTestCollector(filepath.Join(t.TempDir(), "absent"))

	_, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCollect))
}

func TestCollect_MissingControllerFilesAreZero(t *testing.T) {
	root := t.TempDir()
	writeCgroup(t, filepath.Join(root, "bare"), nil)

	snap, err := newTestCollector(root).Collect(context.Background())
	require.NoError(t, err)

	stats := snap.Usage[filepath.Join(root, "bare")]
	assert.Equal(t, Stats{}, stats)
}

func TestCollect_ContextCancellation(t *testing.T) {
	root := t.TempDir()
	writeCgroup(t, filepath.Join(root, "a"), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestCollector(root).Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollect_ReadsMemoryEvents(t *testing.T) {
	root := t.TempDir()
	writeCgroup(t, root, map[string]string{
		"memory.events": "low 1\nhigh 2\nmax 3\noom 4\noom_kill 5\n",
	})

	snap, err := newTestCollector(root).Collect(context.Background())
	require.NoError(t, err)

	ev := snap.Usage[root].Memory.Events
	assert.Equal(t, MemoryEvents{Low: 1, High: 2, Max: 3, OOM: 4, OOMKill: 5}, ev)
}

func TestCollect_ReadsMemoryBreakdown(t *testing.T) {
	root := t.TempDir()
	writeCgroup(t, root, map[string]string{
		"memory.stat": "anon 4096\nfile 2048\nkernel_stack 512\nslab 256\nsock 128\npgfault 99\n",
	})

	snap, err := newTestCollector(root).Collect(context.Background())
	require.NoError(t, err)

	bd := snap.Usage[root].Memory.Breakdown
	assert.Equal(t, MemoryBreakdown{
		Anon:        4096,
		File:        2048,
		KernelStack: 512,
		Slab:        256,
		Sock:        128,
	}, bd)
}

func TestCollect_SumsIOAcrossDevices(t *testing.T) {
	root := t.TempDir()
	writeCgroup(t, root, map[string]string{
		"io.stat": "253:0 rbytes=1000 wbytes=500 rios=10 wios=5\n" +
			"259:0 rbytes=2000 wbytes=1500 rios=20 wios=15\n",
	})

	snap, err := newTestCollector(root).Collect(context.Background())
	require.NoError(t, err)

	io := snap.Usage[root].IO
	assert.Equal(t, uint64(3000), io.ReadBytes)
	assert.Equal(t, uint64(2000), io.WriteBytes)
	assert.Equal(t, uint64(30), io.ReadOps)
	assert.Equal(t, uint64(20), io.WriteOps)
}

func TestCollect_ReadsProcs(t *testing.T) {
	root := t.TempDir()
	writeCgroup(t, filepath.Join(root, "svc"), map[string]string{
		"cgroup.procs": "42\n43\n\nnot-a-pid\n",
	})

	snap, err := newTestCollector(root).Collect(context.Background())
	require.NoError(t, err)

	procs := snap.ProcsIn(filepath.Join(root, "svc"))
	require.Len(t, procs, 2)
	assert.Equal(t, int32(42), procs[0].PID)
	assert.Equal(t, "proc-stub", procs[0].Command)
	assert.Equal(t, 2, snap.ProcessCount(root))
}

func TestSnapshot_Paths_Sorted(t *testing.T) {
	snap := &Snapshot{Usage: map[string]Stats{
		"/root/b": {},
		"/root":   {},
		"/root/a": {},
	}}

	assert.Equal(t, []string{"/root", "/root/a", "/root/b"}, snap.Paths())
}

func TestSynthetic_Deterministic(t *testing.T) {
	a := Synthetic()
	b := Synthetic()

	assert.Equal(t, a.Usage, b.Usage)
	assert.Equal(t, a.Procs, b.Procs)
	assert.Contains(t, a.Usage, DefaultRoot+"/system.slice/nginx.service")
	assert.Equal(t, uint64(100), a.Usage[DefaultRoot].PIDs.Current)
}

// Package cgroup reads resource statistics from a cgroup v2 unified
// hierarchy. A Collector walks the hierarchy on each sampling tick and
// returns a flat Snapshot; the dashboard derives its tree from the
// snapshot's path set.
package cgroup

import (
	"sort"
	"strings"
	"time"
)

// DefaultRoot is the usual cgroup v2 mount point.
const DefaultRoot = "/sys/fs/cgroup"

// MemoryStats holds the memory.* counters of one cgroup. Max is zero when
// the cgroup has no limit (memory.max reads "max").
type MemoryStats struct {
	Current   uint64
	Max       uint64
	Peak      uint64
	Events    MemoryEvents
	Breakdown MemoryBreakdown
}

// MemoryBreakdown holds selected memory.stat rows showing where a
// cgroup's memory went.
type MemoryBreakdown struct {
	Anon        uint64
	File        uint64
	KernelStack uint64
	Slab        uint64
	Sock        uint64
}

// MemoryEvents mirrors the memory.events counters.
type MemoryEvents struct {
	Low     uint64
	High    uint64
	Max     uint64
	OOM     uint64
	OOMKill uint64
}

// CPUStats holds the cpu.stat counters of one cgroup.
type CPUStats struct {
	UsageUsec     uint64
	UserUsec      uint64
	SystemUsec    uint64
	NrPeriods     uint64
	NrThrottled   uint64
	ThrottledUsec uint64
}

// IOStats holds io.stat counters summed across devices.
type IOStats struct {
	ReadBytes  uint64
	WriteBytes uint64
	ReadOps    uint64
	WriteOps   uint64
}

// PIDStats holds the pids.* counters of one cgroup. Max is zero when the
// cgroup has no limit.
type PIDStats struct {
	Current uint64
	Max     uint64
}

// Stats aggregates the per-controller counters of one cgroup.
type Stats struct {
	Memory MemoryStats
	CPU    CPUStats
	IO     IOStats
	PIDs   PIDStats
}

// Process is one member process of a cgroup.
type Process struct {
	PID     int32
	Command string
	Path    string // absolute path of the owning cgroup
}

// Snapshot is one complete reading of the hierarchy.
type Snapshot struct {
	// Usage maps absolute cgroup path to its stats.
	Usage map[string]Stats
	// Procs lists member processes discovered via cgroup.procs.
	Procs []Process
	// At is when the reading was taken.
	At time.Time
}

// Paths returns the sorted set of cgroup paths in the snapshot.
func (s *Snapshot) Paths() []string {
	paths := make([]string, 0, len(s.Usage))
	for p := range s.Usage {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Stats returns the stats recorded for path, if any.
func (s *Snapshot) Stats(path string) (Stats, bool) {
	st, ok := s.Usage[path]
	return st, ok
}

// ProcsIn returns the processes whose cgroup is path or a descendant of it.
func (s *Snapshot) ProcsIn(path string) []Process {
	var out []Process
	for _, p := range s.Procs {
		if p.Path == path || strings.HasPrefix(p.Path, path+"/") {
			out = append(out, p)
		}
	}
	return out
}

// ProcessCount counts the processes under path, descendants included.
func (s *Snapshot) ProcessCount(path string) int {
	n := 0
	for _, p := range s.Procs {
		if p.Path == path || strings.HasPrefix(p.Path, path+"/") {
			n++
		}
	}
	return n
}

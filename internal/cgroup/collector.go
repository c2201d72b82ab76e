package cgroup

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/cgtop/cgtop/internal/errors"
	"github.com/cgtop/cgtop/internal/logger"
)

// Collector walks a cgroup v2 hierarchy and produces Snapshots.
type Collector struct {
	root string
	log  logger.Logger

	// resolveCommand looks up the command name of a PID. Swapped out in
	// tests to avoid touching the live process table.
	resolveCommand func(pid int32) string
}

// NewCollector creates a collector rooted at the given hierarchy path.
func NewCollector(root string, log logger.Logger) *Collector {
	if log == nil {
		log = logger.Noop()
	}
	return &Collector{
		root:           strings.TrimRight(root, "/"),
		log:            log,
		resolveCommand: commandName,
	}
}

// Root returns the monitored hierarchy root.
func (c *Collector) Root() string {
	return c.root
}

// Collect reads the whole hierarchy once. Individual cgroups that cannot
// be read are skipped with a warning; only a missing or unreadable root is
// an error. The context is checked between directories so a slow walk can
// be abandoned mid-flight.
func (c *Collector) Collect(ctx context.Context) (*Snapshot, error) {
	if _, err := os.Stat(c.root); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCollect,
			"Cannot access cgroup hierarchy at "+c.root,
			"Check that cgroup v2 is mounted, or run with --mock for synthetic data.")
	}

	snap := &Snapshot{
		Usage: make(map[string]Stats),
		At:    time.Now(),
	}

	if err := c.walk(ctx, c.root, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *Collector) walk(ctx context.Context, dir string, snap *Snapshot) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	snap.Usage[dir] = c.readStats(dir)
	c.readProcs(dir, snap)

	entries, err := os.ReadDir(dir)
	if err != nil {
		c.log.Warn("skipping unreadable cgroup %s: %v", dir, err)
		return nil
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := c.walk(ctx, filepath.Join(dir, entry.Name()), snap); err != nil {
			return err
		}
	}
	return nil
}

// readStats reads the controller files of one cgroup. Every file is
// optional: controllers may not be enabled at this level, and the root
// cgroup exposes no memory.current at all.
func (c *Collector) readStats(dir string) Stats {
	return Stats{
		Memory: c.readMemory(dir),
		CPU:    c.readCPU(dir),
		IO:     c.readIO(dir),
		PIDs:   c.readPIDs(dir),
	}
}

func (c *Collector) readMemory(dir string) MemoryStats {
	var m MemoryStats
	m.Current = readCounter(filepath.Join(dir, "memory.current"))
	m.Max = readLimit(filepath.Join(dir, "memory.max"))
	m.Peak = readCounter(filepath.Join(dir, "memory.peak"))

	if content, err := os.ReadFile(filepath.Join(dir, "memory.events")); err == nil {
		for _, line := range strings.Split(string(content), "\n") {
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			v, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				continue
			}
			switch fields[0] {
			case "low":
				m.Events.Low = v
			case "high":
				m.Events.High = v
			case "max":
				m.Events.Max = v
			case "oom":
				m.Events.OOM = v
			case "oom_kill":
				m.Events.OOMKill = v
			}
		}
	}

	if content, err := os.ReadFile(filepath.Join(dir, "memory.stat")); err == nil {
		for _, line := range strings.Split(string(content), "\n") {
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			v, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				continue
			}
			switch fields[0] {
			case "anon":
				m.Breakdown.Anon = v
			case "file":
				m.Breakdown.File = v
			case "kernel_stack":
				m.Breakdown.KernelStack = v
			case "slab":
				m.Breakdown.Slab = v
			case "sock":
				m.Breakdown.Sock = v
			}
		}
	}
	return m
}

func (c *Collector) readCPU(dir string) CPUStats {
	var cpu CPUStats
	content, err := os.ReadFile(filepath.Join(dir, "cpu.stat"))
	if err != nil {
		return cpu
	}
	for _, line := range strings.Split(string(content), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		switch fields[0] {
		case "usage_usec":
			cpu.UsageUsec = v
		case "user_usec":
			cpu.UserUsec = v
		case "system_usec":
			cpu.SystemUsec = v
		case "nr_periods":
			cpu.NrPeriods = v
		case "nr_throttled":
			cpu.NrThrottled = v
		case "throttled_usec":
			cpu.ThrottledUsec = v
		}
	}
	return cpu
}

// readIO sums io.stat across devices. Lines look like:
//
//	253:0 rbytes=1024 wbytes=512 rios=10 wios=5 dbytes=0 dios=0
func (c *Collector) readIO(dir string) IOStats {
	var io IOStats
	content, err := os.ReadFile(filepath.Join(dir, "io.stat"))
	if err != nil {
		return io
	}
	for _, line := range strings.Split(string(content), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		for _, field := range fields[1:] {
			key, value, ok := strings.Cut(field, "=")
			if !ok {
				continue
			}
			v, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				continue
			}
			switch key {
			case "rbytes":
				io.ReadBytes += v
			case "wbytes":
				io.WriteBytes += v
			case "rios":
				io.ReadOps += v
			case "wios":
				io.WriteOps += v
			}
		}
	}
	return io
}

func (c *Collector) readPIDs(dir string) PIDStats {
	return PIDStats{
		Current: readCounter(filepath.Join(dir, "pids.current")),
		Max:     readLimit(filepath.Join(dir, "pids.max")),
	}
}

// readProcs reads cgroup.procs and records each member PID with its
// resolved command name.
func (c *Collector) readProcs(dir string, snap *Snapshot) {
	content, err := os.ReadFile(filepath.Join(dir, "cgroup.procs"))
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pid, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			continue
		}
		snap.Procs = append(snap.Procs, Process{
			PID:     int32(pid),
			Command: c.resolveCommand(int32(pid)),
			Path:    dir,
		})
	}
}

// commandName resolves a PID to its command name, falling back to "[pid]"
// when the process already exited or /proc is unreadable.
func commandName(pid int32) string {
	proc, err := process.NewProcess(pid)
	if err != nil {
		return "[" + strconv.Itoa(int(pid)) + "]"
	}
	if name, err := proc.Name(); err == nil && name != "" {
		return name
	}
	return "[" + strconv.Itoa(int(pid)) + "]"
}

// readCounter reads a single-value counter file, returning 0 on any error.
func readCounter(path string) uint64 {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(content)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// readLimit reads a limit file where "max" means unlimited, mapped to 0.
func readLimit(path string) uint64 {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	trimmed := strings.TrimSpace(string(content))
	if trimmed == "max" {
		return 0
	}
	v, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

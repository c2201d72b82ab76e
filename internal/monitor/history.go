package monitor

import (
	"sync"
	"time"
)

// DefaultHistorySize is the number of samples retained per cgroup.
const DefaultHistorySize = 60

// History keeps per-cgroup sample series in ring buffers, keyed by
// absolute cgroup path. It backs the sparklines in the detail view.
type History struct {
	mu      sync.RWMutex
	size    int
	entries map[string]*pathHistory
}

type pathHistory struct {
	memory   *ringBuffer
	cpu      *ringBuffer
	lastSeen time.Time
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a history tracker with the given buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:    size,
		entries: make(map[string]*pathHistory),
	}
}

// Push records one sample for path: memory in bytes and CPU in percent.
func (h *History) Push(path string, memoryBytes uint64, cpuPercent float64, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	hist, ok := h.entries[path]
	if !ok {
		hist = &pathHistory{
			memory: newRingBuffer(h.size),
			cpu:    newRingBuffer(h.size),
		}
		h.entries[path] = hist
	}
	hist.memory.push(float64(memoryBytes))
	if cpuPercent >= 0 {
		hist.cpu.push(cpuPercent)
	}
	hist.lastSeen = at
}

// Memory returns up to count memory samples for path, oldest first.
func (h *History) Memory(path string, count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	hist, ok := h.entries[path]
	if !ok {
		return nil
	}
	return hist.memory.getLast(count)
}

// CPU returns up to count CPU-percent samples for path, oldest first.
func (h *History) CPU(path string, count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	hist, ok := h.entries[path]
	if !ok {
		return nil
	}
	return hist.cpu.getLast(count)
}

// Prune drops series for cgroups not seen since cutoff. Returns how many
// were removed.
func (h *History) Prune(cutoff time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for path, hist := range h.entries {
		if hist.lastSeen.Before(cutoff) {
			delete(h.entries, path)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked cgroups.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order.
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}

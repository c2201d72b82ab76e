package events

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cgtop/cgtop/internal/cgroup"
	"github.com/cgtop/cgtop/internal/logger"
)

// Options configures the orchestrator's producers.
type Options struct {
	// Interval between hierarchy samples.
	Interval time.Duration
	// CleanupInterval between housekeeping events.
	CleanupInterval time.Duration
	// Retention bounds how much history the consumer keeps; housekeeping
	// cutoffs are computed as now minus this.
	Retention time.Duration
	// Mock skips the real hierarchy entirely and publishes synthetic
	// snapshots.
	Mock bool
	// Watch enables a filesystem watcher that triggers an early resample
	// when cgroups appear or disappear.
	Watch bool
}

// DefaultOptions returns the sampling cadence used when nothing is
// configured.
func DefaultOptions() Options {
	return Options{
		Interval:        2 * time.Second,
		CleanupInterval: 30 * time.Second,
		Retention:       5 * time.Minute,
	}
}

// Orchestrator owns the producer goroutines feeding the bus. Start
// launches them; Stop signals all of them, waits for them to exit, then
// closes the bus so the consumer sees a clean end of stream.
type Orchestrator struct {
	bus       *Bus[Event]
	collector *cgroup.Collector
	opts      Options
	log       logger.Logger

	stop     chan struct{}
	nudge    chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewOrchestrator wires producers for the given bus and collector.
func NewOrchestrator(bus *Bus[Event], collector *cgroup.Collector, opts Options, log logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Noop()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultOptions().Interval
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = DefaultOptions().CleanupInterval
	}
	if opts.Retention <= 0 {
		opts.Retention = DefaultOptions().Retention
	}
	return &Orchestrator{
		bus:       bus,
		collector: collector,
		opts:      opts,
		log:       log,
		stop:      make(chan struct{}),
		nudge:     make(chan struct{}, 1),
	}
}

// Start launches the sampler, the housekeeper, and optionally the
// filesystem watcher.
func (o *Orchestrator) Start() {
	o.wg.Add(2)
	go o.runSampler()
	go o.runHousekeeper()

	if o.opts.Watch && !o.opts.Mock {
		o.wg.Add(1)
		go o.runWatcher()
	}
}

// Nudge asks the sampler for an early sample. Coalesces when one is
// already pending.
func (o *Orchestrator) Nudge() {
	select {
	case o.nudge <- struct{}{}:
	default:
	}
}

// Stop signals every producer, waits for them to finish, and closes the
// bus. Safe to call more than once.
func (o *Orchestrator) Stop() {
	o.stopOnce.Do(func() {
		close(o.stop)
		o.wg.Wait()
		o.bus.Close()
	})
}

// runSampler publishes one snapshot immediately, then one per interval.
// A nudge from the watcher forces an early sample.
func (o *Orchestrator) runSampler() {
	defer o.wg.Done()

	o.sample()

	ticker := time.NewTicker(o.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-o.stop:
			o.log.Info("sampler stopped")
			return
		case <-ticker.C:
			o.sample()
		case <-o.nudge:
			o.sample()
		}
	}
}

// sample collects one snapshot and publishes it. Collection failures are
// never fatal: the sampler logs a warning and falls back to synthetic
// data so the dashboard keeps rendering.
func (o *Orchestrator) sample() {
	var snap *cgroup.Snapshot

	if o.opts.Mock {
		snap = cgroup.Synthetic()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), o.opts.Interval)
		collected, err := o.collector.Collect(ctx)
		cancel()
		if err != nil {
			o.log.Warn("collection failed, using synthetic data: %v", err)
			snap = cgroup.Synthetic()
		} else {
			snap = collected
		}
	}

	o.bus.Publish(Update{Snapshot: snap})
}

func (o *Orchestrator) runHousekeeper() {
	defer o.wg.Done()

	ticker := time.NewTicker(o.opts.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-o.stop:
			o.log.Info("housekeeper stopped")
			return
		case <-ticker.C:
			o.bus.Publish(Cleanup{Cutoff: time.Now().Add(-o.opts.Retention)})
		}
	}
}

// runWatcher nudges the sampler when directories under the monitored root
// change. Watches cover the root and its immediate children; anything
// deeper is picked up by the next periodic sample anyway.
func (o *Orchestrator) runWatcher() {
	defer o.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		o.log.Warn("filesystem watcher unavailable: %v", err)
		return
	}
	defer watcher.Close()

	root := o.collector.Root()
	if err := watcher.Add(root); err != nil {
		o.log.Warn("cannot watch %s: %v", root, err)
		return
	}
	if entries, err := os.ReadDir(root); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				_ = watcher.Add(filepath.Join(root, entry.Name()))
			}
		}
	}

	for {
		select {
		case <-o.stop:
			o.log.Info("watcher stopped")
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Remove) {
				if ev.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						_ = watcher.Add(ev.Name)
					}
				}
				select {
				case o.nudge <- struct{}{}:
				default:
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			o.log.Warn("watcher error: %v", err)
		}
	}
}

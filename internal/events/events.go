// Package events carries samples from producer goroutines to the
// dashboard's single consumer loop. Producers publish onto an unbounded
// Bus; the Orchestrator owns their lifecycles and joins them on shutdown.
package events

import (
	"time"

	"github.com/cgtop/cgtop/internal/cgroup"
)

// Event is the closed set of messages flowing over the bus.
type Event interface {
	event()
}

// Update delivers a fresh hierarchy snapshot.
type Update struct {
	Snapshot *cgroup.Snapshot
}

// Cleanup asks the consumer to drop retained data older than Cutoff.
type Cleanup struct {
	Cutoff time.Time
}

// Terminate asks the consumer to shut down. The bus closing its channel
// carries the same meaning; this exists for producers that want an
// explicit in-band signal.
type Terminate struct{}

func (Update) event()    {}
func (Cleanup) event()   {}
func (Terminate) event() {}

package destination

import "sync/atomic"

// Stats counts what happened to the entries a destination received
type Stats struct {
	written uint64
	dropped uint64
	failed  uint64
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	// Written counts entries handed to the writer successfully
	Written uint64
	// Dropped counts entries that arrived while no file was open
	Dropped uint64
	// Failed counts entries the writer returned an error for
	Failed uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) incrementWritten() { atomic.AddUint64(&s.written, 1) }
func (s *Stats) incrementDropped() { atomic.AddUint64(&s.dropped, 1) }
func (s *Stats) incrementFailed() { atomic.AddUint64(&s.failed, 1) }

// Snapshot returns the current counters
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Written: atomic.LoadUint64(&s.written),
		Dropped: atomic.LoadUint64(&s.dropped),
		Failed:  atomic.LoadUint64(&s.failed),
	}
}


package probe

import (
	"time"

	"github.com/alorle/iptv-aggregator/internal/channel"
)

// Result is the outcome of one reachability check of an entry's URL.
// It is an immutable value object.
type Result struct {
	entry     channel.Entry
	reachable bool
	latency   time.Duration
}

// NewResult creates a new probe result with validation.
// The latency is discarded for unreachable results.
func NewResult(entry channel.Entry, reachable bool, latency time.Duration) (Result, error) {
	if entry == (channel.Entry{}) {
		return Result{}, ErrEmptyEntry
	}
	if latency < 0 {
		return Result{}, ErrNegativeLatency
	}
	if !reachable {
		latency = 0
	}
	return Result{
		entry:     entry,
		reachable: reachable,
		latency:   latency,
	}, nil
}

func (r Result) Entry() channel.Entry { return r.entry }
func (r Result) Reachable() bool      { return r.reachable }

// Latency returns the time to the response status, and false when the
// URL was not reachable.
func (r Result) Latency() (time.Duration, bool) {
	return r.latency, r.reachable
}

// ReachableEntries returns the entries of the reachable results, keeping
// their order.
func ReachableEntries(results []Result) []channel.Entry {
	var out []channel.Entry
	for _, r := range results {
		if r.reachable {
			out = append(out, r.entry)
		}
	}
	return out
}

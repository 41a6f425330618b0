// Package snapshot provides interval-addressable navigation over a
// deterministic sim.Simulator run: jump to any already-reachable
// interval, rewind, or fast-forward. Jumping back to an interval
// recomputes it from a fresh kernel rather than restoring saved state;
// stepping onto new ground advances the live kernel.
//
// Grounded on the teacher's cluster snapshot machinery
// (sim/cluster/snapshot.go, sim/cluster/snapshot_test.go's
// TestSnapshot_Immutability): the teacher captures a deep value copy of
// cluster state after every tick so a caller can rewind without
// re-deriving it. The kernel here is fully deterministic — the same
// sim.Config, replayed forward, byte-for-byte reproduces the same
// sequence of IntervalRecords (spec property S5) — so this store takes
// a different, simpler route to the same guarantee: it never attempts
// to serialize math/rand.Rand's internal state (the standard library
// exposes no supported way to clone it mid-stream); instead "rewind"
// and "go to interval k" rebuild a fresh sim.Simulator from cfg and
// replay every interval up to and including k. Determinism of the
// kernel makes that replay produce an identical result every time,
// which is the property callers actually need.
package snapshot

import (
	"fmt"

	"github.com/airport-sim/airport-sim/sim"
)

// Store provides interval-addressable navigation over a sim.Config-
// defined run.
type Store struct {
	cfg            sim.Config
	totalIntervals int64

	current      *sim.Simulator
	currentIndex int64 // number of intervals computed in `current`; CurrentInterval() == currentIndex-1
	maxComputed  int64 // highest interval index ever reached, across rewinds; -1 if none
	records      []*sim.IntervalRecord
}

// NewStore creates a store that can navigate intervals [0, totalIntervals).
func NewStore(cfg sim.Config, totalIntervals int64) (*Store, error) {
	if totalIntervals < 1 {
		return nil, fmt.Errorf("snapshot: totalIntervals must be >= 1, got %d", totalIntervals)
	}
	current, _, err := sim.NewSimulator(cfg)
	if err != nil {
		return nil, err
	}
	return &Store{
		cfg:            cfg,
		totalIntervals: totalIntervals,
		current:        current,
		currentIndex:   0,
		maxComputed:    -1,
		records:        make([]*sim.IntervalRecord, totalIntervals),
	}, nil
}

// CurrentInterval returns the index of the most recently computed
// interval, or -1 if none has been computed yet.
func (s *Store) CurrentInterval() int64 {
	return s.currentIndex - 1
}

// MaxComputedInterval returns the highest interval index reached so
// far across the store's lifetime (not just the current position).
func (s *Store) MaxComputedInterval() int64 {
	return s.maxComputed
}

// TotalIntervals returns the configured navigable horizon.
func (s *Store) TotalIntervals() int64 {
	return s.totalIntervals
}

// CanRewind reports whether RewindOneInterval can succeed.
func (s *Store) CanRewind() bool {
	return s.CurrentInterval() > 0
}

// CanFastForward reports whether FastForwardOneInterval can succeed.
func (s *Store) CanFastForward() bool {
	return s.CurrentInterval()+1 < s.totalIntervals
}

// ComputeNextInterval advances the live simulator by exactly one
// interval beyond its current position, extending maxComputed if this
// is new ground.
func (s *Store) ComputeNextInterval() (*sim.IntervalRecord, error) {
	if s.CurrentInterval()+1 >= s.totalIntervals {
		return nil, fmt.Errorf("snapshot: already at the last navigable interval (%d)", s.totalIntervals-1)
	}
	rec := s.current.SimulateInterval()
	s.records[s.currentIndex] = rec
	s.currentIndex++
	if s.currentIndex-1 > s.maxComputed {
		s.maxComputed = s.currentIndex - 1
	}
	return rec, nil
}

// RunAll computes every remaining interval through totalIntervals-1.
func (s *Store) RunAll() error {
	for s.CurrentInterval()+1 < s.totalIntervals {
		if _, err := s.ComputeNextInterval(); err != nil {
			return err
		}
	}
	return nil
}

// GoToInterval jumps to interval k, rebuilding a fresh simulator from
// the store's config and replaying forward from 0. Two calls with the
// same k always return byte-identical records (spec property S5).
func (s *Store) GoToInterval(k int64) (*sim.IntervalRecord, error) {
	if k < 0 || k >= s.totalIntervals {
		return nil, fmt.Errorf("snapshot: interval %d out of range [0, %d)", k, s.totalIntervals)
	}

	fresh, _, err := sim.NewSimulator(s.cfg)
	if err != nil {
		return nil, err
	}

	var rec *sim.IntervalRecord
	for i := int64(0); i <= k; i++ {
		rec = fresh.SimulateInterval()
		s.records[i] = rec
	}

	s.current = fresh
	s.currentIndex = k + 1
	if k > s.maxComputed {
		s.maxComputed = k
	}
	return rec, nil
}

// RewindOneInterval moves back to the interval immediately before the
// current one.
func (s *Store) RewindOneInterval() (*sim.IntervalRecord, error) {
	if !s.CanRewind() {
		return nil, fmt.Errorf("snapshot: cannot rewind before interval 0")
	}
	return s.GoToInterval(s.CurrentInterval() - 1)
}

// FastForwardOneInterval moves forward to the interval immediately
// after the current one, whether or not it has been reached before.
func (s *Store) FastForwardOneInterval() (*sim.IntervalRecord, error) {
	if !s.CanFastForward() {
		return nil, fmt.Errorf("snapshot: cannot fast-forward past the last navigable interval")
	}
	target := s.CurrentInterval() + 1
	if target <= s.maxComputed {
		return s.GoToInterval(target)
	}
	return s.ComputeNextInterval()
}

// RecordAt returns the cached IntervalRecord for interval k, if it has
// ever been computed during this store's lifetime.
func (s *Store) RecordAt(k int64) (*sim.IntervalRecord, bool) {
	if k < 0 || k >= int64(len(s.records)) || s.records[k] == nil {
		return nil, false
	}
	return s.records[k], true
}

// Current returns the live simulator positioned at CurrentInterval().
// Callers may inspect it (e.g. Arena(), History()) but must not mutate
// it outside the store's own methods.
func (s *Store) Current() *sim.Simulator {
	return s.current
}

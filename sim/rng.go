package sim

import (
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible kernel run.
// Two kernels constructed with the same SimulationKey and identical
// configuration MUST produce byte-identical snapshots.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem constants ===

const (
	// SubsystemHoldRoom is the RNG subsystem used to break ties when a
	// flight has more than one hold room tied on minimal walk seconds.
	SubsystemHoldRoom = "holdroom"

	// SubsystemJitter is the RNG subsystem used for the sub-minute spawn
	// jitter applied to arrivals when jitter is enabled.
	SubsystemJitter = "jitter"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem so that drawing jitter for one flight never perturbs the
// draw sequence used for hold-room tie-breaking, or vice versa.
//
// Derivation formula:
//   - SubsystemHoldRoom uses the master seed directly (backward
//     compatibility with single-subsystem seeding).
//   - All other subsystems: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. The kernel is single-threaded
// cooperative, so this is never called concurrently.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemHoldRoom {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

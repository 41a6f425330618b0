// Package sim provides the core discrete-event kernel for the airport
// departure pipeline simulator.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - flight.go, passenger.go, stamps.go: the data model (identity, stamps).
//   - event.go: the per-second phase ordering that drives one interval.
//   - scheduler.go: Simulator.SimulateInterval, the event loop.
//   - router.go: the checkpoint lane selection policy.
//   - lifecycle.go: boarding-close and departure enforcement.
//
// # Architecture
//
// The sim package owns all kernel state (flights, passengers, queues,
// hold rooms) and exposes a pull-based stepping API. Supporting
// concerns live in sub-packages:
//   - sim/snapshot/: interval-boundary snapshots, rewind/fast-forward.
//   - sim/trace/: optional decision-trace recording for the router.
//
// # Key Interfaces
//
//   - CheckpointRouter: selects a checkpoint lane for an arriving passenger.
//   - TravelTimeProvider: overrides any of the four travel legs.
//   - ArrivalCurveGenerator: produces a flight's per-minute arrival counts.
package sim

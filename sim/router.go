package sim

import "math"

// RouterState is the read-only view of checkpoint lanes a
// CheckpointRouter decides over. Grounded on the teacher's RouterState
// (sim/router_state.go): a lightweight, pass-by-pointer snapshot of
// lane state built fresh for each routing decision.
type RouterState struct {
	AbsSec int64
	Lanes  []*CheckpointLaneState
	Arena  *PassengerArena
}

// LaneBacklog is the backlog score computed for a single lane, exposed
// so callers (and the trace package) can see why a lane was or was not
// chosen.
type LaneBacklog struct {
	Lane           int
	Backlog        float64
	NonMissedQueue int
}

// CheckpointRouter decides which checkpoint lane an arriving passenger
// should be routed to. Grounded on the teacher's RoutingPolicy
// interface (sim/routing.go): an extension point so the scheduler never
// hard-codes the selection rule. PickLane makes the decision; Backlogs
// exposes the per-lane scores behind it.
type CheckpointRouter interface {
	// PickLane returns the index into state.Lanes of the chosen lane.
	PickLane(state *RouterState) int
	// Backlogs returns the backlog score computed for every lane, in
	// lane-index order, for tracing and testing.
	Backlogs(state *RouterState) []LaneBacklog
}

// MinimalBacklogRouter implements spec.md §4.2: pick the lane
// minimizing remaining_service + non_missed_queued * service_seconds,
// breaking ties by smaller non-missed queue size then lower lane id.
type MinimalBacklogRouter struct{}

// Backlogs computes the backlog score for every lane.
func (MinimalBacklogRouter) Backlogs(state *RouterState) []LaneBacklog {
	out := make([]LaneBacklog, len(state.Lanes))
	for i, lane := range state.Lanes {
		out[i] = LaneBacklog{
			Lane:           i,
			Backlog:        backlogFor(lane, state.AbsSec, state.Arena),
			NonMissedQueue: lane.Queue.CountNonMissed(state.Arena),
		}
	}
	return out
}

// PickLane selects the minimal-backlog lane.
func (MinimalBacklogRouter) PickLane(state *RouterState) int {
	if len(state.Lanes) == 0 {
		panic("MinimalBacklogRouter.PickLane: no checkpoint lanes configured")
	}

	best := 0
	bestBacklog := backlogFor(state.Lanes[0], state.AbsSec, state.Arena)
	bestQueue := state.Lanes[0].Queue.CountNonMissed(state.Arena)

	for i := 1; i < len(state.Lanes); i++ {
		backlog := backlogFor(state.Lanes[i], state.AbsSec, state.Arena)
		queue := state.Lanes[i].Queue.CountNonMissed(state.Arena)

		if backlog < bestBacklog ||
			(backlog == bestBacklog && queue < bestQueue) {
			best = i
			bestBacklog = backlog
			bestQueue = queue
		}
		// backlog == bestBacklog && queue == bestQueue: lower lane id
		// already wins since we only overwrite on strict improvement.
	}
	return best
}

func backlogFor(lane *CheckpointLaneState, absSec int64, arena *PassengerArena) float64 {
	if lane.Config.RatePerHour <= 0 {
		return math.Inf(1)
	}
	remaining := lane.ServiceEndAbs - absSec
	if remaining < 0 {
		remaining = 0
	}
	nonMissed := lane.Queue.CountNonMissed(arena)
	return float64(remaining) + float64(nonMissed)*float64(lane.Config.ServiceSeconds())
}

package sim

import "testing"

func newLaneState(id string, serviceEndAbs int64) *CheckpointLaneState {
	lane := NewCheckpointLaneState(CheckpointConfig{ID: id, RatePerHour: 3600})
	lane.ServiceEndAbs = serviceEndAbs
	return lane
}

// TestMinimalBacklogRouter_S3_TieBreaksByLowerLaneID covers scenario
// S3: when every lane has identical backlog, the router picks the
// lowest lane index, not the first one encountered by chance.
func TestMinimalBacklogRouter_S3_TieBreaksByLowerLaneID(t *testing.T) {
	arena := NewPassengerArena()
	lanes := []*CheckpointLaneState{
		newLaneState("CP1", 0),
		newLaneState("CP2", 0),
		newLaneState("CP3", 0),
	}
	state := &RouterState{AbsSec: 0, Lanes: lanes, Arena: arena}

	router := MinimalBacklogRouter{}
	if got := router.PickLane(state); got != 0 {
		t.Fatalf("PickLane=%d, want 0 (lowest index on a tie)", got)
	}
}

func TestMinimalBacklogRouter_PicksSmallerNonMissedQueueOnEqualServiceRemaining(t *testing.T) {
	// GIVEN two lanes with equal remaining service time but different
	// non-missed queue sizes
	// WHEN PickLane runs
	// THEN the lane with the smaller non-missed queue wins, even though
	// both started with equal ServiceEndAbs
	arena := NewPassengerArena()
	idA := arena.Spawn("AA100", 0, true)
	idB := arena.Spawn("AA100", 0, true)
	idC := arena.Spawn("AA100", 0, true)

	laneSmall := newLaneState("CP1", 0)
	laneSmall.Queue.Enqueue(idA)

	laneBig := newLaneState("CP2", 0)
	laneBig.Queue.Enqueue(idB)
	laneBig.Queue.Enqueue(idC)

	state := &RouterState{AbsSec: 0, Lanes: []*CheckpointLaneState{laneBig, laneSmall}, Arena: arena}
	router := MinimalBacklogRouter{}

	// both lanes have ServiceEndAbs=0 (idle), so backlog is purely
	// queue-driven: laneBig backlog = 2*serviceSeconds, laneSmall = 1*serviceSeconds
	if got := router.PickLane(state); got != 1 {
		t.Fatalf("PickLane=%d, want 1 (laneSmall, smaller backlog)", got)
	}
}

func TestMinimalBacklogRouter_IgnoresMissedPassengersInBacklog(t *testing.T) {
	// GIVEN a lane whose queue is full of missed passengers and another
	// with one genuine waiting passenger
	// WHEN PickLane runs
	// THEN the lane whose queue is entirely missed (effectively empty)
	// is preferred, since missed passengers contribute no backlog
	arena := NewPassengerArena()
	missedA := arena.Spawn("AA100", 0, true)
	arena.Get(missedA).Missed = true
	missedB := arena.Spawn("AA100", 0, true)
	arena.Get(missedB).Missed = true
	waiting := arena.Spawn("AA100", 0, true)

	laneAllMissed := newLaneState("CP1", 0)
	laneAllMissed.Queue.Enqueue(missedA)
	laneAllMissed.Queue.Enqueue(missedB)

	laneWaiting := newLaneState("CP2", 0)
	laneWaiting.Queue.Enqueue(waiting)

	state := &RouterState{AbsSec: 0, Lanes: []*CheckpointLaneState{laneAllMissed, laneWaiting}, Arena: arena}
	router := MinimalBacklogRouter{}

	if got := router.PickLane(state); got != 0 {
		t.Fatalf("PickLane=%d, want 0 (missed passengers add no backlog)", got)
	}
}

func TestMinimalBacklogRouter_PrefersLaneFinishingSooner(t *testing.T) {
	// GIVEN two empty-queue lanes where one is mid-service and finishes
	// later than the other
	// WHEN PickLane runs
	// THEN the lane finishing sooner is chosen
	arena := NewPassengerArena()
	laneBusy := newLaneState("CP1", 500)
	laneIdle := newLaneState("CP2", 100)

	state := &RouterState{AbsSec: 50, Lanes: []*CheckpointLaneState{laneBusy, laneIdle}, Arena: arena}
	router := MinimalBacklogRouter{}

	if got := router.PickLane(state); got != 1 {
		t.Fatalf("PickLane=%d, want 1 (finishes sooner)", got)
	}
}

func TestMinimalBacklogRouter_Backlogs_ReportsPerLaneScores(t *testing.T) {
	// GIVEN two lanes
	// WHEN Backlogs is queried
	// THEN it reports one entry per lane, in lane-index order
	arena := NewPassengerArena()
	lanes := []*CheckpointLaneState{newLaneState("CP1", 0), newLaneState("CP2", 0)}
	state := &RouterState{AbsSec: 0, Lanes: lanes, Arena: arena}

	backlogs := MinimalBacklogRouter{}.Backlogs(state)
	if len(backlogs) != 2 {
		t.Fatalf("len=%d, want 2", len(backlogs))
	}
	if backlogs[0].Lane != 0 || backlogs[1].Lane != 1 {
		t.Fatalf("lane indices out of order: %+v", backlogs)
	}
}

func TestMinimalBacklogRouter_PickLane_PanicsWithNoLanes(t *testing.T) {
	// GIVEN a router state with zero lanes
	// WHEN PickLane is called
	// THEN it panics rather than silently returning a bogus index
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic with zero checkpoint lanes")
		}
	}()
	arena := NewPassengerArena()
	state := &RouterState{AbsSec: 0, Lanes: nil, Arena: arena}
	MinimalBacklogRouter{}.PickLane(state)
}

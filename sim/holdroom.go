package sim

import "math/rand"

// HoldRoomAssignment maps every flight to the single hold room it is
// bound to for the run. Grounded on spec.md §3 (Hold Rooms) / §4.4: each
// flight is pre-assigned at construction, not re-derived per arrival, so
// "chosen room" is a stable fact a renderer can read rather than a
// routing decision made fresh each time.
type HoldRoomAssignment struct {
	byFlight map[string]int
}

// NewHoldRoomAssignment pre-assigns every flight in flights to a hold
// room: minimal walk_seconds_from_checkpoint among rooms accepting the
// flight, ties broken by a draw from the SubsystemHoldRoom RNG; if no
// room explicitly accepts the flight, falls back to any room accepting
// all flights; if neither applies, room 0.
func NewHoldRoomAssignment(flights []Flight, holdRoomCfgs []HoldRoomConfig, rng *PartitionedRNG) *HoldRoomAssignment {
	a := &HoldRoomAssignment{byFlight: make(map[string]int, len(flights))}
	if len(holdRoomCfgs) == 0 {
		return a
	}

	tieBreak := rng.ForSubsystem(SubsystemHoldRoom)
	for _, f := range flights {
		name := f.NormalizedNumber()
		if _, ok := a.byFlight[name]; ok {
			continue
		}
		a.byFlight[name] = pickHoldRoom(name, holdRoomCfgs, tieBreak)
	}
	return a
}

// pickHoldRoom implements the selection rule for a single flight.
func pickHoldRoom(flightNumber string, cfgs []HoldRoomConfig, tieBreak *rand.Rand) int {
	candidates := acceptingRooms(flightNumber, cfgs)
	if len(candidates) == 0 {
		candidates = universalRooms(cfgs)
	}
	if len(candidates) == 0 {
		return 0
	}

	tied := []int{candidates[0]}
	bestWalk := cfgs[candidates[0]].WalkSecondsFromCheckpoint
	for _, i := range candidates[1:] {
		walk := cfgs[i].WalkSecondsFromCheckpoint
		switch {
		case walk < bestWalk:
			bestWalk = walk
			tied = []int{i}
		case walk == bestWalk:
			tied = append(tied, i)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}
	return tied[tieBreak.Intn(len(tied))]
}

func acceptingRooms(flightNumber string, cfgs []HoldRoomConfig) []int {
	var out []int
	for i, c := range cfgs {
		if c.Accepts(flightNumber) {
			out = append(out, i)
		}
	}
	return out
}

func universalRooms(cfgs []HoldRoomConfig) []int {
	var out []int
	for i, c := range cfgs {
		if len(c.AllowedFlights) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// RoomFor returns the pre-assigned hold room index for flightNumber,
// clamped into [0, numRooms) per the MissingChosenRoom degrade rule
// (spec.md §7): if the assignment is missing or now out of range,
// degrade to room 0 rather than fail.
func (a *HoldRoomAssignment) RoomFor(flightNumber string, numRooms int) int {
	if numRooms == 0 {
		panic("sim: no hold rooms configured")
	}
	room, ok := a.byFlight[flightNumber]
	if !ok || room < 0 || room >= numRooms {
		return 0
	}
	return room
}

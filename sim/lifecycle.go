package sim

// FlightLifecycle tracks per-flight boarding-close and departure state
// across the horizon. Grounded on the teacher's cluster lifecycle
// bookkeeping (sim/cluster's per-job state transitions), adapted here
// to the two flight-level transitions spec.md §4.3 Phase A/B define:
// boarding close (Phase A.1) and departure (Phase A.2).
type FlightLifecycle struct {
	boardingCloseAbs map[string]int64
	closed           map[string]bool
	departed         map[string]bool
}

// NewFlightLifecycle precomputes the boarding-close absolute second for
// every flight in roster, given the configured lead time.
func NewFlightLifecycle(roster *FlightRoster, boardingCloseMinutes int) *FlightLifecycle {
	fl := &FlightLifecycle{
		boardingCloseAbs: make(map[string]int64, roster.Len()),
		closed:           make(map[string]bool, roster.Len()),
		departed:         make(map[string]bool, roster.Len()),
	}
	for _, f := range roster.Flights() {
		fl.boardingCloseAbs[f.NormalizedNumber()] = int64(f.BoardingCloseMinute(boardingCloseMinutes)) * 60
	}
	return fl
}

// BoardingCloseAbs returns the absolute second boarding closes for the
// given (normalized) flight number.
func (fl *FlightLifecycle) BoardingCloseAbs(flightNumber string) (int64, bool) {
	v, ok := fl.boardingCloseAbs[flightNumber]
	return v, ok
}

// IsBoardingClosed reports whether boarding has already closed for the
// flight.
func (fl *FlightLifecycle) IsBoardingClosed(flightNumber string) bool {
	return fl.closed[flightNumber]
}

// SetBoardingClosed records that boarding has closed for the flight.
// Idempotent.
func (fl *FlightLifecycle) SetBoardingClosed(flightNumber string) {
	fl.closed[flightNumber] = true
}

// IsDeparted reports whether the flight has already departed.
func (fl *FlightLifecycle) IsDeparted(flightNumber string) bool {
	return fl.departed[flightNumber]
}

// MarkDeparted records that the flight has departed. Idempotent.
func (fl *FlightLifecycle) MarkDeparted(flightNumber string) {
	fl.departed[flightNumber] = true
}

// MarkBoardingClosed marks every candidate passenger as missed, except
// those already admitted to a hold room — a passenger "in the chosen
// room" at boarding close is exempt even though boarding has closed for
// everyone else still in the pipeline (spec.md §4.3 Phase A.1). Returns
// the IDs newly marked missed, so callers can add them to the interval's
// missed counter without rescanning the arena.
func (fl *FlightLifecycle) MarkBoardingClosed(arena *PassengerArena, candidateIDs []PassengerID) []PassengerID {
	var missed []PassengerID
	for _, id := range candidateIDs {
		p := arena.Get(id)
		if p.HoldRoomAssigned || p.Missed {
			continue
		}
		p.Missed = true
		missed = append(missed, id)
	}
	return missed
}

// ClearFlightFromNonHoldAreas removes every passenger of flightNumber
// from the ticket and checkpoint queues, staging lines, and pending
// (in-transit) maps, and drops their stamp-table and target-lane
// entries. Hold-room membership is untouched — passengers already
// admitted stay exactly where they are until the hold room itself is
// cleared at departure (see OnDeparture).
//
// service_end_abs for in-progress checkpoint/ticket service is left
// alone: it is lane-level state describing when the lane's current
// service completes, not flight-level state, so one flight closing does
// not interrupt another passenger's service already underway in the
// same lane (see DESIGN.md, Open Question 1).
func ClearFlightFromNonHoldAreas(
	flightNumber string,
	arena *PassengerArena,
	ticketLanes []*TicketLaneState,
	checkpointLanes []*CheckpointLaneState,
	pendingToTicket, pendingToCheckpoint, pendingToHold *PendingMap,
	targetLanes *TargetLaneMaps,
	stamps *StampTable,
) []PassengerID {
	var cleared []PassengerID

	for _, lane := range ticketLanes {
		cleared = append(cleared, lane.Queue.RemoveFlight(arena, flightNumber)...)
		cleared = append(cleared, lane.CompletedStaging.RemoveFlight(arena, flightNumber)...)
	}
	for _, lane := range checkpointLanes {
		cleared = append(cleared, lane.Queue.RemoveFlight(arena, flightNumber)...)
		cleared = append(cleared, lane.CompletedStaging.RemoveFlight(arena, flightNumber)...)
	}

	cleared = append(cleared, removeFlightFromPending(pendingToTicket, arena, flightNumber)...)
	cleared = append(cleared, removeFlightFromPending(pendingToCheckpoint, arena, flightNumber)...)
	cleared = append(cleared, removeFlightFromPending(pendingToHold, arena, flightNumber)...)

	for _, id := range cleared {
		targetLanes.ClearPassenger(id)
	}
	stamps.ClearFlight(cleared)

	return cleared
}

// OnDeparture clears the named hold room's admitted FIFO for a departed
// flight and clears stamps for everyone released. Called once a flight
// has both closed boarding and reached its departure second.
func OnDeparture(flightNumber string, arena *PassengerArena, room *HoldRoomState, stamps *StampTable) []PassengerID {
	released := room.Admitted.RemoveFlight(arena, flightNumber)
	stamps.ClearFlight(released)
	return released
}

func removeFlightFromPending(pending *PendingMap, arena *PassengerArena, flightNumber string) []PassengerID {
	if pending == nil {
		return nil
	}
	var removed []PassengerID
	for _, key := range pending.Keys() {
		for _, id := range append([]PassengerID(nil), pending.buckets[key]...) {
			if arena.Get(id).FlightNumber == flightNumber {
				pending.Remove(id)
				removed = append(removed, id)
			}
		}
	}
	return removed
}

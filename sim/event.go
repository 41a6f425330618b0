package sim

// Phase identifies one of the seven sub-phases processed, in order,
// for every absolute second of an interval (see §5 of the spec).
type Phase string

const (
	PhaseBoardingClose     Phase = "BoardingClose"
	PhaseDeparture         Phase = "Departure"
	PhaseArriveTicket      Phase = "ArriveTicket"
	PhaseArriveCheckpoint  Phase = "ArriveCheckpoint"
	PhaseArriveHold        Phase = "ArriveHold"
	PhaseTicketService     Phase = "TicketService"
	PhaseCheckpointService Phase = "CheckpointService"
)

// PhaseOrder is the fixed ordering guarantee for sub-phases processed
// within one absolute second. Expressing the order as data (rather
// than only as the order of statements in the scheduler) makes the
// invariant checkable independently of the implementation.
var PhaseOrder = []Phase{
	PhaseBoardingClose,
	PhaseDeparture,
	PhaseArriveTicket,
	PhaseArriveCheckpoint,
	PhaseArriveHold,
	PhaseTicketService,
	PhaseCheckpointService,
}

// PhasePriority maps each phase to its position in PhaseOrder, lower
// values processed first.
var PhasePriority = func() map[Phase]int {
	m := make(map[Phase]int, len(PhaseOrder))
	for i, p := range PhaseOrder {
		m[p] = i
	}
	return m
}()

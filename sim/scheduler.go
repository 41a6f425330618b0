package sim

import "github.com/airport-sim/airport-sim/sim/trace"

// Simulator is the departure-pipeline kernel: it owns every passenger,
// lane, and pending-event table, and advances the whole system one
// interval at a time via SimulateInterval. Grounded on the teacher's
// cluster step loop (sim/simulator.go in the original tree): a single
// owning struct stepping through fixed sub-phases per tick, with all
// mutable state reachable from one root so it can be deep-copied for
// snapshots.
type Simulator struct {
	cfg                Config
	roster             *FlightRoster
	arena              *PassengerArena
	stamps             *StampTable
	lifecycle          *FlightLifecycle
	arrivals           *ArrivalCurveGenerator
	travel             *TravelModel
	router             CheckpointRouter
	rng                *PartitionedRNG
	holdRoomAssignment *HoldRoomAssignment

	ticketLanes     []*TicketLaneState
	checkpointLanes []*CheckpointLaneState
	holdRooms       []*HoldRoomState

	pendingToTicket     *PendingMap
	pendingToCheckpoint *PendingMap
	pendingToHold       *PendingMap
	targetLanes         *TargetLaneMaps

	flightPassengers map[string][]PassengerID

	history         *History
	currentInterval int64

	trace *trace.Trace
}

// SetTrace attaches a decision trace. Passing nil detaches it; a nil
// trace.Trace is also safe to attach directly since its methods are
// nil-receiver safe.
func (s *Simulator) SetTrace(t *trace.Trace) {
	s.trace = t
}

// NewSimulator validates cfg (clamping out-of-range fields per
// ValidateConfig) and builds a fresh kernel ready to run from interval
// 0. The returned warnings are the caller's to log; the kernel itself
// never logs.
func NewSimulator(cfg Config) (*Simulator, []string, error) {
	cfg, warnings := ValidateConfig(cfg)

	roster, err := NewFlightRoster(cfg.Flights)
	if err != nil {
		return nil, warnings, err
	}

	ticketLanes := make([]*TicketLaneState, len(cfg.TicketCounters))
	for i, tc := range cfg.TicketCounters {
		ticketLanes[i] = NewTicketLaneState(tc)
	}
	checkpointLanes := make([]*CheckpointLaneState, len(cfg.Checkpoints))
	for i, cp := range cfg.Checkpoints {
		checkpointLanes[i] = NewCheckpointLaneState(cp)
	}
	holdRooms := make([]*HoldRoomState, len(cfg.HoldRooms))
	for i, hr := range cfg.HoldRooms {
		holdRooms[i] = NewHoldRoomState(hr)
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))

	s := &Simulator{
		cfg:                 cfg,
		roster:              roster,
		arena:               NewPassengerArena(),
		stamps:              NewStampTable(),
		lifecycle:           NewFlightLifecycle(roster, cfg.BoardingCloseMinutes),
		arrivals:            NewArrivalCurveGenerator(cfg.ArrivalCurve, roster, cfg.ArrivalSpanMinutes),
		travel:              NewTravelModel(cfg.TravelTimeProvider, cfg.TransitDelayMinutes, cfg.HoldDelayMinutes, cfg.HoldRooms),
		router:              MinimalBacklogRouter{},
		rng:                 rng,
		holdRoomAssignment:  NewHoldRoomAssignment(cfg.Flights, cfg.HoldRooms, rng),
		ticketLanes:         ticketLanes,
		checkpointLanes:     checkpointLanes,
		holdRooms:           holdRooms,
		pendingToTicket:     NewPendingMap(),
		pendingToCheckpoint: NewPendingMap(),
		pendingToHold:       NewPendingMap(),
		targetLanes:         NewTargetLaneMaps(),
		flightPassengers:    make(map[string][]PassengerID),
		history:             NewHistory(),
	}
	return s, warnings, nil
}

// SetRouter overrides the checkpoint routing policy. Intended for tests
// exercising tie-break behavior directly.
func (s *Simulator) SetRouter(r CheckpointRouter) {
	s.router = r
}

// CurrentInterval returns the index of the next interval SimulateInterval
// will compute.
func (s *Simulator) CurrentInterval() int64 {
	return s.currentInterval
}

// History returns the kernel's accumulated interval history.
func (s *Simulator) History() *History {
	return s.history
}

// Arena exposes the passenger arena for read-only inspection (renderers,
// tests).
func (s *Simulator) Arena() *PassengerArena {
	return s.arena
}

// ChosenHoldRoom exposes the pre-assigned hold room for flightNumber as
// part of the kernel's non-mutating read API (spec.md §6).
func (s *Simulator) ChosenHoldRoom(flightNumber string) int {
	return s.chosenHoldRoom(flightNumber)
}

// intervalSeconds returns the configured interval length in seconds.
func (s *Simulator) intervalSeconds() int64 {
	return int64(s.cfg.IntervalMinutes) * 60
}

// SimulateInterval advances the kernel by exactly one interval,
// processing every absolute second within it through the fixed seven
// sub-phase order (see event.go PhaseOrder), then purging missed
// passengers from every non-hold queue at the interval boundary.
func (s *Simulator) SimulateInterval() *IntervalRecord {
	step := s.intervalSeconds()
	startAbs := s.currentInterval * step
	endAbs := startAbs + step

	rec := NewIntervalRecord(s.currentInterval)

	for abs := startAbs; abs < endAbs; abs++ {
		if abs%60 == 0 {
			s.spawnMinute(abs, rec)
		}
		s.phaseBoardingClose(abs, rec)
		s.phaseDeparture(abs, rec)
		s.phaseArriveTicket(abs, rec)
		s.phaseArriveCheckpoint(abs, rec)
		s.phaseArriveHold(abs, rec)
		s.phaseTicketService(abs, rec)
		s.phaseCheckpointService(abs, rec)
	}

	s.purgeMissed()
	s.snapshotQueueLengths(rec)

	s.history.Append(rec.Clone())
	s.currentInterval++
	return rec
}

func (s *Simulator) snapshotQueueLengths(rec *IntervalRecord) {
	for _, lane := range s.ticketLanes {
		rec.TicketQueueLen[lane.Config.ID] = lane.Queue.CountNonMissed(s.arena)
	}
	for _, lane := range s.checkpointLanes {
		rec.CheckpointQueueLen[lane.Config.ID] = lane.Queue.CountNonMissed(s.arena)
	}
	for _, room := range s.holdRooms {
		rec.HoldRoomLen[room.Config.ID] = room.Admitted.Len()
	}
}

// purgeMissed drops every missed passenger from ticket and checkpoint
// queues and staging lines at the interval boundary (spec.md §4.3 Phase
// D). Missed passengers stay queued — invisible to service — until this
// purge runs, so a passenger's position among non-missed peers is never
// disturbed mid-interval by a purge.
func (s *Simulator) purgeMissed() {
	for _, lane := range s.ticketLanes {
		lane.Queue.RemoveAllMissed(s.arena)
		lane.CompletedStaging.RemoveAllMissed(s.arena)
	}
	for _, lane := range s.checkpointLanes {
		lane.Queue.RemoveAllMissed(s.arena)
		lane.CompletedStaging.RemoveAllMissed(s.arena)
	}
}

// spawnMinute creates every passenger due to appear in the arrival
// curve at the minute starting at absSec, and immediately routes each
// one toward the ticket counter (in-person) or the checkpoint directly
// (online), per spec.md §4.1/§4.2.
func (s *Simulator) spawnMinute(absSec int64, rec *IntervalRecord) {
	minuteIdx := absSec / 60
	jitterRng := s.rng.ForSubsystem(SubsystemJitter)
	for _, f := range s.roster.Flights() {
		flightNumber := f.NormalizedNumber()
		if s.lifecycle.IsBoardingClosed(flightNumber) {
			continue
		}
		counts := s.arrivals.ForFlight(flightNumber)
		if counts == nil {
			continue
		}
		spawnOffset := int64(f.DepartureMinute) - int64(s.cfg.ArrivalSpanMinutes)
		idx := minuteIdx - spawnOffset
		if idx < 0 || idx >= int64(len(counts)) {
			continue
		}
		n := counts[idx]
		if n <= 0 {
			continue
		}

		// in_person/online is a deterministic bucketed split, not a
		// per-passenger coin flip: the first inPersonCount spawns this
		// minute go in person, the rest online.
		inPersonCount := roundHalfAwayFromZero(float64(n) * s.cfg.PercentInPerson)
		if inPersonCount < 0 {
			inPersonCount = 0
		}
		if inPersonCount > n {
			inPersonCount = n
		}
		if len(s.ticketLanes) == 0 {
			inPersonCount = 0
		}

		for i := 0; i < n; i++ {
			inPerson := i < inPersonCount
			id := s.arena.Spawn(flightNumber, int(minuteIdx), inPerson)
			s.flightPassengers[flightNumber] = append(s.flightPassengers[flightNumber], id)
			rec.addArrived(flightNumber, 1)

			var jitter int64
			if s.cfg.JitterEnabled {
				jitter = int64(jitterRng.Intn(60))
			}

			if inPerson {
				lane := s.pickTicketLane(flightNumber)
				s.targetLanes.SetTicketLane(id, lane)
				travelSec := s.travel.SpawnToTicket(lane)
				s.pendingToTicket.Add(absSec+jitter+travelSec, id)
				continue
			}

			lane := s.pickCheckpointLane(absSec, id)
			s.targetLanes.SetCheckpointLane(id, lane)
			travelSec := s.travel.SpawnToCheckpoint(lane)
			s.pendingToCheckpoint.Add(absSec+jitter+travelSec, id)
		}
	}
}

// pickTicketLane returns the index of the accepting ticket lane with
// the smallest current queue, ties broken by lowest lane index. Falls
// back to lane 0 if no configured lane accepts the flight.
func (s *Simulator) pickTicketLane(flightNumber string) int {
	best := -1
	bestLen := 0
	for i, lane := range s.ticketLanes {
		if !lane.Config.Accepts(flightNumber) {
			continue
		}
		l := lane.Queue.Len()
		if best == -1 || l < bestLen {
			best = i
			bestLen = l
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

// chosenHoldRoom returns the flight's pre-assigned hold room (see
// holdroom.go), degrading to room 0 if the assignment is missing or now
// out of range (spec.md §7 MissingChosenRoom). Panics if no hold room is
// configured at all, a true invariant violation the kernel requires to
// run.
func (s *Simulator) chosenHoldRoom(flightNumber string) int {
	return s.holdRoomAssignment.RoomFor(flightNumber, len(s.holdRooms))
}

func (s *Simulator) routerState(absSec int64) *RouterState {
	return &RouterState{
		AbsSec: absSec,
		Lanes:  s.checkpointLanes,
		Arena:  s.arena,
	}
}

// pickCheckpointLane resolves the router's lane choice and records it
// to the attached trace (a no-op when tracing is disabled). passengerID
// is -1 for provisional picks made purely to estimate travel time,
// where no real passenger is being routed yet.
func (s *Simulator) pickCheckpointLane(absSec int64, passengerID PassengerID) int {
	state := s.routerState(absSec)
	lane := s.router.PickLane(state)
	if s.trace.Enabled() {
		backlogs := s.router.Backlogs(state)
		scores := make([]float64, len(backlogs))
		for i, b := range backlogs {
			scores[i] = b.Backlog
		}
		s.trace.RecordRouterDecision(trace.RouterDecisionRecord{
			AbsSec:      absSec,
			PassengerID: int64(passengerID),
			ChosenLane:  lane,
			Backlogs:    scores,
		})
	}
	return lane
}

// phaseBoardingClose implements PhaseBoardingClose: at the precise
// absolute second a flight's boarding closes, every one of its
// passengers not already admitted to a hold room is marked missed.
func (s *Simulator) phaseBoardingClose(absSec int64, rec *IntervalRecord) {
	for _, f := range s.roster.Flights() {
		flightNumber := f.NormalizedNumber()
		closeAbs, ok := s.lifecycle.BoardingCloseAbs(flightNumber)
		if !ok || closeAbs != absSec || s.lifecycle.IsBoardingClosed(flightNumber) {
			continue
		}
		s.lifecycle.SetBoardingClosed(flightNumber)
		missed := s.lifecycle.MarkBoardingClosed(s.arena, s.flightPassengers[flightNumber])
		rec.addMissed(flightNumber, len(missed))
	}
}

// phaseDeparture implements PhaseDeparture: at a flight's departure
// second, its hold-room passengers are released and every remaining
// trace of it is swept from the non-hold pipeline.
func (s *Simulator) phaseDeparture(absSec int64, rec *IntervalRecord) {
	for _, f := range s.roster.Flights() {
		flightNumber := f.NormalizedNumber()
		if int64(f.DepartureMinute)*60 != absSec || s.lifecycle.IsDeparted(flightNumber) {
			continue
		}
		s.lifecycle.MarkDeparted(flightNumber)

		for _, room := range s.holdRooms {
			OnDeparture(flightNumber, s.arena, room, s.stamps)
		}
		ClearFlightFromNonHoldAreas(
			flightNumber, s.arena,
			s.ticketLanes, s.checkpointLanes,
			s.pendingToTicket, s.pendingToCheckpoint, s.pendingToHold,
			s.targetLanes, s.stamps,
		)
		delete(s.flightPassengers, flightNumber)
		_ = rec
	}
}

// phaseArriveTicket implements PhaseArriveTicket: passengers whose
// spawn-to-ticket walk completes this second join their assigned ticket
// lane's queue.
func (s *Simulator) phaseArriveTicket(absSec int64, rec *IntervalRecord) {
	for _, id := range s.pendingToTicket.Drain(absSec) {
		p := s.arena.Get(id)
		lane, ok := s.targetLanes.TicketLane(id)
		if !ok {
			lane = s.pickTicketLane(p.FlightNumber)
			s.targetLanes.SetTicketLane(id, lane)
		}
		s.stamps.SetTicketQueueEnter(id, absSec)
		s.ticketLanes[lane].Queue.Enqueue(id)
		rec.addEnqueuedAtTicket(p.FlightNumber, 1)
	}
}

// phaseArriveCheckpoint implements PhaseArriveCheckpoint: passengers
// whose walk to the checkpoint completes this second are routed to a
// lane using live backlog (re-evaluated now, not at spawn or at ticket
// completion) and join that lane's queue.
func (s *Simulator) phaseArriveCheckpoint(absSec int64, rec *IntervalRecord) {
	for _, id := range s.pendingToCheckpoint.Drain(absSec) {
		p := s.arena.Get(id)
		if ticketLane, ok := s.targetLanes.TicketLane(id); ok {
			s.ticketLanes[ticketLane].CompletedStaging.Remove(id)
		}

		lane := s.pickCheckpointLane(absSec, id)
		s.targetLanes.SetCheckpointLane(id, lane)
		s.stamps.SetCheckpointQueueEnter(id, absSec)
		s.stamps.SetCheckpointEntryMinute(id, absSec/60)
		s.checkpointLanes[lane].Queue.Enqueue(id)
		rec.addArrivedAtCheckpoint(p.FlightNumber, 1)
	}
}

// phaseArriveHold implements PhaseArriveHold: passengers whose walk
// from the checkpoint completes this second are admitted into their
// flight's hold room.
func (s *Simulator) phaseArriveHold(absSec int64, rec *IntervalRecord) {
	for _, id := range s.pendingToHold.Drain(absSec) {
		p := s.arena.Get(id)
		if checkpointLane, ok := s.targetLanes.CheckpointLane(id); ok {
			s.checkpointLanes[checkpointLane].CompletedStaging.Remove(id)
		}

		room := s.chosenHoldRoom(p.FlightNumber)
		p.HoldRoomAssigned = true
		p.HoldRoomIdx = room
		p.HoldRoomSequence = s.holdRooms[room].Admitted.Len() + 1
		s.stamps.SetHoldEnter(id, absSec)
		s.holdRooms[room].Admitted.Enqueue(id)
		_ = rec
	}
}

// phaseTicketService implements PhaseTicketService: every ticket lane
// accrues fractional service capacity for the second and completes as
// many whole services as its accrued debt allows.
func (s *Simulator) phaseTicketService(absSec int64, rec *IntervalRecord) {
	intervalStart := absSec%s.intervalSeconds() == 0
	for laneIdx, lane := range s.ticketLanes {
		if intervalStart {
			lane.CurrentlyServing = nil
		}
		if lane.Queue.Len() == 0 {
			lane.Debt = 0
			continue
		}
		lane.Debt += lane.RatePerSecond()
		for lane.Debt >= 1 {
			id, ok := lane.Queue.PopFirstNonMissed(s.arena)
			if !ok {
				lane.Debt = 0
				break
			}
			lane.Debt -= 1
			p := s.arena.Get(id)
			s.stamps.SetTicketDone(id, absSec)
			rec.addTicketed(p.FlightNumber, 1)
			servedID := id
			lane.CurrentlyServing = &servedID

			provisional := s.pickCheckpointLane(absSec, -1)
			travelSec := s.travel.TicketToCheckpoint(laneIdx, provisional)
			s.pendingToCheckpoint.Add(absSec+travelSec, id)
			lane.CompletedStaging.Enqueue(id)
			if lane.Queue.Len() == 0 {
				lane.Debt = 0
				break
			}
		}
	}
}

// phaseCheckpointService implements PhaseCheckpointService: each
// checkpoint lane completes its in-progress service (if due) and starts
// the next non-missed passenger waiting, in the same second.
func (s *Simulator) phaseCheckpointService(absSec int64, rec *IntervalRecord) {
	for laneIdx, lane := range s.checkpointLanes {
		if lane.Serving != nil && absSec >= lane.ServiceEndAbs {
			id := *lane.Serving
			p := s.arena.Get(id)
			s.stamps.SetCheckpointDone(id, absSec)
			rec.addPassedCheckpoint(p.FlightNumber, 1)

			room := s.chosenHoldRoom(p.FlightNumber)
			travelSec := s.travel.CheckpointToHold(laneIdx, room)
			s.pendingToHold.Add(absSec+travelSec, id)
			lane.CompletedStaging.Enqueue(id)
			lane.Serving = nil
			lane.ServiceEndAbs = 0
		}

		if lane.Serving == nil {
			id, ok := lane.Queue.PopFirstNonMissed(s.arena)
			if ok {
				servingID := id
				lane.Serving = &servingID
				lane.ServiceEndAbs = absSec + lane.Config.ServiceSeconds()
				s.stamps.SetCheckpointStart(id, absSec)
			}
		}
	}
}

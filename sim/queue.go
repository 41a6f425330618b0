package sim

// PassengerFIFO is an ordered queue of passenger references. It backs
// every waiting queue and every completed/staging line in the kernel.
type PassengerFIFO struct {
	items []PassengerID
}

// NewPassengerFIFO creates an empty FIFO.
func NewPassengerFIFO() *PassengerFIFO {
	return &PassengerFIFO{}
}

// Enqueue appends id to the back of the queue.
func (q *PassengerFIFO) Enqueue(id PassengerID) {
	q.items = append(q.items, id)
}

// Len returns the number of entries currently queued.
func (q *PassengerFIFO) Len() int {
	return len(q.items)
}

// PeekFront returns the front entry without removing it.
func (q *PassengerFIFO) PeekFront() (PassengerID, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	return q.items[0], true
}

// PopFront removes and returns the front entry.
func (q *PassengerFIFO) PopFront() (PassengerID, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	id := q.items[0]
	q.items = q.items[1:]
	return id, true
}

// PopFirstNonMissed scans from the front for the first passenger that
// is not missed, removes it from the queue (splicing around any
// missed passengers ahead of it, which stay put until the end-of-
// interval purge), and returns it.
func (q *PassengerFIFO) PopFirstNonMissed(arena *PassengerArena) (PassengerID, bool) {
	for i, id := range q.items {
		if !arena.Get(id).Missed {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return id, true
		}
	}
	return 0, false
}

// CountNonMissed returns the number of non-missed passengers queued.
func (q *PassengerFIFO) CountNonMissed(arena *PassengerArena) int {
	n := 0
	for _, id := range q.items {
		if !arena.Get(id).Missed {
			n++
		}
	}
	return n
}

// Remove deletes the first occurrence of id from the queue (identity
// match), preserving the order of the rest. Reports whether id was
// found.
func (q *PassengerFIFO) Remove(id PassengerID) bool {
	for i, v := range q.items {
		if v == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAllMissed filters out every missed passenger, in place.
func (q *PassengerFIFO) RemoveAllMissed(arena *PassengerArena) {
	kept := q.items[:0]
	for _, id := range q.items {
		if !arena.Get(id).Missed {
			kept = append(kept, id)
		}
	}
	q.items = kept
}

// RemoveFlight filters out every passenger belonging to flightNumber and
// returns the IDs that were removed, in their original order.
func (q *PassengerFIFO) RemoveFlight(arena *PassengerArena, flightNumber string) []PassengerID {
	var removed []PassengerID
	kept := q.items[:0]
	for _, id := range q.items {
		if arena.Get(id).FlightNumber == flightNumber {
			removed = append(removed, id)
		} else {
			kept = append(kept, id)
		}
	}
	q.items = kept
	return removed
}

// IDs returns a copy of the queue's contents, in order. Used by the
// snapshot store to take a deep copy of membership.
func (q *PassengerFIFO) IDs() []PassengerID {
	out := make([]PassengerID, len(q.items))
	copy(out, q.items)
	return out
}

// Clone returns a deep copy of the FIFO.
func (q *PassengerFIFO) Clone() *PassengerFIFO {
	return &PassengerFIFO{items: q.IDs()}
}

// Contains reports whether id is currently queued.
func (q *PassengerFIFO) Contains(id PassengerID) bool {
	for _, v := range q.items {
		if v == id {
			return true
		}
	}
	return false
}

// TicketLaneState holds the live service state for one ticket counter.
type TicketLaneState struct {
	Config           TicketCounterConfig
	Queue            *PassengerFIFO // waiting
	CompletedStaging *PassengerFIFO // finished ticketing, in transit to checkpoint
	Debt             float64        // fractional service debt, carried across intervals
	CurrentlyServing *PassengerID   // transient: most recent completion this interval
}

// NewTicketLaneState creates an idle ticket lane.
func NewTicketLaneState(cfg TicketCounterConfig) *TicketLaneState {
	return &TicketLaneState{
		Config:           cfg,
		Queue:            NewPassengerFIFO(),
		CompletedStaging: NewPassengerFIFO(),
	}
}

// RatePerSecond returns the accrual rate used by the ticket-service
// sub-phase: max(0, rate_per_minute) / 60.
func (t *TicketLaneState) RatePerSecond() float64 {
	if t.Config.RatePerMinute <= 0 {
		return 0
	}
	return t.Config.RatePerMinute / 60.0
}

// CheckpointLaneState holds the live service state for one checkpoint
// lane. Serving and ServiceEndAbs persist across intervals so a
// service in progress completes at its scheduled absolute second.
type CheckpointLaneState struct {
	Config           CheckpointConfig
	Queue            *PassengerFIFO
	CompletedStaging *PassengerFIFO
	Serving          *PassengerID
	ServiceEndAbs    int64 // 0 => idle
}

// NewCheckpointLaneState creates an idle checkpoint lane.
func NewCheckpointLaneState(cfg CheckpointConfig) *CheckpointLaneState {
	return &CheckpointLaneState{
		Config:           cfg,
		Queue:            NewPassengerFIFO(),
		CompletedStaging: NewPassengerFIFO(),
	}
}

// HoldRoomState holds the live admitted-passenger FIFO for one hold
// room.
type HoldRoomState struct {
	Config   HoldRoomConfig
	Admitted *PassengerFIFO
}

// NewHoldRoomState creates an empty hold room.
func NewHoldRoomState(cfg HoldRoomConfig) *HoldRoomState {
	return &HoldRoomState{
		Config:   cfg,
		Admitted: NewPassengerFIFO(),
	}
}

// PendingMap is an absolute-second-keyed set of passenger buckets,
// backing pending_to_ticket, pending_to_checkpoint, and pending_to_hold.
// Insertion order within a bucket is preserved.
type PendingMap struct {
	buckets  map[int64][]PassengerID
	location map[PassengerID]int64 // passenger -> bucket key, for O(1) removal lookup
}

// NewPendingMap creates an empty pending map.
func NewPendingMap() *PendingMap {
	return &PendingMap{
		buckets:  make(map[int64][]PassengerID),
		location: make(map[PassengerID]int64),
	}
}

// Add schedules id to arrive at absSec.
func (p *PendingMap) Add(absSec int64, id PassengerID) {
	p.buckets[absSec] = append(p.buckets[absSec], id)
	p.location[id] = absSec
}

// Drain removes and returns every passenger due at absSec, in
// insertion order.
func (p *PendingMap) Drain(absSec int64) []PassengerID {
	ids, ok := p.buckets[absSec]
	if !ok {
		return nil
	}
	delete(p.buckets, absSec)
	for _, id := range ids {
		delete(p.location, id)
	}
	return ids
}

// Remove deletes id from whichever bucket currently holds it. Reports
// whether id was found.
func (p *PendingMap) Remove(id PassengerID) bool {
	absSec, ok := p.location[id]
	if !ok {
		return false
	}
	bucket := p.buckets[absSec]
	for i, v := range bucket {
		if v == id {
			bucket = append(bucket[:i:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(p.buckets, absSec)
	} else {
		p.buckets[absSec] = bucket
	}
	delete(p.location, id)
	return true
}

// Clone returns a deep copy of the pending map.
func (p *PendingMap) Clone() *PendingMap {
	clone := NewPendingMap()
	for absSec, ids := range p.buckets {
		cp := make([]PassengerID, len(ids))
		copy(cp, ids)
		clone.buckets[absSec] = cp
		for _, id := range cp {
			clone.location[id] = absSec
		}
	}
	return clone
}

// Keys returns the set of absolute seconds with a non-empty bucket.
// Used by removeFlightFromPending (lifecycle.go) to sweep a departed
// flight's entries; the scheduler drains by explicit second, never by
// iterating keys.
func (p *PendingMap) Keys() []int64 {
	out := make([]int64, 0, len(p.buckets))
	for k := range p.buckets {
		out = append(out, k)
	}
	return out
}

// TargetLaneMaps holds per-passenger hints for intended ticket lane and
// intended checkpoint lane. The checkpoint hint is re-evaluated at
// arrival time (see spec.md §4.3 Phase C.4); the ticket hint is
// authoritative because the ticket lane is chosen once, at spawn.
type TargetLaneMaps struct {
	ticketLane     map[PassengerID]int
	checkpointLane map[PassengerID]int
}

// NewTargetLaneMaps creates empty target-lane maps.
func NewTargetLaneMaps() *TargetLaneMaps {
	return &TargetLaneMaps{
		ticketLane:     make(map[PassengerID]int),
		checkpointLane: make(map[PassengerID]int),
	}
}

func (m *TargetLaneMaps) SetTicketLane(id PassengerID, lane int) {
	m.ticketLane[id] = lane
}

func (m *TargetLaneMaps) TicketLane(id PassengerID) (int, bool) {
	v, ok := m.ticketLane[id]
	return v, ok
}

func (m *TargetLaneMaps) SetCheckpointLane(id PassengerID, lane int) {
	m.checkpointLane[id] = lane
}

func (m *TargetLaneMaps) CheckpointLane(id PassengerID) (int, bool) {
	v, ok := m.checkpointLane[id]
	return v, ok
}

// ClearPassenger removes both hints for id.
func (m *TargetLaneMaps) ClearPassenger(id PassengerID) {
	delete(m.ticketLane, id)
	delete(m.checkpointLane, id)
}

// Clone returns a deep copy of the target-lane maps.
func (m *TargetLaneMaps) Clone() *TargetLaneMaps {
	clone := NewTargetLaneMaps()
	for k, v := range m.ticketLane {
		clone.ticketLane[k] = v
	}
	for k, v := range m.checkpointLane {
		clone.checkpointLane[k] = v
	}
	return clone
}

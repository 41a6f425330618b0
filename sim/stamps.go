package sim

// StampTable holds the absolute-second lifecycle stamps for every
// passenger, keyed by PassengerID. This replaces reflection-based
// "set this field if available" probing with an explicit table: a
// stamp is always set or always absent, never silently skipped.
//
// Stamps are monotonic whenever defined:
//
//	TicketQueueEnter <= TicketDone <= CheckpointQueueEnter <=
//	CheckpointStart <= CheckpointDone <= HoldEnter
type StampTable struct {
	ticketQueueEnter     map[PassengerID]int64
	ticketDone           map[PassengerID]int64
	checkpointQueueEnter map[PassengerID]int64
	checkpointEntryMin   map[PassengerID]int64
	checkpointStart      map[PassengerID]int64
	checkpointDone       map[PassengerID]int64
	holdEnter            map[PassengerID]int64
}

// NewStampTable creates an empty stamp table.
func NewStampTable() *StampTable {
	return &StampTable{
		ticketQueueEnter:     make(map[PassengerID]int64),
		ticketDone:           make(map[PassengerID]int64),
		checkpointQueueEnter: make(map[PassengerID]int64),
		checkpointEntryMin:   make(map[PassengerID]int64),
		checkpointStart:      make(map[PassengerID]int64),
		checkpointDone:       make(map[PassengerID]int64),
		holdEnter:            make(map[PassengerID]int64),
	}
}

func (s *StampTable) SetTicketQueueEnter(id PassengerID, absSec int64) {
	s.ticketQueueEnter[id] = absSec
}

func (s *StampTable) TicketQueueEnter(id PassengerID) (int64, bool) {
	v, ok := s.ticketQueueEnter[id]
	return v, ok
}

func (s *StampTable) SetTicketDone(id PassengerID, absSec int64) {
	s.ticketDone[id] = absSec
}

func (s *StampTable) TicketDone(id PassengerID) (int64, bool) {
	v, ok := s.ticketDone[id]
	return v, ok
}

func (s *StampTable) SetCheckpointQueueEnter(id PassengerID, absSec int64) {
	s.checkpointQueueEnter[id] = absSec
}

func (s *StampTable) CheckpointQueueEnter(id PassengerID) (int64, bool) {
	v, ok := s.checkpointQueueEnter[id]
	return v, ok
}

// SetCheckpointEntryMinute records the minute (abs_sec/60) a passenger
// arrived at the checkpoint, used by renderers that work in minutes.
func (s *StampTable) SetCheckpointEntryMinute(id PassengerID, minute int64) {
	s.checkpointEntryMin[id] = minute
}

func (s *StampTable) CheckpointEntryMinute(id PassengerID) (int64, bool) {
	v, ok := s.checkpointEntryMin[id]
	return v, ok
}

func (s *StampTable) SetCheckpointStart(id PassengerID, absSec int64) {
	s.checkpointStart[id] = absSec
}

func (s *StampTable) CheckpointStart(id PassengerID) (int64, bool) {
	v, ok := s.checkpointStart[id]
	return v, ok
}

func (s *StampTable) SetCheckpointDone(id PassengerID, absSec int64) {
	s.checkpointDone[id] = absSec
}

func (s *StampTable) CheckpointDone(id PassengerID) (int64, bool) {
	v, ok := s.checkpointDone[id]
	return v, ok
}

func (s *StampTable) SetHoldEnter(id PassengerID, absSec int64) {
	s.holdEnter[id] = absSec
}

func (s *StampTable) HoldEnter(id PassengerID) (int64, bool) {
	v, ok := s.holdEnter[id]
	return v, ok
}

// ClearFlight removes every stamp belonging to the given set of
// passenger IDs. Used at flight close (non-hold areas) and at
// departure (hold-room clearing) — see lifecycle.go.
func (s *StampTable) ClearFlight(ids []PassengerID) {
	for _, id := range ids {
		delete(s.ticketQueueEnter, id)
		delete(s.ticketDone, id)
		delete(s.checkpointQueueEnter, id)
		delete(s.checkpointEntryMin, id)
		delete(s.checkpointStart, id)
		delete(s.checkpointDone, id)
		delete(s.holdEnter, id)
	}
}

// Clone returns a deep copy of the stamp table, used by the snapshot
// store to freeze a point-in-time view.
func (s *StampTable) Clone() *StampTable {
	clone := NewStampTable()
	for k, v := range s.ticketQueueEnter {
		clone.ticketQueueEnter[k] = v
	}
	for k, v := range s.ticketDone {
		clone.ticketDone[k] = v
	}
	for k, v := range s.checkpointQueueEnter {
		clone.checkpointQueueEnter[k] = v
	}
	for k, v := range s.checkpointEntryMin {
		clone.checkpointEntryMin[k] = v
	}
	for k, v := range s.checkpointStart {
		clone.checkpointStart[k] = v
	}
	for k, v := range s.checkpointDone {
		clone.checkpointDone[k] = v
	}
	for k, v := range s.holdEnter {
		clone.holdEnter[k] = v
	}
	return clone
}

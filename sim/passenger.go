package sim

// PassengerID is a stable identifier into the kernel's passenger arena.
// Identity is stable for the lifetime of all retained snapshots: a
// passenger is never reused or reallocated once created, even after it
// is purged from every live queue.
type PassengerID int

// Passenger is owned by the kernel from creation to terminal state (in
// a hold room, missed, or purged at flight close). It holds no back
// pointer to its Flight value; callers resolve the flight via
// FlightRoster.ByNumber(p.FlightNumber) when needed, keeping passenger
// records small and avoiding any aliasing concerns across snapshots.
type Passenger struct {
	ID              PassengerID
	FlightNumber    string // normalized, see Flight.NormalizedNumber
	SpawnMinuteIdx  int    // absolute second / 60, on the same minute clock as Flight.DepartureMinute (not offset to the earliest departure minus the arrival span)
	InPerson        bool
	Missed          bool
	HoldRoomIdx     int  // valid only if HoldRoomAssigned
	HoldRoomAssigned bool
	HoldRoomSequence int // 1-based index within its hold room's FIFO
}

// PassengerArena owns every passenger ever created during a kernel run.
// Passengers are append-only: a PassengerID is valid for the arena's
// entire lifetime, which lets snapshots reference passengers by ID
// without copying passenger bodies (see SPEC_FULL.md "arena allocation").
type PassengerArena struct {
	passengers []*Passenger
}

// NewPassengerArena creates an empty arena.
func NewPassengerArena() *PassengerArena {
	return &PassengerArena{}
}

// Spawn materializes a new passenger at the given spawn minute and
// returns its stable ID. This is the kernel's passenger factory: the
// only place passengers are created.
func (a *PassengerArena) Spawn(flightNumber string, spawnMinuteIdx int, inPerson bool) PassengerID {
	id := PassengerID(len(a.passengers))
	a.passengers = append(a.passengers, &Passenger{
		ID:             id,
		FlightNumber:   flightNumber,
		SpawnMinuteIdx: spawnMinuteIdx,
		InPerson:       inPerson,
	})
	return id
}

// Get returns the passenger for id. Panics if id is out of range, which
// can only happen if a caller holds a corrupted ID — every ID handed
// out by Spawn remains valid for the arena's lifetime.
func (a *PassengerArena) Get(id PassengerID) *Passenger {
	return a.passengers[id]
}

// Len returns the number of passengers ever spawned (including missed
// and purged ones).
func (a *PassengerArena) Len() int {
	return len(a.passengers)
}

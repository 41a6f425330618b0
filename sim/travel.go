package sim

// TravelTimeProvider overrides any of the four travel legs with a
// richer (e.g. geometry-aware) model. Every method returns seconds;
// a return of <= 0 signals "unknown" and falls back to the legacy
// constant (see UnknownTravelTime in SPEC_FULL.md §7). Implementations
// live outside this module (floor-plan path-finding is out of scope —
// see spec.md §1 Non-goals); the kernel only consumes the contract.
type TravelTimeProvider interface {
	SpawnToTicket(ticketLane int) int64
	SpawnToCheckpoint(checkpointLane int) int64
	TicketToCheckpoint(ticketLane, checkpointLane int) int64
	CheckpointToHold(checkpointLane, holdRoom int) int64
}

// WalkSpeedSetter is an optional capability a TravelTimeProvider may
// implement to let the kernel recalibrate walking speed.
type WalkSpeedSetter interface {
	SetWalkSpeedMPS(mps float64)
}

// TravelModel resolves the four travel legs used by the scheduler,
// preferring an attached TravelTimeProvider and falling back to the
// legacy per-leg constants when the provider is absent or returns an
// "unknown" (<= 0) result.
type TravelModel struct {
	provider            TravelTimeProvider
	transitDelaySeconds int64
	holdDelaySeconds    int64
	holdRooms           []HoldRoomConfig
}

// NewTravelModel builds a TravelModel. provider may be nil.
func NewTravelModel(provider TravelTimeProvider, transitDelayMinutes, holdDelayMinutes int, holdRooms []HoldRoomConfig) *TravelModel {
	transit := int64(transitDelayMinutes) * 60
	if transit < 1 {
		transit = 1
	}
	hold := int64(holdDelayMinutes) * 60
	if hold < 1 {
		hold = 1
	}
	return &TravelModel{
		provider:            provider,
		transitDelaySeconds: transit,
		holdDelaySeconds:    hold,
		holdRooms:           holdRooms,
	}
}

// SpawnToTicket returns the seconds a passenger takes to walk from
// spawn to the given ticket lane.
func (m *TravelModel) SpawnToTicket(ticketLane int) int64 {
	if m.provider != nil {
		if v := m.provider.SpawnToTicket(ticketLane); v > 0 {
			return v
		}
	}
	return m.transitDelaySeconds
}

// SpawnToCheckpoint returns the seconds a passenger takes to walk from
// spawn directly to the given checkpoint lane (online passengers).
func (m *TravelModel) SpawnToCheckpoint(checkpointLane int) int64 {
	if m.provider != nil {
		if v := m.provider.SpawnToCheckpoint(checkpointLane); v > 0 {
			return v
		}
	}
	return m.transitDelaySeconds
}

// TicketToCheckpoint returns the seconds from finishing ticketing at
// ticketLane to arriving at checkpointLane.
func (m *TravelModel) TicketToCheckpoint(ticketLane, checkpointLane int) int64 {
	if m.provider != nil {
		if v := m.provider.TicketToCheckpoint(ticketLane, checkpointLane); v > 0 {
			return v
		}
	}
	return m.transitDelaySeconds
}

// CheckpointToHold returns the seconds from finishing checkpoint
// service at checkpointLane to arriving at holdRoom. The destination
// room's configured walk time overrides the fallback when positive.
func (m *TravelModel) CheckpointToHold(checkpointLane, holdRoom int) int64 {
	if m.provider != nil {
		if v := m.provider.CheckpointToHold(checkpointLane, holdRoom); v > 0 {
			return v
		}
	}
	if holdRoom >= 0 && holdRoom < len(m.holdRooms) && m.holdRooms[holdRoom].WalkSecondsFromCheckpoint > 0 {
		return int64(m.holdRooms[holdRoom].WalkSecondsFromCheckpoint)
	}
	return m.holdDelaySeconds
}

// SetWalkSpeedMPS forwards to the attached provider if it implements
// WalkSpeedSetter; a no-op otherwise.
func (m *TravelModel) SetWalkSpeedMPS(mps float64) {
	if setter, ok := m.provider.(WalkSpeedSetter); ok {
		setter.SetWalkSpeedMPS(mps)
	}
}

package sim

import "fmt"

// TicketCounterConfig describes one ticket counter lane.
type TicketCounterConfig struct {
	ID             string
	RatePerMinute  float64         // passengers served per minute, >= 0
	AllowedFlights map[string]bool // empty => accepts all flights
}

// Accepts reports whether this counter accepts passengers of the given
// (normalized) flight number.
func (c TicketCounterConfig) Accepts(flightNumber string) bool {
	if len(c.AllowedFlights) == 0 {
		return true
	}
	return c.AllowedFlights[flightNumber]
}

// CheckpointConfig describes one security checkpoint lane.
type CheckpointConfig struct {
	ID          string
	RatePerHour float64 // passengers served per hour, >= 0
}

// ServiceSeconds returns the deterministic per-passenger service time
// for this lane: max(1, round(3600 / rate_per_hour)). A zero-rate lane
// returns a very large value so it is never chosen unless all lanes
// are closed (see CheckpointRouter).
func (c CheckpointConfig) ServiceSeconds() int64 {
	if c.RatePerHour <= 0 {
		return 1 << 32
	}
	secs := roundHalfAwayFromZero(3600.0 / c.RatePerHour)
	if secs < 1 {
		return 1
	}
	return int64(secs)
}

// HoldRoomConfig describes one hold room.
type HoldRoomConfig struct {
	ID                        string
	WalkSecondsFromCheckpoint int
	AllowedFlights            map[string]bool // empty => accepts all flights
}

// Accepts reports whether this hold room accepts passengers of the
// given (normalized) flight number.
func (c HoldRoomConfig) Accepts(flightNumber string) bool {
	if len(c.AllowedFlights) == 0 {
		return true
	}
	return c.AllowedFlights[flightNumber]
}

// ArrivalCurveConfig selects and parameterizes the arrival-curve
// generator (see arrivals.go). LegacyMode chooses between the centered
// Gaussian (legacy) and the split Gaussian (edited) variants.
type ArrivalCurveConfig struct {
	LegacyMode bool

	// Edited-mode fields (minutes before departure).
	WindowStartMinBeforeDep   int
	BoardingCloseMinBeforeDep int
	PeakMinBeforeDep          int
	LeftSigma                 float64
	RightSigma                float64
	LateClampEnabled          bool
	LateClampMinBeforeDep     int
}

// Config is the full set of construction inputs for the kernel. See
// SPEC_FULL.md §6 "External Interfaces".
type Config struct {
	PercentInPerson      float64
	TicketCounters       []TicketCounterConfig
	Checkpoints          []CheckpointConfig
	HoldRooms            []HoldRoomConfig
	ArrivalSpanMinutes   int
	IntervalMinutes      int
	TransitDelayMinutes  int
	HoldDelayMinutes     int
	BoardingCloseMinutes int // default 20 if zero
	Flights              []Flight
	ArrivalCurve         ArrivalCurveConfig
	TravelTimeProvider   TravelTimeProvider // optional, may be nil
	Seed                 int64
	JitterEnabled        bool
}

// ValidateConfig clamps out-of-range fields to valid values (the
// ConfigurationInvalid policy of SPEC_FULL.md §7: clamp and continue)
// and returns the clamped config along with a list of human-readable
// warnings describing every clamp that was applied. The kernel never
// rejects a Config outright.
func ValidateConfig(cfg Config) (Config, []string) {
	var warnings []string

	if cfg.PercentInPerson < 0 {
		warnings = append(warnings, "percent_in_person < 0 clamped to 0")
		cfg.PercentInPerson = 0
	} else if cfg.PercentInPerson > 1 {
		warnings = append(warnings, "percent_in_person > 1 clamped to 1")
		cfg.PercentInPerson = 1
	}

	if cfg.ArrivalSpanMinutes < 1 {
		warnings = append(warnings, fmt.Sprintf("arrival_span_minutes %d < 1 clamped to 1", cfg.ArrivalSpanMinutes))
		cfg.ArrivalSpanMinutes = 1
	}

	if cfg.IntervalMinutes < 1 {
		warnings = append(warnings, fmt.Sprintf("interval_minutes %d < 1 clamped to 1", cfg.IntervalMinutes))
		cfg.IntervalMinutes = 1
	}

	if cfg.TransitDelayMinutes < 0 {
		warnings = append(warnings, "transit_delay_minutes < 0 clamped to 0")
		cfg.TransitDelayMinutes = 0
	}
	if cfg.HoldDelayMinutes < 0 {
		warnings = append(warnings, "hold_delay_minutes < 0 clamped to 0")
		cfg.HoldDelayMinutes = 0
	}
	if cfg.BoardingCloseMinutes <= 0 {
		cfg.BoardingCloseMinutes = 20
	}

	for i, tc := range cfg.TicketCounters {
		if tc.RatePerMinute < 0 {
			warnings = append(warnings, fmt.Sprintf("ticket counter %q rate_per_minute < 0 clamped to 0", tc.ID))
			cfg.TicketCounters[i].RatePerMinute = 0
		}
	}
	for i, cp := range cfg.Checkpoints {
		if cp.RatePerHour < 0 {
			warnings = append(warnings, fmt.Sprintf("checkpoint %q rate_per_hour < 0 clamped to 0", cp.ID))
			cfg.Checkpoints[i].RatePerHour = 0
		}
	}
	for i, hr := range cfg.HoldRooms {
		if hr.WalkSecondsFromCheckpoint < 0 {
			warnings = append(warnings, fmt.Sprintf("hold room %q walk_seconds_from_checkpoint < 0 clamped to 0", hr.ID))
			cfg.HoldRooms[i].WalkSecondsFromCheckpoint = 0
		}
	}

	return cfg, warnings
}

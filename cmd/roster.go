package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/airport-sim/airport-sim/sim"
)

// ArrivalCurveYAML mirrors sim.ArrivalCurveConfig for roster files.
type ArrivalCurveYAML struct {
	LegacyMode                bool    `yaml:"legacy_mode"`
	WindowStartMinBeforeDep   int     `yaml:"window_start_min_before_dep"`
	BoardingCloseMinBeforeDep int     `yaml:"boarding_close_min_before_dep"`
	PeakMinBeforeDep          int     `yaml:"peak_min_before_dep"`
	LeftSigma                 float64 `yaml:"left_sigma"`
	RightSigma                float64 `yaml:"right_sigma"`
	LateClampEnabled          bool    `yaml:"late_clamp_enabled"`
	LateClampMinBeforeDep     int     `yaml:"late_clamp_min_before_dep"`
}

// TicketCounterYAML mirrors sim.TicketCounterConfig.
type TicketCounterYAML struct {
	ID             string   `yaml:"id"`
	RatePerMinute  float64  `yaml:"rate_per_minute"`
	AllowedFlights []string `yaml:"allowed_flights"`
}

// CheckpointYAML mirrors sim.CheckpointConfig.
type CheckpointYAML struct {
	ID          string  `yaml:"id"`
	RatePerHour float64 `yaml:"rate_per_hour"`
}

// HoldRoomYAML mirrors sim.HoldRoomConfig.
type HoldRoomYAML struct {
	ID                        string   `yaml:"id"`
	WalkSecondsFromCheckpoint int      `yaml:"walk_seconds_from_checkpoint"`
	AllowedFlights            []string `yaml:"allowed_flights"`
}

// FlightYAML mirrors sim.Flight.
type FlightYAML struct {
	FlightNumber    string  `yaml:"flight_number"`
	DepartureMinute int     `yaml:"departure_minute"`
	Seats           int     `yaml:"seats"`
	FillPercent     float64 `yaml:"fill_percent"`
	ShapeTag        string  `yaml:"shape_tag"`
}

// RosterFile is the on-disk schema for a simulation run: the flight
// roster plus every lane/room/timing parameter sim.Config needs.
type RosterFile struct {
	Version              string              `yaml:"version"`
	PercentInPerson      float64             `yaml:"percent_in_person"`
	ArrivalSpanMinutes   int                 `yaml:"arrival_span_minutes"`
	IntervalMinutes      int                 `yaml:"interval_minutes"`
	TransitDelayMinutes  int                 `yaml:"transit_delay_minutes"`
	HoldDelayMinutes     int                 `yaml:"hold_delay_minutes"`
	BoardingCloseMinutes int                 `yaml:"boarding_close_minutes"`
	Seed                 int64               `yaml:"seed"`
	JitterEnabled        bool                `yaml:"jitter_enabled"`
	ArrivalCurve         ArrivalCurveYAML    `yaml:"arrival_curve"`
	TicketCounters       []TicketCounterYAML `yaml:"ticket_counters"`
	Checkpoints          []CheckpointYAML    `yaml:"checkpoints"`
	HoldRooms            []HoldRoomYAML      `yaml:"hold_rooms"`
	Flights              []FlightYAML        `yaml:"flights"`
}

// LoadRosterFile reads and strictly parses a roster YAML file, rejecting
// unknown fields so a typo in a key surfaces immediately instead of
// silently falling back to a zero value.
func LoadRosterFile(path string) (RosterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RosterFile{}, fmt.Errorf("reading roster file: %w", err)
	}

	var rf RosterFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rf); err != nil {
		return RosterFile{}, fmt.Errorf("parsing roster file %s: %w", path, err)
	}
	return rf, nil
}

func allowedSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[sim.Flight{FlightNumber: n}.NormalizedNumber()] = true
	}
	return set
}

// ToSimConfig converts a RosterFile into a sim.Config ready for
// sim.NewSimulator. It performs no validation itself; sim.NewSimulator
// runs sim.ValidateConfig on the result.
func (rf RosterFile) ToSimConfig() sim.Config {
	cfg := sim.Config{
		PercentInPerson:      rf.PercentInPerson,
		ArrivalSpanMinutes:   rf.ArrivalSpanMinutes,
		IntervalMinutes:      rf.IntervalMinutes,
		TransitDelayMinutes:  rf.TransitDelayMinutes,
		HoldDelayMinutes:     rf.HoldDelayMinutes,
		BoardingCloseMinutes: rf.BoardingCloseMinutes,
		Seed:                 rf.Seed,
		JitterEnabled:        rf.JitterEnabled,
		ArrivalCurve: sim.ArrivalCurveConfig{
			LegacyMode:                rf.ArrivalCurve.LegacyMode,
			WindowStartMinBeforeDep:   rf.ArrivalCurve.WindowStartMinBeforeDep,
			BoardingCloseMinBeforeDep: rf.ArrivalCurve.BoardingCloseMinBeforeDep,
			PeakMinBeforeDep:          rf.ArrivalCurve.PeakMinBeforeDep,
			LeftSigma:                 rf.ArrivalCurve.LeftSigma,
			RightSigma:                rf.ArrivalCurve.RightSigma,
			LateClampEnabled:          rf.ArrivalCurve.LateClampEnabled,
			LateClampMinBeforeDep:     rf.ArrivalCurve.LateClampMinBeforeDep,
		},
	}

	for _, tc := range rf.TicketCounters {
		cfg.TicketCounters = append(cfg.TicketCounters, sim.TicketCounterConfig{
			ID:             tc.ID,
			RatePerMinute:  tc.RatePerMinute,
			AllowedFlights: allowedSet(tc.AllowedFlights),
		})
	}
	for _, cp := range rf.Checkpoints {
		cfg.Checkpoints = append(cfg.Checkpoints, sim.CheckpointConfig{
			ID:          cp.ID,
			RatePerHour: cp.RatePerHour,
		})
	}
	for _, hr := range rf.HoldRooms {
		cfg.HoldRooms = append(cfg.HoldRooms, sim.HoldRoomConfig{
			ID:                        hr.ID,
			WalkSecondsFromCheckpoint: hr.WalkSecondsFromCheckpoint,
			AllowedFlights:            allowedSet(hr.AllowedFlights),
		})
	}
	for _, fl := range rf.Flights {
		cfg.Flights = append(cfg.Flights, sim.Flight{
			FlightNumber:    fl.FlightNumber,
			DepartureMinute: fl.DepartureMinute,
			Seats:           fl.Seats,
			FillPercent:     fl.FillPercent,
			ShapeTag:        fl.ShapeTag,
		})
	}

	return cfg
}

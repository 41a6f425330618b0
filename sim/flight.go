package sim

import (
	"fmt"
	"strings"
)

// Flight is the static identity and schedule of one departure.
//
// DepartureMinute is minutes since a shared reference point (typically
// midnight of the simulated day); it is never negative. ShapeTag is an
// opaque rendering hint consumed only by external renderers — the
// kernel never interprets it.
type Flight struct {
	FlightNumber    string
	DepartureMinute int
	Seats           int
	FillPercent     float64
	ShapeTag        string
}

// NormalizedNumber returns the flight number used for identity and
// equality comparisons: trimmed and upper-cased.
func (f Flight) NormalizedNumber() string {
	return strings.ToUpper(strings.TrimSpace(f.FlightNumber))
}

// Equal reports whether two flights share the same normalized flight
// number.
func (f Flight) Equal(other Flight) bool {
	return f.NormalizedNumber() == other.NormalizedNumber()
}

// Planned returns round(seats * fill_percent), clamped to be >= 0.
func (f Flight) Planned() int {
	fill := f.FillPercent
	if fill < 0 {
		fill = 0
	}
	planned := roundHalfAwayFromZero(float64(f.Seats) * fill)
	if planned < 0 {
		return 0
	}
	return planned
}

// BoardingCloseMinute returns the minute at which boarding closes for
// this flight, given the configured lead time in minutes.
func (f Flight) BoardingCloseMinute(boardingCloseMinutes int) int {
	return f.DepartureMinute - boardingCloseMinutes
}

// FlightRoster is the fixed, ordered list of flights simulated over the
// horizon. Flight numbers must be unique case-insensitively.
type FlightRoster struct {
	flights []Flight
	index   map[string]int // normalized flight number -> index into flights
}

// NewFlightRoster builds a roster from a list of flights, returning an
// error if any two flights share a normalized flight number.
func NewFlightRoster(flights []Flight) (*FlightRoster, error) {
	r := &FlightRoster{
		flights: make([]Flight, len(flights)),
		index:   make(map[string]int, len(flights)),
	}
	for i, f := range flights {
		norm := f.NormalizedNumber()
		if _, dup := r.index[norm]; dup {
			return nil, fmt.Errorf("duplicate flight number %q", f.FlightNumber)
		}
		r.flights[i] = f
		r.index[norm] = i
	}
	return r, nil
}

// Flights returns the roster's flights in construction order.
func (r *FlightRoster) Flights() []Flight {
	return r.flights
}

// Len returns the number of flights in the roster.
func (r *FlightRoster) Len() int {
	return len(r.flights)
}

// ByNumber returns the flight with the given (case-insensitive) flight
// number and whether it was found.
func (r *FlightRoster) ByNumber(flightNumber string) (Flight, bool) {
	idx, ok := r.index[strings.ToUpper(strings.TrimSpace(flightNumber))]
	if !ok {
		return Flight{}, false
	}
	return r.flights[idx], true
}

// EarliestDepartureMinute returns the smallest DepartureMinute across
// the roster, and false if the roster is empty.
func (r *FlightRoster) EarliestDepartureMinute() (int, bool) {
	if len(r.flights) == 0 {
		return 0, false
	}
	min := r.flights[0].DepartureMinute
	for _, f := range r.flights[1:] {
		if f.DepartureMinute < min {
			min = f.DepartureMinute
		}
	}
	return min, true
}

// roundHalfAwayFromZero rounds to the nearest integer, with .5 rounding
// away from zero (matching round() in most languages, unlike Go's
// default banker's rounding concerns for this domain which never sees
// negative inputs in practice but is kept symmetric for safety).
func roundHalfAwayFromZero(x float64) int {
	if x >= 0 {
		return int(x + 0.5)
	}
	return -int(-x + 0.5)
}

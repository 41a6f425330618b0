package sim

import (
	"math"
	"sort"
)

// ArrivalCurveGenerator produces, for each flight, a deterministic
// per-minute arrival-count array summing exactly to that flight's
// planned passenger count (spec.md §4.1). Rebuilding the table is the
// only way counts change: SetConfig rebuilds every flight's curve from
// scratch, so the generator is idempotent with respect to its stored
// table for a fixed config.
type ArrivalCurveGenerator struct {
	cfg                ArrivalCurveConfig
	arrivalSpanMinutes int
	table              map[string][]int // normalized flight number -> counts
}

// NewArrivalCurveGenerator builds the initial table for every flight in
// the roster.
func NewArrivalCurveGenerator(cfg ArrivalCurveConfig, roster *FlightRoster, arrivalSpanMinutes int) *ArrivalCurveGenerator {
	if arrivalSpanMinutes < 1 {
		arrivalSpanMinutes = 1
	}
	g := &ArrivalCurveGenerator{
		cfg:                cfg,
		arrivalSpanMinutes: arrivalSpanMinutes,
	}
	g.rebuild(roster)
	return g
}

// SetConfig replaces the generator's configuration and rebuilds the
// full table for every flight in roster, matching the "rebuilds the
// full table" behavior of spec.md §4.1.
func (g *ArrivalCurveGenerator) SetConfig(cfg ArrivalCurveConfig, roster *FlightRoster) {
	g.cfg = cfg
	g.rebuild(roster)
}

// Config returns the generator's current (post-clamp) configuration.
func (g *ArrivalCurveGenerator) Config() ArrivalCurveConfig {
	return g.cfg
}

// ForFlight returns the arrival-count table for the given (normalized)
// flight number, or nil if unknown.
func (g *ArrivalCurveGenerator) ForFlight(flightNumber string) []int {
	return g.table[flightNumber]
}

func (g *ArrivalCurveGenerator) rebuild(roster *FlightRoster) {
	g.table = make(map[string][]int, roster.Len())
	for _, f := range roster.Flights() {
		var counts []int
		if g.cfg.LegacyMode {
			counts = legacyArrivalCurve(f.Planned(), g.arrivalSpanMinutes)
		} else {
			clamped := clampEditedConfig(g.cfg, g.arrivalSpanMinutes)
			counts = editedArrivalCurve(f.Planned(), clamped, g.arrivalSpanMinutes)
		}
		g.table[f.NormalizedNumber()] = counts
	}
}

// legacyArrivalCurve implements the legacy centered-Gaussian mode:
// span T = max(1, arrivalSpanMinutes-20), mean (T-1)/2, sigma max(1,T/6).
func legacyArrivalCurve(planned, arrivalSpanMinutes int) []int {
	t := arrivalSpanMinutes - 20
	if t < 1 {
		t = 1
	}
	mean := float64(t-1) / 2
	sigma := float64(t) / 6
	if sigma < 1 {
		sigma = 1
	}

	probs := gaussianProbs(t, mean, func(int) float64 { return sigma }, nil, -1)

	out := make([]int, arrivalSpanMinutes)
	counts := distributeRemainder(probs, planned)
	copy(out, counts)
	return out
}

// editedArrivalCurve implements the edited split-Gaussian mode over the
// window [windowStart, boardingClose] (expressed here in minutes before
// departure, already clamped by clampEditedConfig).
func editedArrivalCurve(planned int, cfg ArrivalCurveConfig, arrivalSpanMinutes int) []int {
	windowStartIdx := clampIdx(arrivalSpanMinutes-cfg.WindowStartMinBeforeDep, arrivalSpanMinutes)
	boardingCloseIdx := clampIdx(arrivalSpanMinutes-cfg.BoardingCloseMinBeforeDep, arrivalSpanMinutes)
	peakIdx := arrivalSpanMinutes - cfg.PeakMinBeforeDep

	lateClampIdx := arrivalSpanMinutes + 1 // no clamp, by default
	if cfg.LateClampEnabled {
		lateClampIdx = arrivalSpanMinutes - cfg.LateClampMinBeforeDep
	}

	density := make([]float64, arrivalSpanMinutes)
	sum := 0.0
	for i := windowStartIdx; i <= boardingCloseIdx && i < arrivalSpanMinutes; i++ {
		if i < 0 || i >= lateClampIdx {
			continue
		}
		sigma := cfg.LeftSigma
		if i > peakIdx {
			sigma = cfg.RightSigma
		}
		if sigma < 1 {
			sigma = 1
		}
		d := math.Exp(-math.Pow(float64(i-peakIdx), 2) / (2 * sigma * sigma))
		density[i] = d
		sum += d
	}

	if sum == 0 {
		// Degenerate window (fully late-clamped or zero width): deposit
		// all mass at the last valid minute so conservation still holds.
		fallback := boardingCloseIdx
		if fallback >= lateClampIdx {
			fallback = lateClampIdx - 1
		}
		fallback = clampIdx(fallback, arrivalSpanMinutes-1)
		probs := make([]float64, arrivalSpanMinutes)
		if fallback >= 0 && fallback < arrivalSpanMinutes {
			probs[fallback] = 1
		}
		return distributeRemainder(probs, planned)
	}

	probs := make([]float64, arrivalSpanMinutes)
	for i, d := range density {
		probs[i] = d / sum
	}
	return distributeRemainder(probs, planned)
}

// gaussianProbs computes a normalized discretized Gaussian over
// [0, n) with the given mean and a (possibly piecewise) sigma function.
// lateClampIdx < 0 disables late clamping.
func gaussianProbs(n int, mean float64, sigmaAt func(int) float64, _ *struct{}, lateClampIdx int) []float64 {
	density := make([]float64, n)
	sum := 0.0
	for m := 0; m < n; m++ {
		if lateClampIdx >= 0 && m >= lateClampIdx {
			continue
		}
		sigma := sigmaAt(m)
		d := math.Exp(-math.Pow(float64(m)-mean, 2) / (2 * sigma * sigma))
		density[m] = d
		sum += d
	}
	probs := make([]float64, n)
	if sum == 0 {
		return probs
	}
	for m, d := range density {
		probs[m] = d / sum
	}
	return probs
}

// distributeRemainder assigns floor(p_m * planned) to each minute, then
// distributes the remainder to the minutes with the largest fractional
// parts, ties broken by lowest minute index. The result always sums
// exactly to planned (spec.md §8 property 1).
func distributeRemainder(probs []float64, planned int) []int {
	n := len(probs)
	floors := make([]int, n)
	fracs := make([]float64, n)
	total := 0
	for i, p := range probs {
		val := p * float64(planned)
		f := int(val)
		floors[i] = f
		fracs[i] = val - float64(f)
		total += f
	}
	remainder := planned - total
	if remainder <= 0 {
		return floors
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if fracs[ia] != fracs[ib] {
			return fracs[ia] > fracs[ib]
		}
		return ia < ib
	})
	for i := 0; i < remainder && i < n; i++ {
		floors[order[i]]++
	}
	return floors
}

// clampEditedConfig applies the edited-mode setter-time validation of
// spec.md §4.1: non-negative offsets, sigmas >= 1, peak inside the
// window, window_start >= boarding_close.
func clampEditedConfig(cfg ArrivalCurveConfig, arrivalSpanMinutes int) ArrivalCurveConfig {
	if cfg.WindowStartMinBeforeDep < 0 {
		cfg.WindowStartMinBeforeDep = 0
	}
	if cfg.BoardingCloseMinBeforeDep < 0 {
		cfg.BoardingCloseMinBeforeDep = 0
	}
	if cfg.PeakMinBeforeDep < 0 {
		cfg.PeakMinBeforeDep = 0
	}
	if cfg.LateClampMinBeforeDep < 0 {
		cfg.LateClampMinBeforeDep = 0
	}
	if cfg.LeftSigma < 1 {
		cfg.LeftSigma = 1
	}
	if cfg.RightSigma < 1 {
		cfg.RightSigma = 1
	}
	if cfg.WindowStartMinBeforeDep > arrivalSpanMinutes {
		cfg.WindowStartMinBeforeDep = arrivalSpanMinutes
	}
	if cfg.WindowStartMinBeforeDep < cfg.BoardingCloseMinBeforeDep {
		cfg.WindowStartMinBeforeDep, cfg.BoardingCloseMinBeforeDep = cfg.BoardingCloseMinBeforeDep, cfg.WindowStartMinBeforeDep
	}
	if cfg.PeakMinBeforeDep > cfg.WindowStartMinBeforeDep {
		cfg.PeakMinBeforeDep = cfg.WindowStartMinBeforeDep
	}
	if cfg.PeakMinBeforeDep < cfg.BoardingCloseMinBeforeDep {
		cfg.PeakMinBeforeDep = cfg.BoardingCloseMinBeforeDep
	}
	return cfg
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

package sim

import "testing"

func sumInts(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestLegacyArrivalCurve_ConservesPlannedCount(t *testing.T) {
	// GIVEN a legacy-mode arrival span and a planned passenger count
	// WHEN the curve is built
	// THEN the per-minute counts sum exactly to the planned count
	for _, planned := range []int{0, 1, 7, 100, 251} {
		counts := legacyArrivalCurve(planned, 180)
		if got := sumInts(counts); got != planned {
			t.Fatalf("planned=%d: sum=%d, want %d", planned, got, planned)
		}
	}
}

func TestLegacyArrivalCurve_OutputLengthMatchesSpan(t *testing.T) {
	// GIVEN an arrival span of 180 minutes
	// WHEN the legacy curve is built
	// THEN the output length equals the full span, even though only the
	// first span-20 minutes carry nonzero mass
	counts := legacyArrivalCurve(100, 180)
	if len(counts) != 180 {
		t.Fatalf("len=%d, want 180", len(counts))
	}
	for m := 160; m < 180; m++ {
		if counts[m] != 0 {
			t.Fatalf("counts[%d]=%d, want 0 (last 20 minutes reserved)", m, counts[m])
		}
	}
}

func TestLegacyArrivalCurve_Deterministic(t *testing.T) {
	// GIVEN identical inputs
	// WHEN the curve is built twice
	// THEN the outputs are byte-identical (no RNG involved)
	a := legacyArrivalCurve(83, 150)
	b := legacyArrivalCurve(83, 150)
	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestLegacyArrivalCurve_TinySpanClampsToOneMinute(t *testing.T) {
	// GIVEN an arrival span shorter than the 20-minute reserved tail
	// WHEN the curve is built
	// THEN T clamps to 1 and all mass lands on a single minute
	counts := legacyArrivalCurve(42, 5)
	if len(counts) != 5 {
		t.Fatalf("len=%d, want 5", len(counts))
	}
	if counts[0] != 42 {
		t.Fatalf("counts[0]=%d, want 42", counts[0])
	}
}

func TestDistributeRemainder_TieBreaksByLowestIndex(t *testing.T) {
	// GIVEN three equal-probability minutes and a planned count that
	// doesn't divide evenly
	// WHEN the remainder is distributed
	// THEN ties go to the lowest minute index first
	probs := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	counts := distributeRemainder(probs, 4)
	if sumInts(counts) != 4 {
		t.Fatalf("sum=%d, want 4", sumInts(counts))
	}
	if counts[0] != 2 || counts[1] != 1 || counts[2] != 1 {
		t.Fatalf("counts=%v, want [2 1 1]", counts)
	}
}

func TestDistributeRemainder_ZeroPlanned(t *testing.T) {
	// GIVEN a zero planned count
	// WHEN the remainder is distributed
	// THEN every minute gets zero
	counts := distributeRemainder([]float64{0.5, 0.5}, 0)
	if sumInts(counts) != 0 {
		t.Fatalf("sum=%d, want 0", sumInts(counts))
	}
}

func TestEditedArrivalCurve_ConservesPlannedCount(t *testing.T) {
	// GIVEN an edited-mode config with an asymmetric window
	// WHEN the curve is built
	// THEN the counts sum exactly to the planned count
	cfg := ArrivalCurveConfig{
		WindowStartMinBeforeDep:   120,
		BoardingCloseMinBeforeDep: 20,
		PeakMinBeforeDep:          60,
		LeftSigma:                 20,
		RightSigma:                10,
	}
	clamped := clampEditedConfig(cfg, 180)
	counts := editedArrivalCurve(250, clamped, 180)
	if got := sumInts(counts); got != 250 {
		t.Fatalf("sum=%d, want 250", got)
	}
}

func TestEditedArrivalCurve_RespectsLateClamp(t *testing.T) {
	// GIVEN late-clamp enabled at 30 minutes before departure
	// WHEN the curve is built
	// THEN no mass falls within 30 minutes of departure
	cfg := ArrivalCurveConfig{
		WindowStartMinBeforeDep:   120,
		BoardingCloseMinBeforeDep: 0,
		PeakMinBeforeDep:          60,
		LeftSigma:                 20,
		RightSigma:                10,
		LateClampEnabled:          true,
		LateClampMinBeforeDep:     30,
	}
	span := 180
	clamped := clampEditedConfig(cfg, span)
	counts := editedArrivalCurve(300, clamped, span)
	if got := sumInts(counts); got != 300 {
		t.Fatalf("sum=%d, want 300", got)
	}
	lateClampIdx := span - cfg.LateClampMinBeforeDep
	for i := lateClampIdx; i < span; i++ {
		if counts[i] != 0 {
			t.Fatalf("counts[%d]=%d, want 0 (within late-clamp window)", i, counts[i])
		}
	}
}

func TestClampEditedConfig_SwapsInvertedWindow(t *testing.T) {
	// GIVEN a window_start smaller than boarding_close (inverted input)
	// WHEN the config is clamped
	// THEN the two bounds are swapped so window_start >= boarding_close
	cfg := ArrivalCurveConfig{
		WindowStartMinBeforeDep:   10,
		BoardingCloseMinBeforeDep: 90,
		PeakMinBeforeDep:          50,
		LeftSigma:                 5,
		RightSigma:                5,
	}
	clamped := clampEditedConfig(cfg, 180)
	if clamped.WindowStartMinBeforeDep < clamped.BoardingCloseMinBeforeDep {
		t.Fatalf("window_start=%d still less than boarding_close=%d",
			clamped.WindowStartMinBeforeDep, clamped.BoardingCloseMinBeforeDep)
	}
}

func TestClampEditedConfig_ClampsPeakIntoWindow(t *testing.T) {
	// GIVEN a peak outside the [boarding_close, window_start] range
	// WHEN the config is clamped
	// THEN the peak is pulled to the nearest bound
	cfg := ArrivalCurveConfig{
		WindowStartMinBeforeDep:   100,
		BoardingCloseMinBeforeDep: 50,
		PeakMinBeforeDep:          200, // too far before departure
		LeftSigma:                 5,
		RightSigma:                5,
	}
	clamped := clampEditedConfig(cfg, 180)
	if clamped.PeakMinBeforeDep != clamped.WindowStartMinBeforeDep {
		t.Fatalf("peak=%d, want clamped to window_start=%d",
			clamped.PeakMinBeforeDep, clamped.WindowStartMinBeforeDep)
	}
}

func TestClampEditedConfig_ClampsSigmasToAtLeastOne(t *testing.T) {
	// GIVEN sigmas below 1
	// WHEN the config is clamped
	// THEN both sigmas floor to 1
	cfg := ArrivalCurveConfig{
		WindowStartMinBeforeDep:   100,
		BoardingCloseMinBeforeDep: 20,
		PeakMinBeforeDep:          60,
		LeftSigma:                 0,
		RightSigma:                -3,
	}
	clamped := clampEditedConfig(cfg, 180)
	if clamped.LeftSigma != 1 || clamped.RightSigma != 1 {
		t.Fatalf("sigmas=(%v,%v), want (1,1)", clamped.LeftSigma, clamped.RightSigma)
	}
}

func TestEditedArrivalCurve_DegenerateWindowStillConservesCount(t *testing.T) {
	// GIVEN a late clamp so aggressive it swallows the entire window
	// WHEN the curve is built
	// THEN the fallback deposit still conserves the planned total
	cfg := ArrivalCurveConfig{
		WindowStartMinBeforeDep:   60,
		BoardingCloseMinBeforeDep: 10,
		PeakMinBeforeDep:          30,
		LeftSigma:                 5,
		RightSigma:                5,
		LateClampEnabled:          true,
		LateClampMinBeforeDep:     200, // clamps everything before departure
	}
	span := 180
	clamped := clampEditedConfig(cfg, span)
	counts := editedArrivalCurve(40, clamped, span)
	if got := sumInts(counts); got != 40 {
		t.Fatalf("sum=%d, want 40", got)
	}
}

func TestArrivalCurveGenerator_RebuildsOnSetConfig(t *testing.T) {
	// GIVEN a generator in legacy mode
	// WHEN SetConfig switches it to edited mode
	// THEN ForFlight reflects the new mode's shape deterministically
	roster, err := NewFlightRoster([]Flight{
		{FlightNumber: "AA100", Seats: 120, FillPercent: 1, DepartureMinute: 300},
	})
	if err != nil {
		t.Fatalf("NewFlightRoster: %v", err)
	}
	gen := NewArrivalCurveGenerator(ArrivalCurveConfig{LegacyMode: true}, roster, 180)
	legacy := gen.ForFlight("AA100")
	if sumInts(legacy) != 120 {
		t.Fatalf("legacy sum=%d, want 120", sumInts(legacy))
	}

	gen.SetConfig(ArrivalCurveConfig{
		WindowStartMinBeforeDep:   120,
		BoardingCloseMinBeforeDep: 20,
		PeakMinBeforeDep:          60,
		LeftSigma:                 20,
		RightSigma:                10,
	}, roster)
	edited := gen.ForFlight("AA100")
	if sumInts(edited) != 120 {
		t.Fatalf("edited sum=%d, want 120", sumInts(edited))
	}
}

func TestArrivalCurveGenerator_IdempotentForUnchangedConfig(t *testing.T) {
	// GIVEN a fixed config and roster
	// WHEN two generators are built independently
	// THEN their tables match exactly
	roster, err := NewFlightRoster([]Flight{
		{FlightNumber: "BB200", Seats: 77, FillPercent: 1, DepartureMinute: 400},
	})
	if err != nil {
		t.Fatalf("NewFlightRoster: %v", err)
	}
	cfg := ArrivalCurveConfig{LegacyMode: true}
	g1 := NewArrivalCurveGenerator(cfg, roster, 200)
	g2 := NewArrivalCurveGenerator(cfg, roster, 200)

	a, b := g1.ForFlight("BB200"), g2.ForFlight("BB200")
	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

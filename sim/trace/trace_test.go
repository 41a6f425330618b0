package trace

import "testing"

func TestTrace_NilIsSafeAndRecordsNothing(t *testing.T) {
	// GIVEN a nil *Trace (the zero-overhead "disabled" representation)
	// WHEN RecordRouterDecision is called on it
	// THEN nothing panics and nothing is recorded
	var tr *Trace
	tr.RecordRouterDecision(RouterDecisionRecord{AbsSec: 1, ChosenLane: 0})

	if tr.Enabled() {
		t.Fatalf("nil trace should report disabled")
	}
	if tr.Len() != 0 {
		t.Fatalf("nil trace should record nothing")
	}
	if tr.RouterDecisions() != nil {
		t.Fatalf("nil trace should return nil decisions")
	}
}

func TestTrace_LevelOff_RecordsNothing(t *testing.T) {
	// GIVEN a Trace explicitly configured at LevelOff
	// WHEN a decision is recorded
	// THEN it is dropped
	tr := New(Config{Level: LevelOff})
	tr.RecordRouterDecision(RouterDecisionRecord{AbsSec: 1, ChosenLane: 0})

	if tr.Enabled() {
		t.Fatalf("LevelOff trace should report disabled")
	}
	if tr.Len() != 0 {
		t.Fatalf("LevelOff trace should record nothing")
	}
}

func TestTrace_LevelSummary_RecordsInOrder(t *testing.T) {
	// GIVEN a Trace at LevelSummary
	// WHEN three decisions are recorded
	// THEN they are retained in recording order
	tr := New(Config{Level: LevelSummary})
	tr.RecordRouterDecision(RouterDecisionRecord{AbsSec: 10, PassengerID: 1, ChosenLane: 0, Backlogs: []float64{5, 9}})
	tr.RecordRouterDecision(RouterDecisionRecord{AbsSec: 20, PassengerID: 2, ChosenLane: 1, Backlogs: []float64{6, 2}})
	tr.RecordRouterDecision(RouterDecisionRecord{AbsSec: 30, PassengerID: 3, ChosenLane: 0, Backlogs: []float64{1, 1}})

	if tr.Len() != 3 {
		t.Fatalf("Len=%d, want 3", tr.Len())
	}
	decisions := tr.RouterDecisions()
	if decisions[0].AbsSec != 10 || decisions[1].AbsSec != 20 || decisions[2].AbsSec != 30 {
		t.Fatalf("decisions out of order: %+v", decisions)
	}
}

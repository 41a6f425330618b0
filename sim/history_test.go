package sim

import "testing"

func TestIntervalRecord_CountersAccumulate(t *testing.T) {
	// GIVEN a fresh interval record
	// WHEN counters are added across two calls for the same flight
	// THEN the values accumulate rather than overwrite
	r := NewIntervalRecord(3)
	r.addArrived("AA100", 5)
	r.addArrived("AA100", 2)
	r.addTicketed("AA100", 4)

	c := r.FlightCounters["AA100"]
	if c.Arrived != 7 {
		t.Fatalf("Arrived=%d, want 7", c.Arrived)
	}
	if c.Ticketed != 4 {
		t.Fatalf("Ticketed=%d, want 4", c.Ticketed)
	}
}

func TestIntervalRecord_Clone_IsIndependent(t *testing.T) {
	// GIVEN a populated record
	// WHEN it is cloned and the clone mutated
	// THEN the original is unaffected
	r := NewIntervalRecord(1)
	r.TicketQueueLen["T1"] = 3
	r.addArrived("AA100", 10)

	clone := r.Clone()
	clone.TicketQueueLen["T1"] = 99
	clone.addArrived("AA100", 1000)

	if r.TicketQueueLen["T1"] != 3 {
		t.Fatalf("original TicketQueueLen mutated by clone")
	}
	if r.FlightCounters["AA100"].Arrived != 10 {
		t.Fatalf("original FlightCounters mutated by clone")
	}
}

func TestHistory_AppendAndAt(t *testing.T) {
	// GIVEN a history with three appended records
	// WHEN At is called for a present and an absent index
	// THEN the present one is found and the absent one is not
	h := NewHistory()
	h.Append(NewIntervalRecord(0))
	h.Append(NewIntervalRecord(1))
	h.Append(NewIntervalRecord(2))

	if h.Len() != 3 {
		t.Fatalf("Len=%d, want 3", h.Len())
	}
	if _, ok := h.At(1); !ok {
		t.Fatalf("expected interval 1 to be found")
	}
	if _, ok := h.At(99); ok {
		t.Fatalf("expected interval 99 to be absent")
	}
}

func TestHistory_Truncate(t *testing.T) {
	// GIVEN a history with records 0..4
	// WHEN Truncate(2) is called
	// THEN only records with index <= 2 remain
	h := NewHistory()
	for i := int64(0); i < 5; i++ {
		h.Append(NewIntervalRecord(i))
	}
	h.Truncate(2)

	if h.Len() != 3 {
		t.Fatalf("Len=%d, want 3", h.Len())
	}
	if _, ok := h.At(3); ok {
		t.Fatalf("expected interval 3 to be truncated away")
	}
	if _, ok := h.At(2); !ok {
		t.Fatalf("expected interval 2 to remain")
	}
}

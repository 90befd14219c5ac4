package booking

import "testing"

func TestPriceDraft_StudioA(t *testing.T) {
	q := PriceDraft(BookingDraft{Studio: "Studio A", Duration: "3 hours"})
	if q.Studio != StudioA {
		t.Fatalf("expected Studio A, got %q", q.Studio)
	}
	if q.TotalCostMinor != 22500 {
		t.Fatalf("expected 22500, got %d", q.TotalCostMinor)
	}
	if q.DepositAmountMinor != 11250 {
		t.Fatalf("expected 11250, got %d", q.DepositAmountMinor)
	}
}

func TestPriceDraft_StudioB(t *testing.T) {
	q := PriceDraft(BookingDraft{Studio: "studio b", Duration: "2"})
	if q.Studio != StudioB {
		t.Fatalf("expected Studio B, got %q", q.Studio)
	}
	if q.TotalCostMinor != 13000 {
		t.Fatalf("expected 13000, got %d", q.TotalCostMinor)
	}
	if q.DepositAmountMinor != 6500 {
		t.Fatalf("expected 6500, got %d", q.DepositAmountMinor)
	}
}

func TestResolveStudio_ExactMatchOnly(t *testing.T) {
	// "Lab" contains a "b" but is not Studio B.
	if got := ResolveStudio("The Lab"); got != StudioA {
		t.Fatalf("expected fallback to Studio A, got %q", got)
	}
	if got := ResolveStudio("B"); got != StudioB {
		t.Fatalf("expected Studio B, got %q", got)
	}
	if got := ResolveStudio("Studio B"); got != StudioB {
		t.Fatalf("expected Studio B, got %q", got)
	}
}

func TestParseDurationHours(t *testing.T) {
	cases := map[string]int{
		"2":           2,
		"2 hours":     2,
		"about 3hrs":  3,
		"ninety mins": 2, // unparsable, default
		"":            2,
		"0 hours":     2, // non-positive, default
	}
	for in, want := range cases {
		if got := ParseDurationHours(in); got != want {
			t.Fatalf("ParseDurationHours(%q) = %d, want %d", in, got, want)
		}
	}
}

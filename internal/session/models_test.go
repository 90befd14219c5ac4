package session

import (
	"fmt"
	"testing"
)

func TestAppendTurn_CapsStoredHistory(t *testing.T) {
	s := newSession("CA1")
	for i := 0; i < MaxStoredTurns+10; i++ {
		s.AppendTurn(RoleCaller, fmt.Sprintf("turn %d", i))
	}
	if len(s.History) != MaxStoredTurns {
		t.Fatalf("expected %d stored turns, got %d", MaxStoredTurns, len(s.History))
	}
	// Oldest turns drop first.
	if s.History[0].Text != "turn 10" {
		t.Fatalf("expected oldest surviving turn to be 'turn 10', got %q", s.History[0].Text)
	}
}

func TestRecentHistory_ReturnsTail(t *testing.T) {
	s := newSession("CA1")
	for i := 0; i < 10; i++ {
		s.AppendTurn(RoleAgent, fmt.Sprintf("turn %d", i))
	}

	recent := s.RecentHistory(ExtractorTurnsMax)
	if len(recent) != ExtractorTurnsMax {
		t.Fatalf("expected %d turns, got %d", ExtractorTurnsMax, len(recent))
	}
	if recent[len(recent)-1].Text != "turn 9" {
		t.Fatalf("expected newest turn last, got %q", recent[len(recent)-1].Text)
	}

	if got := s.RecentHistory(100); len(got) != 10 {
		t.Fatalf("expected full history when n exceeds length, got %d", len(got))
	}
	if got := s.RecentHistory(0); got != nil {
		t.Fatalf("expected nil for n=0")
	}
}

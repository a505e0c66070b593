package forge

import (
	"testing"

	"github.com/napolitain/forge-scheduler/internal/models"
)

func TestFrontierCollapsesDuplicates(t *testing.T) {
	f := NewFrontier(true, 4)

	a := State{Rates: models.Ledger{1}, Balances: models.Ledger{2}, Phase: AwaitingTick, Eligible: 0b0011, Queued: NoUnit}
	b := a
	b.Eligible = 0b0100
	c := a
	c.Balances[models.Clay] = 1

	f.Push(a)
	f.Push(b)
	f.Push(c)

	if f.Len() != 2 {
		t.Fatalf("Len = %d, want 2", f.Len())
	}
	if f.Pushed() != 3 {
		t.Errorf("Pushed = %d, want 3", f.Pushed())
	}

	states := f.States()
	if states[0].Eligible != 0b0111 {
		t.Errorf("merged eligibility = %04b, want 0111", states[0].Eligible)
	}
	for _, s := range states {
		if s.Phase != NeedsDecision {
			t.Errorf("state not normalized: %v", s)
		}
	}
}

func TestFrontierWithoutDedupKeepsAll(t *testing.T) {
	f := NewFrontier(false, 0)

	s := State{Rates: models.Ledger{1}, Queued: NoUnit}
	for i := 0; i < 5; i++ {
		f.Push(s)
	}

	if f.Len() != 5 {
		t.Errorf("Len = %d, want 5", f.Len())
	}
}

func TestBest(t *testing.T) {
	states := []State{
		{Balances: models.Ledger{models.Geode: 3}},
		{Balances: models.Ledger{models.Ore: 50, models.Geode: 9}},
		{Balances: models.Ledger{models.Geode: 7}},
	}

	if got := Best(states); got != 9 {
		t.Errorf("Best = %d, want 9", got)
	}
	if got := Best(nil); got != 0 {
		t.Errorf("Best(nil) = %d, want 0", got)
	}
}

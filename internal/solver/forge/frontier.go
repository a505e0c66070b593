package forge

import "github.com/napolitain/forge-scheduler/internal/models"

// frontierKey identifies states that are interchangeable for every future
// decision.
type frontierKey struct {
	rates    models.Ledger
	balances models.Ledger
}

// Frontier collects the ticked states of one step and collapses
// duplicates on (Rates, Balances).
type Frontier struct {
	dedup  bool
	index  map[frontierKey]int
	states []State
	pushed int
}

// NewFrontier creates an empty frontier. With dedup false every pushed
// state is kept.
func NewFrontier(dedup bool, sizeHint int) *Frontier {
	f := &Frontier{
		dedup:  dedup,
		states: make([]State, 0, sizeHint),
	}
	if dedup {
		f.index = make(map[frontierKey]int, sizeHint)
	}
	return f
}

// Push adds a state, normalized to NeedsDecision. When a state with the
// same rates and balances is already present the eligibility masks are
// merged, so the kept representative can still take every decision
// either duplicate could.
func (f *Frontier) Push(s State) {
	f.pushed++
	s.Phase = NeedsDecision
	s.Queued = NoUnit

	if !f.dedup {
		f.states = append(f.states, s)
		return
	}

	key := frontierKey{rates: s.Rates, balances: s.Balances}
	if i, ok := f.index[key]; ok {
		f.states[i].Eligible |= s.Eligible
		return
	}
	f.index[key] = len(f.states)
	f.states = append(f.states, s)
}

// Len returns the number of distinct states
func (f *Frontier) Len() int {
	return len(f.states)
}

// Pushed returns the number of states pushed before deduplication
func (f *Frontier) Pushed() int {
	return f.pushed
}

// States returns the collected states. The frontier must not be pushed
// to afterwards.
func (f *Frontier) States() []State {
	return f.states
}

// Best returns the largest output balance across states. Balances are
// never negative, so an empty slice yields 0.
func Best(states []State) int {
	best := 0
	for _, s := range states {
		best = max(best, s.Balances[models.OutputResource])
	}
	return best
}

package forge

import "github.com/napolitain/forge-scheduler/internal/models"

// Tick advances an AwaitingTick state by one step.
//
// Production is added to the balances, then every non-output balance is
// clipped to cap*(remaining-1): more than that can never be spent before
// the horizon. A queued unit starts producing from the next step. A state
// that bought something gets full eligibility back for its next decision.
func Tick(cat *models.Catalog, s State, remaining int) State {
	left := remaining - 1

	next := State{
		Rates:    s.Rates,
		Balances: s.Balances.Add(s.Rates),
		Phase:    NeedsDecision,
		Eligible: s.Eligible,
		Queued:   NoUnit,
	}

	for _, r := range models.AllResourceKinds() {
		if r == models.OutputResource {
			continue
		}
		next.Balances[r] = min(next.Balances[r], cat.Cap(r)*left)
	}

	if s.Queued != NoUnit {
		next.Rates[cat.Unit(s.Queued).Produces]++
		next.Eligible = FullMask(cat.NumUnits())
	}

	return next
}

package forge

import "github.com/napolitain/forge-scheduler/internal/models"

// Branch fans a NeedsDecision state out into its AwaitingTick successors.
//
// remaining is the number of steps left including the current one. At most
// one unit is bought per step. A kind is tried when it is eligible, its
// produced resource is below the catalog cap and the balances cover its
// recipe. The "build nothing" branch is always emitted last; its
// eligibility drops every kind that was tried, since buying it later is
// never better than buying it now.
func Branch(cat *models.Catalog, s State, remaining int) []State {
	branches := make([]State, 0, cat.NumUnits()+1)

	var tried Mask
	// A unit bought on the final step never produces before the end.
	if remaining > 1 {
		for k := range cat.NumUnits() {
			u := cat.Unit(k)
			if !s.Eligible.Has(k) || cat.Capped(u.Produces, s.Rates[u.Produces]) {
				continue
			}
			if !s.Balances.Covers(u.Cost) {
				continue
			}
			left, ok := s.Balances.Sub(u.Cost)
			if !ok {
				continue
			}

			tried |= 1 << k
			branches = append(branches, State{
				Rates:    s.Rates,
				Balances: left,
				Phase:    AwaitingTick,
				Eligible: s.Eligible.Without(k),
				Queued:   k,
			})
		}
	}

	branches = append(branches, State{
		Rates:    s.Rates,
		Balances: s.Balances,
		Phase:    AwaitingTick,
		Eligible: s.Eligible &^ tried,
		Queued:   NoUnit,
	})

	return branches
}

package forge

import (
	"fmt"

	"github.com/napolitain/forge-scheduler/internal/models"
)

// Phase marks where a State is in the per-step branch/tick cycle
type Phase int

const (
	NeedsDecision Phase = iota
	AwaitingTick
)

// String returns a string representation of the phase
func (p Phase) String() string {
	switch p {
	case NeedsDecision:
		return "NeedsDecision"
	case AwaitingTick:
		return "AwaitingTick"
	default:
		return "Unknown"
	}
}

// NoUnit is the Queued value of a State that builds nothing this step
const NoUnit = -1

// Mask is a bitset over unit kinds of a catalog
type Mask uint8

// FullMask returns a mask with every one of n unit kinds set
func FullMask(n int) Mask {
	return Mask(uint16(1)<<n - 1)
}

// Has reports whether unit kind k is set
func (m Mask) Has(k int) bool {
	return m&(1<<k) != 0
}

// Without returns m with unit kind k cleared
func (m Mask) Without(k int) Mask {
	return m &^ (1 << k)
}

// State is one node of the search. It is a plain comparable value.
type State struct {
	Rates    models.Ledger // units produced per step
	Balances models.Ledger // units banked

	Phase Phase

	// Eligible lists the unit kinds that may still be built at the
	// current decision point.
	Eligible Mask

	// Queued is the unit kind bought this step, or NoUnit. It becomes
	// active on the next tick.
	Queued int
}

// Seed returns the initial state: one raw producer, nothing banked
func Seed(cat *models.Catalog) State {
	s := State{
		Phase:    NeedsDecision,
		Eligible: FullMask(cat.NumUnits()),
		Queued:   NoUnit,
	}
	s.Rates[models.RawResource] = 1
	return s
}

// String is used in test failure output
func (s State) String() string {
	return fmt.Sprintf("{rates=%v balances=%v %s eligible=%08b queued=%d}",
		s.Rates, s.Balances, s.Phase, s.Eligible, s.Queued)
}

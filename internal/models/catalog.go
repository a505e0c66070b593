package models

import "fmt"

// Catalog is the static production rules of one problem instance.
// It is immutable once built by NewCatalog.
type Catalog struct {
	ID   int
	Name string

	units []UnitKind

	// maxUseful[r] is the largest cost of r across all recipes. Producing
	// more than this per step can never be spent.
	maxUseful Ledger
}

// NewCatalog validates units and precomputes the per-resource caps
func NewCatalog(id int, name string, units []UnitKind) (*Catalog, error) {
	if len(units) == 0 {
		return nil, ErrNoUnits
	}
	if len(units) > MaxUnitKinds {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyUnits, len(units), MaxUnitKinds)
	}

	c := &Catalog{
		ID:    id,
		Name:  name,
		units: make([]UnitKind, len(units)),
	}
	copy(c.units, units)

	for _, u := range c.units {
		if !u.Produces.Valid() {
			return nil, fmt.Errorf("unit %s: %w: %d", u.Name, ErrUnknownResource, int(u.Produces))
		}
		for r, amount := range u.Cost {
			if amount < 0 {
				return nil, fmt.Errorf("unit %s: %w: %d %s", u.Name, ErrNegativeCost, amount, ResourceKind(r))
			}
			c.maxUseful[r] = max(c.maxUseful[r], amount)
		}
	}

	return c, nil
}

// DefaultCatalog builds the four-unit robot factory where each robot
// produces one resource kind.
func DefaultCatalog(id, oreOre, clayOre, obsidianOre, obsidianClay, geodeOre, geodeObsidian int) (*Catalog, error) {
	return NewCatalog(id, fmt.Sprintf("Blueprint %d", id), []UnitKind{
		{Name: "ore robot", Produces: Ore, Cost: Ledger{Ore: oreOre}},
		{Name: "clay robot", Produces: Clay, Cost: Ledger{Ore: clayOre}},
		{Name: "obsidian robot", Produces: Obsidian, Cost: Ledger{Ore: obsidianOre, Clay: obsidianClay}},
		{Name: "geode robot", Produces: Geode, Cost: Ledger{Ore: geodeOre, Obsidian: geodeObsidian}},
	})
}

// Cap returns the maximum useful production rate of r. The output
// resource is never capped and reports -1.
func (c *Catalog) Cap(r ResourceKind) int {
	if r == OutputResource {
		return -1
	}
	return c.maxUseful[r]
}

// MaxUseful returns the per-resource maximum recipe cost table
func (c *Catalog) MaxUseful() Ledger {
	return c.maxUseful
}

// Capped reports whether building another unit producing r is useless
// given the current rate.
func (c *Catalog) Capped(r ResourceKind, rate int) bool {
	return r != OutputResource && rate >= c.maxUseful[r]
}

// NumUnits returns the number of unit kinds
func (c *Catalog) NumUnits() int {
	return len(c.units)
}

// Unit returns unit kind k. It panics if k is out of range.
func (c *Catalog) Unit(k int) UnitKind {
	return c.units[k]
}

// Units returns a copy of the unit kinds in index order
func (c *Catalog) Units() []UnitKind {
	out := make([]UnitKind, len(c.units))
	copy(out, c.units)
	return out
}

package models

import (
	"errors"
	"fmt"
)

// ResourceKind represents the different resources a factory tracks.
// Kinds are dense indices into fixed-size arrays.
type ResourceKind int

const (
	Ore ResourceKind = iota
	Clay
	Obsidian
	Geode
)

// NumResources is the number of resource kinds
const NumResources = 4

// RawResource is the resource with one unit of baseline production at start
const RawResource = Ore

// OutputResource is the resource whose final balance is maximized
const OutputResource = Geode

// MaxUnitKinds bounds the catalog size so eligibility fits in a byte
const MaxUnitKinds = 8

// AllResourceKinds returns all resource kinds in index order
func AllResourceKinds() []ResourceKind {
	return []ResourceKind{Ore, Clay, Obsidian, Geode}
}

// String returns the lowercase resource name
func (r ResourceKind) String() string {
	switch r {
	case Ore:
		return "ore"
	case Clay:
		return "clay"
	case Obsidian:
		return "obsidian"
	case Geode:
		return "geode"
	default:
		return fmt.Sprintf("resource(%d)", int(r))
	}
}

// Valid reports whether r is a known resource kind
func (r ResourceKind) Valid() bool {
	return r >= 0 && r < NumResources
}

// ParseResourceKind converts a resource name to its kind
func ParseResourceKind(name string) (ResourceKind, error) {
	switch name {
	case "ore":
		return Ore, nil
	case "clay":
		return Clay, nil
	case "obsidian":
		return Obsidian, nil
	case "geode":
		return Geode, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownResource, name)
}

// Catalog errors
var (
	ErrUnknownResource = errors.New("unknown resource kind")
	ErrNegativeCost    = errors.New("negative recipe cost")
	ErrTooManyUnits    = errors.New("too many unit kinds")
	ErrNoUnits         = errors.New("catalog has no unit kinds")
)

// Ledger holds one integer per resource kind. It is used both for
// production rates and for banked balances.
type Ledger [NumResources]int

// Add returns l + o component-wise
func (l Ledger) Add(o Ledger) Ledger {
	for i := range l {
		l[i] += o[i]
	}
	return l
}

// Sub returns l - o and whether every component stayed non-negative
func (l Ledger) Sub(o Ledger) (Ledger, bool) {
	ok := true
	for i := range l {
		l[i] -= o[i]
		if l[i] < 0 {
			ok = false
		}
	}
	return l, ok
}

// Covers returns true if l has at least cost of every resource
func (l Ledger) Covers(cost Ledger) bool {
	for i := range l {
		if l[i] < cost[i] {
			return false
		}
	}
	return true
}

// NonNegative returns true if no component is below zero
func (l Ledger) NonNegative() bool {
	for _, v := range l {
		if v < 0 {
			return false
		}
	}
	return true
}

// UnitKind is a production unit and its recipe
type UnitKind struct {
	Name     string
	Produces ResourceKind
	Cost     Ledger
}

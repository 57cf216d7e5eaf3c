// Package farmstate holds the in-memory FarmState aggregate and the
// decimal-arithmetic primitives every state transition is built from.
//
// Phase 2: Farm State Model.
// Design reference: udisondev/la2go internal/model (one aggregate struct per
// concern, exported accessor methods, no direct field mutation from other
// packages) adapted to plain immutable-by-convention value copies instead of
// mutex-guarded live objects, since a FarmState lives for exactly one save
// invocation (§5: never shared across invocations).
package farmstate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmforge/engine/internal/catalog"
)

// DecimalPlaces is the fixed fractional precision the engine rounds to,
// matching on-chain 18-decimal fixed point (§4.2).
const DecimalPlaces = 18

// Field is a planted plot. A plot with no Field is represented by its
// absence from State.Fields, never by a zero-value Field.
type Field struct {
	PlantedAt time.Time
	Item      catalog.ItemName
}

// Tree is a choppable plot's remaining yield.
type Tree struct {
	ChoppedAt time.Time
	Wood      decimal.Decimal
}

// State is the central FarmState aggregate (§3).
type State struct {
	Address   string
	Balance   decimal.Decimal
	Inventory map[catalog.ItemName]decimal.Decimal
	Stock     map[catalog.ItemName]decimal.Decimal
	Fields    map[int]Field
	Trees     map[int]Tree
	Redeemed  map[string]struct{} // promo codes already claimed by this farm
}

// New returns an empty, zero-balance farm state ready for its owner address.
func New(address string) *State {
	return &State{
		Address:   address,
		Balance:   decimal.Zero,
		Inventory: make(map[catalog.ItemName]decimal.Decimal),
		Stock:     make(map[catalog.ItemName]decimal.Decimal),
		Fields:    make(map[int]Field),
		Trees:     make(map[int]Tree),
		Redeemed:  make(map[string]struct{}),
	}
}

// Clone returns a deep copy. Every state transition operates on a clone so
// that a failed transition never mutates the caller's original (§4.4:
// "it never partially updates").
func (s *State) Clone() *State {
	out := &State{
		Address:   s.Address,
		Balance:   s.Balance,
		Inventory: make(map[catalog.ItemName]decimal.Decimal, len(s.Inventory)),
		Stock:     make(map[catalog.ItemName]decimal.Decimal, len(s.Stock)),
		Fields:    make(map[int]Field, len(s.Fields)),
		Trees:     make(map[int]Tree, len(s.Trees)),
		Redeemed:  make(map[string]struct{}, len(s.Redeemed)),
	}
	for k, v := range s.Inventory {
		out.Inventory[k] = v
	}
	for k, v := range s.Stock {
		out.Stock[k] = v
	}
	for k, v := range s.Fields {
		out.Fields[k] = v
	}
	for k, v := range s.Trees {
		out.Trees[k] = v
	}
	for k := range s.Redeemed {
		out.Redeemed[k] = struct{}{}
	}
	return out
}

// Package action implements the closed set of user-originated state
// transitions (§4.4) as a sum type over concrete Go structs, and the pure
// dispatcher that applies one action to a FarmState.
//
// Design reference: udisondev/la2go internal/game/craft.Controller — one
// exported entry point per subsystem, validation before mutation, an
// interface for the one external collaborator (there: ItemCreator; here:
// nothing — the farm state is entirely in-process).
//
// Design note (§9): the source discriminates actions by string tag through a
// handler registry. Here that becomes a closed interface with an unexported
// marker method, so only this package can produce an Action and the
// dispatcher's type switch is exhaustive by construction — decoding an
// unrecognized tag is a decode-time error, never a dispatch-time branch.
package action

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmforge/engine/internal/catalog"
)

// Kind names the closed set of action tags (§3).
type Kind string

const (
	KindPlanted   Kind = "item.planted"
	KindHarvested Kind = "item.harvested"
	KindChopped   Kind = "tree.chopped"
	KindCrafted   Kind = "item.crafted"
	KindSold      Kind = "item.sell"
	KindRedeemed  Kind = "item.redeemed"
)

// Action is any of the six action kinds. The marker method keeps the set
// closed to this package.
type Action interface {
	Kind() Kind
	Timestamp() time.Time
	sealed()
}

type base struct {
	CreatedAt time.Time
}

func (b base) Timestamp() time.Time { return b.CreatedAt }
func (base) sealed()                {}

// Planted is item.planted{index, item}.
type Planted struct {
	base
	Index int
	Item  catalog.ItemName
}

func NewPlanted(createdAt time.Time, index int, item catalog.ItemName) Planted {
	return Planted{base: base{CreatedAt: createdAt}, Index: index, Item: item}
}
func (Planted) Kind() Kind { return KindPlanted }

// Harvested is item.harvested{index}.
type Harvested struct {
	base
	Index int
}

func NewHarvested(createdAt time.Time, index int) Harvested {
	return Harvested{base: base{CreatedAt: createdAt}, Index: index}
}
func (Harvested) Kind() Kind { return KindHarvested }

// Chopped is tree.chopped{index, item:"Axe"}.
type Chopped struct {
	base
	Index int
	Item  catalog.ItemName
}

func NewChopped(createdAt time.Time, index int, item catalog.ItemName) Chopped {
	return Chopped{base: base{CreatedAt: createdAt}, Index: index, Item: item}
}
func (Chopped) Kind() Kind { return KindChopped }

// Crafted is item.crafted{item, amount}.
type Crafted struct {
	base
	Item   catalog.ItemName
	Amount decimal.Decimal
}

func NewCrafted(createdAt time.Time, item catalog.ItemName, amount decimal.Decimal) Crafted {
	return Crafted{base: base{CreatedAt: createdAt}, Item: item, Amount: amount}
}
func (Crafted) Kind() Kind { return KindCrafted }

// Sold is item.sell{item, amount}.
type Sold struct {
	base
	Item   catalog.ItemName
	Amount decimal.Decimal
}

func NewSold(createdAt time.Time, item catalog.ItemName, amount decimal.Decimal) Sold {
	return Sold{base: base{CreatedAt: createdAt}, Item: item, Amount: amount}
}
func (Sold) Kind() Kind { return KindSold }

// Redeemed is item.redeemed{code} — the promotional-claim transition
// SPEC_FULL adds a concrete eligibility rule for (single-use per farm).
type Redeemed struct {
	base
	Code string
}

func NewRedeemed(createdAt time.Time, code string) Redeemed {
	return Redeemed{base: base{CreatedAt: createdAt}, Code: code}
}
func (Redeemed) Kind() Kind { return KindRedeemed }

// Package catalog holds the static, process-lifetime item, crop, recipe and
// price tables that the rest of the engine treats as read-only ground truth.
//
// Phase 1: Item & Recipe Catalog.
// Design reference: udisondev/la2go internal/data (item_data.go, recipe
// accessors) — one static table per concern, loaded once, looked up by a
// symbolic key rather than a raw integer.
package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// ItemName is the symbolic key used everywhere off-chain: fields, inventory,
// recipes, sell tables. Never the on-chain numeric ID.
type ItemName string

// Category classifies an item for the invariants the dispatcher enforces
// (§3 invariant 6: limited items never come out of the save pipeline).
type Category string

const (
	CategorySeed     Category = "seed"
	CategoryCrop     Category = "crop"
	CategoryTool     Category = "tool"
	CategoryResource Category = "resource"
	CategoryLimited  Category = "limited"
	CategoryCurrency Category = "currency"
)

// Item is one row of the item universe table.
type Item struct {
	Name      ItemName
	Category  Category
	OnChainID int
}

// Crop describes what a seed grows into and how long that takes.
type Crop struct {
	Seed         ItemName
	HarvestsInto ItemName
	GrowTime     time.Duration
}

// Ingredient is one line of a recipe's cost.
type Ingredient struct {
	Item   ItemName
	Amount decimal.Decimal
}

// Recipe describes how to craft one unit of Item.
type Recipe struct {
	Item        ItemName
	Ingredients []Ingredient
	SFLPrice    decimal.Decimal
	Supply      int  // informational production cap, not enforced here
	Craftable   bool // false for limited items — dispatcher must reject these
	FromStock   bool // true if crafting also draws down catalog stock
}

// TreeTemplate is the default yield/recovery shape for every tree plot.
type TreeTemplate struct {
	Wood            decimal.Decimal
	RecoveryPeriod  time.Duration
}

// Catalog is the immutable, process-wide table set. All lookups are total:
// an unknown ItemName is a programmer error and the lookup panics loudly
// rather than returning a zero value a caller might silently trust.
type Catalog struct {
	items        map[ItemName]Item
	crops        map[ItemName]Crop // keyed by seed name
	recipes      map[ItemName]Recipe
	sellPrices   map[ItemName]decimal.Decimal
	nonSellable  map[ItemName]struct{}
	withdrawable map[ItemName]struct{}
	nameToID     map[ItemName]int
	idToName     map[int]ItemName
	idOrder      []ItemName // catalog ID order, for positional on-chain arrays
	redeemables  map[string]ItemName

	tree       TreeTemplate
	fieldCount int
	treeCount  int
}

var (
	once    sync.Once
	catalog *Catalog
)

// Load returns the singleton process-wide catalog, building it on first use.
// It is safe for concurrent use; the returned value must never be mutated.
func Load() *Catalog {
	once.Do(func() {
		catalog = build()
	})
	return catalog
}

// FieldCount is the number of plantable field plots (§3: N fixed by catalog).
func (c *Catalog) FieldCount() int { return c.fieldCount }

// TreeCount is the number of choppable tree plots.
func (c *Catalog) TreeCount() int { return c.treeCount }

// TreeTemplate returns the default tree shape (wood yield + recovery time).
func (c *Catalog) TreeTemplate() TreeTemplate { return c.tree }

// Item looks up an item's catalog row. Panics on an unknown name.
func (c *Catalog) Item(name ItemName) Item {
	item, ok := c.items[name]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown item %q", name))
	}
	return item
}

// HasItem reports whether name is a known item, without panicking. Used at
// the few boundaries (decoding untrusted action payloads) where an unknown
// name is a client error, not a programmer error.
func (c *Catalog) HasItem(name ItemName) bool {
	_, ok := c.items[name]
	return ok
}

// IsLimited reports whether an item is flagged limited (never craftable,
// never producible by the save pipeline).
func (c *Catalog) IsLimited(name ItemName) bool {
	return c.Item(name).Category == CategoryLimited
}

// Crop returns the crop definition for a seed. Panics if seed is not a seed.
func (c *Catalog) Crop(seed ItemName) Crop {
	crop, ok := c.crops[seed]
	if !ok {
		panic(fmt.Sprintf("catalog: %q is not a seed", seed))
	}
	return crop
}

// IsSeed reports whether name is a plantable seed.
func (c *Catalog) IsSeed(name ItemName) bool {
	_, ok := c.crops[name]
	return ok
}

// Recipe returns the crafting recipe for item. Panics if item has no recipe.
func (c *Catalog) Recipe(item ItemName) Recipe {
	recipe, ok := c.recipes[item]
	if !ok {
		panic(fmt.Sprintf("catalog: %q has no recipe", item))
	}
	return recipe
}

// HasRecipe reports whether item can be looked up via Recipe.
func (c *Catalog) HasRecipe(item ItemName) bool {
	_, ok := c.recipes[item]
	return ok
}

// SellPrice returns the SFL price per unit of item. Panics if unsellable.
func (c *Catalog) SellPrice(item ItemName) decimal.Decimal {
	price, ok := c.sellPrices[item]
	if !ok {
		panic(fmt.Sprintf("catalog: %q has no sell price", item))
	}
	return price
}

// IsSellable reports whether item can be sold and is not in the
// non-sellable subset (tools, limited items).
func (c *Catalog) IsSellable(item ItemName) bool {
	if _, blocked := c.nonSellable[item]; blocked {
		return false
	}
	_, ok := c.sellPrices[item]
	return ok
}

// IsWithdrawable reports whether item may ever leave the farm on-chain.
func (c *Catalog) IsWithdrawable(item ItemName) bool {
	_, ok := c.withdrawable[item]
	return ok
}

// OnChainID returns item's numeric on-chain identifier. Panics if unmapped.
func (c *Catalog) OnChainID(item ItemName) int {
	id, ok := c.nameToID[item]
	if !ok {
		panic(fmt.Sprintf("catalog: %q has no on-chain ID", item))
	}
	return id
}

// NameByOnChainID is the inverse of OnChainID. Panics if id is unmapped.
func (c *Catalog) NameByOnChainID(id int) ItemName {
	name, ok := c.idToName[id]
	if !ok {
		panic(fmt.Sprintf("catalog: on-chain ID %d has no item", id))
	}
	return name
}

// LookupOnChainID is the non-panicking form of NameByOnChainID, for
// boundaries where the ID comes from an untrusted client request rather
// than from internal, already-validated code (§4.7 withdrawal requests).
func (c *Catalog) LookupOnChainID(id int) (ItemName, bool) {
	name, ok := c.idToName[id]
	return name, ok
}

// Redeemable resolves a one-time promo code to the item it grants.
func (c *Catalog) Redeemable(code string) (ItemName, bool) {
	name, ok := c.redeemables[code]
	return name, ok
}

// OnChainOrder returns item names in the fixed positional order used by
// Chain.loadInventory's wei-string array (§4.5, §6).
func (c *Catalog) OnChainOrder() []ItemName {
	out := make([]ItemName, len(c.idOrder))
	copy(out, c.idOrder)
	return out
}

// Package reconcile merges authoritative on-chain balances and inventory
// into a loaded FarmState before replay (§4.5, C5).
//
// wei↔decimal conversion is itself an external collaborator (§1): this
// package consumes a Converter interface rather than hard-coding the
// wei/decimal relationship, so the core's reconcile *policy* (what
// overrides what) stays independent of the conversion *mechanism*.
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farmforge/engine/internal/catalog"
	"github.com/farmforge/engine/internal/farmstate"
)

// Converter converts on-chain wei-string amounts to off-chain decimals.
// Currency-like items use 18-decimal fixed point; supply-limited items
// (NFT-style editions) use a 1-to-1 mapping (§4.5).
type Converter interface {
	// Balance converts the SFL wei-string balance to a decimal SFL amount.
	Balance(wei string) (decimal.Decimal, error)

	// Item converts one item's on-chain wei-string amount to a decimal
	// quantity, using item's catalog-defined unit.
	Item(item catalog.ItemName, wei string) (decimal.Decimal, error)
}

// Reconcile returns a clone of state with on-chain balance and non-zero
// on-chain inventory merged in per §4.5:
//
//	farm.balance := onchain.balance
//	for each item with on-chain value > 0: farm.inventory[item] := onchain.value
//	items zero on-chain retain their off-chain value
func Reconcile(cat *catalog.Catalog, conv Converter, state *farmstate.State, onchainBalanceWei string, onchainInventoryWei []string) (*farmstate.State, error) {
	next := state.Clone()

	balance, err := conv.Balance(onchainBalanceWei)
	if err != nil {
		return nil, fmt.Errorf("reconcile: converting on-chain balance: %w", err)
	}
	next.Balance = balance

	order := cat.OnChainOrder()
	if len(onchainInventoryWei) != len(order) {
		return nil, fmt.Errorf("reconcile: on-chain inventory has %d entries, catalog expects %d", len(onchainInventoryWei), len(order))
	}

	for i, item := range order {
		qty, err := conv.Item(item, onchainInventoryWei[i])
		if err != nil {
			return nil, fmt.Errorf("reconcile: converting on-chain %q: %w", item, err)
		}
		if qty.IsPositive() {
			next.Inventory[item] = qty
		}
		// zero on-chain: item has not been withdrawn, off-chain value stands.
	}

	return next, nil
}

// Package weiconv is the reference wei↔decimal conversion utility (§1: an
// external collaborator the reconciler consumes through
// reconcile.Converter, never implements itself).
package weiconv

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farmforge/engine/internal/catalog"
)

// CurrencyDecimals is SFL's on-chain ERC-20 precision.
const CurrencyDecimals = 18

// Converter implements reconcile.Converter using each item's catalog
// category to pick a unit: currency-like items are 18-decimal fixed point,
// everything else (supply-limited resources, tools, NFT-style editions) is
// a 1-to-1 integer mapping (§4.5).
type Converter struct {
	Catalog *catalog.Catalog
}

// Balance converts the SFL wei-string balance to decimal SFL.
func (c Converter) Balance(wei string) (decimal.Decimal, error) {
	return fromWei(wei, CurrencyDecimals)
}

// Item converts an item's on-chain wei-string amount to a decimal quantity.
func (c Converter) Item(item catalog.ItemName, wei string) (decimal.Decimal, error) {
	if c.Catalog.Item(item).Category == catalog.CategoryCurrency {
		return fromWei(wei, CurrencyDecimals)
	}
	return fromWei(wei, 0)
}

func fromWei(wei string, decimals int32) (decimal.Decimal, error) {
	raw, err := decimal.NewFromString(wei)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("weiconv: parse %q: %w", wei, err)
	}
	if decimals == 0 {
		return raw, nil
	}
	return raw.Shift(-decimals), nil
}

package farmstate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farmforge/engine/internal/catalog"
)

// round applies the engine-wide half-even, 18-fractional-digit rounding
// (§4.2) so that every stored quantity matches on-chain fixed-point
// precision exactly, regardless of the arithmetic path that produced it.
func round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(DecimalPlaces)
}

// AddBalance adds amount (must be >= 0) to balance and returns the rounded
// result.
func AddBalance(balance, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("farmstate: cannot add negative balance amount %s", amount)
	}
	return round(balance.Add(amount)), nil
}

// SubBalance subtracts amount from balance. balance must remain >= 0
// (§3 invariant 2).
func SubBalance(balance, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("farmstate: cannot subtract negative balance amount %s", amount)
	}
	result := round(balance.Sub(amount))
	if result.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("farmstate: insufficient balance: have %s, need %s", balance, amount)
	}
	return result, nil
}

// AddQuantity adds amount to inv[item], creating the entry if absent.
// amount must be strictly positive: adding zero or negative is a caller bug.
func AddQuantity(inv map[catalog.ItemName]decimal.Decimal, item catalog.ItemName, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("farmstate: cannot add non-positive quantity %s of %q", amount, item)
	}
	inv[item] = round(inv[item].Add(amount))
	return nil
}

// SubQuantity subtracts amount from inv[item]. It fails if the entry is
// absent or holds less than amount. When the result reaches exactly zero the
// entry is deleted so the map never holds a zero-quantity key
// (§3 invariant 1, §9 "absent vs zero").
func SubQuantity(inv map[catalog.ItemName]decimal.Decimal, item catalog.ItemName, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("farmstate: cannot subtract non-positive quantity %s of %q", amount, item)
	}
	have, ok := inv[item]
	if !ok {
		return fmt.Errorf("farmstate: no %q in inventory", item)
	}
	result := round(have.Sub(amount))
	if result.IsNegative() {
		return fmt.Errorf("farmstate: insufficient %q: have %s, need %s", item, have, amount)
	}
	if result.IsZero() {
		delete(inv, item)
		return nil
	}
	inv[item] = result
	return nil
}

// QuantityOf returns inv[item], or zero if absent. Never returns a negative
// value.
func QuantityOf(inv map[catalog.ItemName]decimal.Decimal, item catalog.ItemName) decimal.Decimal {
	if v, ok := inv[item]; ok {
		return v
	}
	return decimal.Zero
}

// SetStock overwrites stock[item] with amount, clamped at zero and rounded.
// Neither the dispatcher nor the reconciler calls it, so stock only
// decreases within a save (§3 invariant 5).
func SetStock(stock map[catalog.ItemName]decimal.Decimal, item catalog.ItemName, amount decimal.Decimal) {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	stock[item] = round(amount)
}

// SubStock subtracts amount from stock[item]. Fails if that would drive
// stock negative (§4.4 craft: "Stock >= amount").
func SubStock(stock map[catalog.ItemName]decimal.Decimal, item catalog.ItemName, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("farmstate: cannot subtract non-positive stock %s of %q", amount, item)
	}
	have := QuantityOf(stock, item)
	result := round(have.Sub(amount))
	if result.IsNegative() {
		return fmt.Errorf("farmstate: insufficient stock of %q: have %s, need %s", item, have, amount)
	}
	stock[item] = result
	return nil
}

package action

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmforge/engine/internal/catalog"
	"github.com/farmforge/engine/internal/farmstate"
)

// Apply dispatches act against a clone of state and returns the resulting
// state. On any error the returned state is nil and the caller's original
// state is untouched — Apply never partially mutates (§4.4).
func Apply(cat *catalog.Catalog, state *farmstate.State, act Action) (*farmstate.State, error) {
	next := state.Clone()

	var err error
	switch a := act.(type) {
	case Planted:
		err = applyPlanted(cat, next, a)
	case Harvested:
		err = applyHarvested(cat, next, a)
	case Chopped:
		err = applyChopped(cat, next, a)
	case Crafted:
		err = applyCrafted(cat, next, a)
	case Sold:
		err = applySold(cat, next, a)
	case Redeemed:
		err = applyRedeemed(cat, next, a)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAction, act)
	}
	if err != nil {
		slog.Warn("action rejected", "kind", act.Kind(), "error", err)
		return nil, err
	}
	slog.Info("action applied", "kind", act.Kind())
	return next, nil
}

func applyPlanted(cat *catalog.Catalog, s *farmstate.State, a Planted) error {
	if a.Index < 0 || a.Index >= cat.FieldCount() {
		return fmt.Errorf("%w: field %d", ErrInvalidIndex, a.Index)
	}
	if !cat.HasItem(a.Item) {
		return fmt.Errorf("%w: %s", ErrUnknownItem, a.Item)
	}
	if !cat.IsSeed(a.Item) {
		return fmt.Errorf("%w: %s is not a seed", ErrUnknownItem, a.Item)
	}
	if _, occupied := s.Fields[a.Index]; occupied {
		return fmt.Errorf("%w: field %d", ErrFieldOccupied, a.Index)
	}
	if err := farmstate.SubQuantity(s.Inventory, a.Item, decimal.NewFromInt(1)); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientInventory, err)
	}
	s.Fields[a.Index] = farmstate.Field{PlantedAt: a.CreatedAt, Item: a.Item}
	return nil
}

func applyHarvested(cat *catalog.Catalog, s *farmstate.State, a Harvested) error {
	if a.Index < 0 || a.Index >= cat.FieldCount() {
		return fmt.Errorf("%w: field %d", ErrInvalidIndex, a.Index)
	}
	field, ok := s.Fields[a.Index]
	if !ok {
		return fmt.Errorf("%w: field %d", ErrFieldEmpty, a.Index)
	}
	crop := cat.Crop(field.Item)
	readyAt := field.PlantedAt.Add(crop.GrowTime)
	if a.CreatedAt.Before(readyAt) {
		return fmt.Errorf("%w: field %d ready at %s", ErrNotGrown, a.Index, readyAt)
	}
	delete(s.Fields, a.Index)
	return farmstate.AddQuantity(s.Inventory, crop.HarvestsInto, decimal.NewFromInt(1))
}

func applyChopped(cat *catalog.Catalog, s *farmstate.State, a Chopped) error {
	if a.Index < 0 || a.Index >= cat.TreeCount() {
		return fmt.Errorf("%w: tree %d", ErrInvalidIndex, a.Index)
	}
	if a.Item != "Axe" {
		return fmt.Errorf("%w: chopping requires an Axe, got %s", ErrUnknownItem, a.Item)
	}
	if err := farmstate.SubQuantity(s.Inventory, "Axe", decimal.NewFromInt(1)); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientInventory, err)
	}

	tmpl := cat.TreeTemplate()
	tree, exists := s.Trees[a.Index]
	if !exists {
		tree = farmstate.Tree{Wood: tmpl.Wood}
	}

	if tree.Wood.IsZero() {
		recoveredAt := tree.ChoppedAt.Add(tmpl.RecoveryPeriod)
		if a.CreatedAt.Before(recoveredAt) {
			return fmt.Errorf("%w: tree %d recovers at %s", ErrTreeNotRecovered, a.Index, recoveredAt)
		}
		tree.Wood = tmpl.Wood
	}

	tree.Wood = tree.Wood.Sub(decimal.NewFromInt(1))
	if tree.Wood.IsZero() {
		tree.ChoppedAt = a.CreatedAt
	}
	s.Trees[a.Index] = tree

	return farmstate.AddQuantity(s.Inventory, "Wood", decimal.NewFromInt(1))
}

func applyCrafted(cat *catalog.Catalog, s *farmstate.State, a Crafted) error {
	if !cat.HasItem(a.Item) {
		return fmt.Errorf("%w: %s", ErrUnknownItem, a.Item)
	}
	if !a.Amount.IsPositive() {
		return fmt.Errorf("%w: craft amount must be positive, got %s", ErrInvalidAmount, a.Amount)
	}
	if cat.IsLimited(a.Item) || !cat.HasRecipe(a.Item) || !cat.Recipe(a.Item).Craftable {
		return fmt.Errorf("%w: %s", ErrNotCraftable, a.Item)
	}
	recipe := cat.Recipe(a.Item)

	for _, ing := range recipe.Ingredients {
		need := ing.Amount.Mul(a.Amount)
		if farmstate.QuantityOf(s.Inventory, ing.Item).LessThan(need) {
			return fmt.Errorf("%w: need %s %s, have %s", ErrInsufficientInventory, need, ing.Item, farmstate.QuantityOf(s.Inventory, ing.Item))
		}
	}
	sflCost := recipe.SFLPrice.Mul(a.Amount)
	if s.Balance.LessThan(sflCost) {
		return fmt.Errorf("%w: need %s SFL, have %s", ErrInsufficientBalance, sflCost, s.Balance)
	}
	if recipe.FromStock {
		if farmstate.QuantityOf(s.Stock, a.Item).LessThan(a.Amount) {
			return fmt.Errorf("%w: need %s %s, have %s", ErrInsufficientStock, a.Amount, a.Item, farmstate.QuantityOf(s.Stock, a.Item))
		}
	}

	for _, ing := range recipe.Ingredients {
		if err := farmstate.SubQuantity(s.Inventory, ing.Item, ing.Amount.Mul(a.Amount)); err != nil {
			return fmt.Errorf("%w: %v", ErrInsufficientInventory, err)
		}
	}
	newBalance, err := farmstate.SubBalance(s.Balance, sflCost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientBalance, err)
	}
	s.Balance = newBalance
	if recipe.FromStock {
		if err := farmstate.SubStock(s.Stock, a.Item, a.Amount); err != nil {
			return fmt.Errorf("%w: %v", ErrInsufficientStock, err)
		}
	}
	return farmstate.AddQuantity(s.Inventory, a.Item, a.Amount)
}

func applySold(cat *catalog.Catalog, s *farmstate.State, a Sold) error {
	if !cat.HasItem(a.Item) {
		return fmt.Errorf("%w: %s", ErrUnknownItem, a.Item)
	}
	if !cat.IsSellable(a.Item) {
		return fmt.Errorf("%w: %s", ErrNotSellable, a.Item)
	}
	if !a.Amount.IsPositive() {
		return fmt.Errorf("%w: sell amount must be positive, got %s", ErrInvalidAmount, a.Amount)
	}
	if err := farmstate.SubQuantity(s.Inventory, a.Item, a.Amount); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientInventory, err)
	}
	proceeds := cat.SellPrice(a.Item).Mul(a.Amount)
	newBalance, err := farmstate.AddBalance(s.Balance, proceeds)
	if err != nil {
		return err
	}
	s.Balance = newBalance
	return nil
}

func applyRedeemed(cat *catalog.Catalog, s *farmstate.State, a Redeemed) error {
	item, ok := cat.Redeemable(a.Code)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRedeemCode, a.Code)
	}
	if _, used := s.Redeemed[a.Code]; used {
		return fmt.Errorf("%w: %s", ErrAlreadyRedeemed, a.Code)
	}
	s.Redeemed[a.Code] = struct{}{}
	return farmstate.AddQuantity(s.Inventory, item, decimal.NewFromInt(1))
}

// Replay applies actions in order to a clone of state, failing the whole
// batch on the first error (§4.4, §7 "no best-effort"). The caller's
// original state is untouched on any failure.
func Replay(cat *catalog.Catalog, state *farmstate.State, actions []Action) (*farmstate.State, error) {
	current := state
	for i, act := range actions {
		next, err := Apply(cat, current, act)
		if err != nil {
			return nil, fmt.Errorf("action %d (%s) at %s: %w", i, act.Kind(), act.Timestamp().Format(time.RFC3339), err)
		}
		current = next
	}
	return current, nil
}

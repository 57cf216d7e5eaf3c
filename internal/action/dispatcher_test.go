package action

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmforge/engine/internal/catalog"
	"github.com/farmforge/engine/internal/farmstate"
)

func newTestState() *farmstate.State {
	s := farmstate.New("0xfarmer")
	s.Balance = decimal.NewFromInt(10)
	return s
}

func TestApply_PlantHarvest(t *testing.T) {
	cat := catalog.Load()
	s := newTestState()
	s.Inventory["Sunflower Seed"] = decimal.NewFromInt(1)

	plantedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	next, err := Apply(cat, s, NewPlanted(plantedAt, 0, "Sunflower Seed"))
	if err != nil {
		t.Fatalf("Apply(planted) error: %v", err)
	}
	if _, has := next.Inventory["Sunflower Seed"]; has {
		t.Error("seed still in inventory after planting")
	}

	readyAt := plantedAt.Add(cat.Crop("Sunflower Seed").GrowTime)
	if _, err := Apply(cat, next, NewHarvested(readyAt.Add(-time.Second), 0)); !errors.Is(err, ErrNotGrown) {
		t.Errorf("harvest before ready: err = %v, want %v", err, ErrNotGrown)
	}

	harvested, err := Apply(cat, next, NewHarvested(readyAt, 0))
	if err != nil {
		t.Fatalf("Apply(harvested) error: %v", err)
	}
	if !farmstate.QuantityOf(harvested.Inventory, "Sunflower").Equal(decimal.NewFromInt(1)) {
		t.Errorf("Sunflower quantity = %s, want 1", farmstate.QuantityOf(harvested.Inventory, "Sunflower"))
	}
	if _, occupied := harvested.Fields[0]; occupied {
		t.Error("field still occupied after harvest")
	}

	// original state untouched.
	if _, has := s.Fields[0]; has {
		t.Error("Apply mutated the original state's Fields")
	}
}

func TestApply_PlantOccupiedField(t *testing.T) {
	cat := catalog.Load()
	s := newTestState()
	s.Fields[0] = farmstate.Field{Item: "Potato Seed"}
	s.Inventory["Sunflower Seed"] = decimal.NewFromInt(1)

	_, err := Apply(cat, s, NewPlanted(time.Now(), 0, "Sunflower Seed"))
	if !errors.Is(err, ErrFieldOccupied) {
		t.Errorf("err = %v, want %v", err, ErrFieldOccupied)
	}
}

func TestApply_ChopTreeRecovery(t *testing.T) {
	cat := catalog.Load()
	s := newTestState()
	s.Inventory["Axe"] = decimal.NewFromInt(10)

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	current := s
	for i := 0; i < 3; i++ {
		next, err := Apply(cat, current, NewChopped(t0, 0, "Axe"))
		if err != nil {
			t.Fatalf("chop %d error: %v", i, err)
		}
		current = next
	}
	// tree yields Wood=3 per template; fourth chop before recovery must fail.
	if _, err := Apply(cat, current, NewChopped(t0, 0, "Axe")); !errors.Is(err, ErrTreeNotRecovered) {
		t.Errorf("chop after exhaustion: err = %v, want %v", err, ErrTreeNotRecovered)
	}

	recoveredAt := t0.Add(cat.TreeTemplate().RecoveryPeriod)
	if _, err := Apply(cat, current, NewChopped(recoveredAt, 0, "Axe")); err != nil {
		t.Errorf("chop after recovery error: %v", err)
	}
}

func TestApply_CraftDrawsIngredientsAndBalance(t *testing.T) {
	cat := catalog.Load()
	s := newTestState()
	s.Inventory["Wood"] = decimal.NewFromInt(1)

	next, err := Apply(cat, s, NewCrafted(time.Now(), "Axe", decimal.NewFromInt(1)))
	if err != nil {
		t.Fatalf("Apply(crafted) error: %v", err)
	}
	if !farmstate.QuantityOf(next.Inventory, "Axe").Equal(decimal.NewFromInt(1)) {
		t.Errorf("Axe quantity = %s, want 1", farmstate.QuantityOf(next.Inventory, "Axe"))
	}
	if _, has := next.Inventory["Wood"]; has {
		t.Error("Wood ingredient not consumed")
	}
	wantBalance := s.Balance.Sub(cat.Recipe("Axe").SFLPrice)
	if !next.Balance.Equal(wantBalance) {
		t.Errorf("Balance = %s, want %s", next.Balance, wantBalance)
	}
}

func TestApply_CraftLimitedItemRejected(t *testing.T) {
	cat := catalog.Load()
	s := newTestState()
	if _, err := Apply(cat, s, NewCrafted(time.Now(), "Chicken Coop", decimal.NewFromInt(1))); !errors.Is(err, ErrNotCraftable) {
		t.Errorf("err = %v, want %v", err, ErrNotCraftable)
	}
}

func TestApply_SellUnsellableRejected(t *testing.T) {
	cat := catalog.Load()
	s := newTestState()
	s.Inventory["Axe"] = decimal.NewFromInt(1)
	if _, err := Apply(cat, s, NewSold(time.Now(), "Axe", decimal.NewFromInt(1))); !errors.Is(err, ErrNotSellable) {
		t.Errorf("err = %v, want %v", err, ErrNotSellable)
	}
}

func TestApply_SellCreditsBalance(t *testing.T) {
	cat := catalog.Load()
	s := newTestState()
	s.Inventory["Wood"] = decimal.NewFromInt(2)

	next, err := Apply(cat, s, NewSold(time.Now(), "Wood", decimal.NewFromInt(2)))
	if err != nil {
		t.Fatalf("Apply(sold) error: %v", err)
	}
	want := s.Balance.Add(cat.SellPrice("Wood").Mul(decimal.NewFromInt(2)))
	if !next.Balance.Equal(want) {
		t.Errorf("Balance = %s, want %s", next.Balance, want)
	}
}

func TestApply_RedeemedOnceOnly(t *testing.T) {
	cat := catalog.Load()
	s := newTestState()

	next, err := Apply(cat, s, NewRedeemed(time.Now(), "HARVESTFEST"))
	if err != nil {
		t.Fatalf("Apply(redeemed) error: %v", err)
	}
	if !farmstate.QuantityOf(next.Inventory, "Wood").Equal(decimal.NewFromInt(1)) {
		t.Errorf("Wood quantity = %s, want 1", farmstate.QuantityOf(next.Inventory, "Wood"))
	}

	if _, err := Apply(cat, next, NewRedeemed(time.Now(), "HARVESTFEST")); !errors.Is(err, ErrAlreadyRedeemed) {
		t.Errorf("second redeem: err = %v, want %v", err, ErrAlreadyRedeemed)
	}
}

func TestReplay_FailsWholeBatchOnFirstError(t *testing.T) {
	cat := catalog.Load()
	s := newTestState()

	actions := []Action{
		NewRedeemed(time.Now(), "HARVESTFEST"),
		NewRedeemed(time.Now(), "NOT-A-CODE"),
	}
	_, err := Replay(cat, s, actions)
	if !errors.Is(err, ErrUnknownRedeemCode) {
		t.Fatalf("err = %v, want %v", err, ErrUnknownRedeemCode)
	}
	if _, has := s.Inventory["Wood"]; has {
		t.Error("original state mutated despite batch failure")
	}
}

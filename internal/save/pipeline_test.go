package save

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/farmforge/engine/internal/action"
	"github.com/farmforge/engine/internal/catalog"
	"github.com/farmforge/engine/internal/farmstate"
	"github.com/farmforge/engine/internal/onchain"
	"github.com/farmforge/engine/internal/pgrepo"
	"github.com/farmforge/engine/internal/ports"
	"github.com/farmforge/engine/internal/temporal"
	"github.com/farmforge/engine/internal/weiconv"
)

const testFarmID = int64(1)
const testOwner = "0xfarmer"

// PipelineSuite wires the fake repository and in-memory chain the way
// integration tests wire a real database, so each test starts from a fresh
// seeded farm without repeating the setup boilerplate.
type PipelineSuite struct {
	suite.Suite
	cat      *catalog.Catalog
	repo     *pgrepo.Fake
	chain    *onchain.Chain
	pipeline *Pipeline
	fixedNow time.Time
}

func (s *PipelineSuite) SetupTest() {
	s.cat = catalog.Load()
	s.repo = pgrepo.NewFake()
	s.repo.Seed(ports.Farm{
		ID:      testFarmID,
		Address: testOwner,
		State:   farmstate.New(testOwner).ToDocument(),
	})

	s.chain = onchain.New(s.cat)
	s.chain.SetOwner(testFarmID, testOwner)
	s.chain.SetBalance(testOwner, "0")

	s.fixedNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.pipeline = &Pipeline{
		Catalog:    s.cat,
		Converter:  weiconv.Converter{Catalog: s.cat},
		Repository: s.repo,
		Events:     s.repo,
		Chain:      s.chain,
		Now:        func() time.Time { return s.fixedNow },
	}
}

func (s *PipelineSuite) TestSave_CommitsAndAudits() {
	req := Request{
		FarmID: testFarmID,
		Sender: testOwner,
		Actions: []action.Action{
			action.NewRedeemed(s.fixedNow.Add(-time.Second), "HARVESTFEST"),
		},
	}

	state, err := s.pipeline.Save(s.T().Context(), req)
	s.Require().NoError(err)
	s.Require().True(farmstate.QuantityOf(state.Inventory, "Wood").Equal(decimal.NewFromInt(1)))

	events := s.repo.Events(testFarmID)
	s.Require().Len(events, 1)
	s.Require().Equal(string(action.KindRedeemed), events[0].Kind)

	farm, err := s.repo.GetFarmByID(s.T().Context(), testFarmID)
	s.Require().NoError(err)
	s.Require().NotEqual([32]byte{}, farm.Session)
}

func (s *PipelineSuite) TestSave_RejectsWrongSender() {
	req := Request{
		FarmID:  testFarmID,
		Sender:  "0xsomeoneelse",
		Actions: nil,
	}
	_, err := s.pipeline.Save(s.T().Context(), req)
	s.Require().ErrorIs(err, ports.ErrNotOwner)
}

func (s *PipelineSuite) TestSave_UnknownFarm() {
	req := Request{FarmID: 999, Sender: testOwner}
	_, err := s.pipeline.Save(s.T().Context(), req)
	s.Require().ErrorIs(err, ports.ErrFarmNotFound)
}

func (s *PipelineSuite) TestSave_ReconcilesOnChainBalance() {
	s.chain.SetBalance(testOwner, "3000000000000000000") // 3 SFL

	req := Request{FarmID: testFarmID, Sender: testOwner}
	state, err := s.pipeline.Save(s.T().Context(), req)
	s.Require().NoError(err)
	s.Require().True(state.Balance.Equal(decimal.NewFromInt(3)))
}

func (s *PipelineSuite) TestSave_TemporalViolationLeavesStateUntouched() {
	req := Request{
		FarmID: testFarmID,
		Sender: testOwner,
		Actions: []action.Action{
			action.NewRedeemed(s.fixedNow.Add(time.Hour), "HARVESTFEST"), // far in the future
		},
	}
	_, err := s.pipeline.Save(s.T().Context(), req)
	s.Require().Error(err)

	farm, err := s.repo.GetFarmByID(s.T().Context(), testFarmID)
	s.Require().NoError(err)
	s.Require().Equal([32]byte{}, farm.Session)
}

// The remaining tests are the six named §8 scenarios, reproduced against
// the full pipeline rather than a single package.

func (s *PipelineSuite) TestScenario1_HarvestFlow() {
	seed := farmstate.New(testOwner)
	seed.Inventory["Sunflower Seed"] = decimal.NewFromInt(1)
	s.repo.Seed(ports.Farm{ID: testFarmID, Address: testOwner, State: seed.ToDocument()})

	plantAt := s.fixedNow.Add(-60 * time.Second)
	req := Request{
		FarmID: testFarmID,
		Sender: testOwner,
		Actions: []action.Action{
			action.NewPlanted(plantAt, 4, "Sunflower Seed"),
			action.NewHarvested(s.fixedNow, 4),
		},
	}

	state, err := s.pipeline.Save(s.T().Context(), req)
	s.Require().NoError(err)
	s.Require().True(farmstate.QuantityOf(state.Inventory, "Sunflower").Equal(decimal.NewFromInt(1)))
	_, occupied := state.Fields[4]
	s.Require().False(occupied)
}

func (s *PipelineSuite) TestScenario2_OutOfOrderRejection() {
	seed := farmstate.New(testOwner)
	seed.Inventory["Sunflower Seed"] = decimal.NewFromInt(1)
	s.repo.Seed(ports.Farm{ID: testFarmID, Address: testOwner, State: seed.ToDocument()})

	req := Request{
		FarmID: testFarmID,
		Sender: testOwner,
		Actions: []action.Action{
			action.NewPlanted(s.fixedNow, 4, "Sunflower Seed"),
			action.NewHarvested(s.fixedNow.Add(-60*time.Second), 4),
		},
	}

	_, err := s.pipeline.Save(s.T().Context(), req)
	s.Require().ErrorIs(err, temporal.ErrOutOfOrder)

	farm, err := s.repo.GetFarmByID(s.T().Context(), testFarmID)
	s.Require().NoError(err)
	s.Require().Equal([32]byte{}, farm.Session)
}

func (s *PipelineSuite) TestScenario3_CraftWithReconcile() {
	seed := farmstate.New(testOwner)
	seed.Balance = decimal.NewFromInt(20)
	seed.Stock["Potato Seed"] = decimal.NewFromInt(7)
	s.repo.Seed(ports.Farm{ID: testFarmID, Address: testOwner, State: seed.ToDocument()})

	s.chain.SetBalance(testOwner, "120000000000000000000") // 120 SFL
	onchainInventory := make([]string, len(s.cat.OnChainOrder()))
	for i := range onchainInventory {
		onchainInventory[i] = "0"
	}
	onchainInventory[0] = "1" // Sunflower Seed
	onchainInventory[1] = "2" // Sunflower
	s.chain.SetInventory(testOwner, onchainInventory)

	req := Request{
		FarmID: testFarmID,
		Sender: testOwner,
		Actions: []action.Action{
			action.NewCrafted(s.fixedNow, "Potato Seed", decimal.NewFromInt(5)),
		},
	}

	state, err := s.pipeline.Save(s.T().Context(), req)
	s.Require().NoError(err)
	s.Require().True(state.Balance.Equal(decimal.RequireFromString("119.9")), "balance = %s", state.Balance)
	s.Require().True(farmstate.QuantityOf(state.Stock, "Potato Seed").Equal(decimal.NewFromInt(2)))
	s.Require().True(farmstate.QuantityOf(state.Inventory, "Potato Seed").Equal(decimal.NewFromInt(5)))
	s.Require().True(farmstate.QuantityOf(state.Inventory, "Sunflower Seed").Equal(decimal.NewFromInt(1)))
	s.Require().True(farmstate.QuantityOf(state.Inventory, "Sunflower").Equal(decimal.NewFromInt(2)))
}

func (s *PipelineSuite) TestScenario4_LimitedItemRefusal() {
	req := Request{
		FarmID: testFarmID,
		Sender: testOwner,
		Actions: []action.Action{
			action.NewCrafted(s.fixedNow, "Chicken Coop", decimal.NewFromInt(1)),
		},
	}

	_, err := s.pipeline.Save(s.T().Context(), req)
	s.Require().ErrorIs(err, action.ErrNotCraftable)

	farm, err := s.repo.GetFarmByID(s.T().Context(), testFarmID)
	s.Require().NoError(err)
	s.Require().Equal([32]byte{}, farm.Session)
}

func (s *PipelineSuite) TestScenario5_DensityCap() {
	seed := farmstate.New(testOwner)
	seed.Inventory["Wood"] = decimal.NewFromInt(3)
	s.repo.Seed(ports.Farm{ID: testFarmID, Address: testOwner, State: seed.ToDocument()})

	req := Request{
		FarmID: testFarmID,
		Sender: testOwner,
		Actions: []action.Action{
			action.NewSold(s.fixedNow.Add(-400*time.Millisecond), "Wood", decimal.NewFromInt(1)),
			action.NewSold(s.fixedNow.Add(-250*time.Millisecond), "Wood", decimal.NewFromInt(1)),
			action.NewSold(s.fixedNow.Add(-50*time.Millisecond), "Wood", decimal.NewFromInt(1)),
		},
	}

	_, err := s.pipeline.Save(s.T().Context(), req)
	s.Require().ErrorIs(err, temporal.ErrTooDense)
}

func (s *PipelineSuite) TestScenario6_TreeChopRecovery() {
	seed := farmstate.New(testOwner)
	seed.Inventory["Axe"] = decimal.NewFromInt(1)
	seed.Trees[0] = farmstate.Tree{
		Wood:      decimal.Zero,
		ChoppedAt: s.fixedNow.Add(-150 * time.Minute),
	}
	s.repo.Seed(ports.Farm{ID: testFarmID, Address: testOwner, State: seed.ToDocument()})

	req := Request{
		FarmID: testFarmID,
		Sender: testOwner,
		Actions: []action.Action{
			action.NewChopped(s.fixedNow, 0, "Axe"),
		},
	}

	state, err := s.pipeline.Save(s.T().Context(), req)
	s.Require().NoError(err)
	s.Require().True(state.Trees[0].Wood.Equal(decimal.NewFromInt(2))) // refilled to 3, then chopped once
	s.Require().True(farmstate.QuantityOf(state.Inventory, "Wood").Equal(decimal.NewFromInt(1)))
	s.Require().True(farmstate.QuantityOf(state.Inventory, "Axe").IsZero())
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

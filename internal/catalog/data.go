package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// build assembles the static catalog. This is the one place item, crop,
// recipe and price data is allowed to be a literal table — everywhere else
// in the engine goes through the Catalog accessors above.
func build() *Catalog {
	c := &Catalog{
		items:        make(map[ItemName]Item),
		crops:        make(map[ItemName]Crop),
		recipes:      make(map[ItemName]Recipe),
		sellPrices:   make(map[ItemName]decimal.Decimal),
		nonSellable:  make(map[ItemName]struct{}),
		withdrawable: make(map[ItemName]struct{}),
		nameToID:     make(map[ItemName]int),
		idToName:     make(map[int]ItemName),
		fieldCount:   22,
		treeCount:    10,
		tree: TreeTemplate{
			Wood:           decimal.NewFromInt(3),
			RecoveryPeriod: 120 * time.Minute,
		},
	}

	type row struct {
		name     ItemName
		category Category
		id       int
	}

	rows := []row{
		{"Sunflower Seed", CategorySeed, 0},
		{"Sunflower", CategoryCrop, 1},
		{"Potato Seed", CategorySeed, 2},
		{"Potato", CategoryCrop, 3},
		{"Pumpkin Seed", CategorySeed, 4},
		{"Pumpkin", CategoryCrop, 5},
		{"Carrot Seed", CategorySeed, 6},
		{"Carrot", CategoryCrop, 7},
		{"Cabbage Seed", CategorySeed, 8},
		{"Cabbage", CategoryCrop, 9},
		{"Wood", CategoryResource, 10},
		{"Stone", CategoryResource, 11},
		{"Axe", CategoryTool, 12},
		{"Pickaxe", CategoryTool, 13},
		{"Chicken Coop", CategoryLimited, 14},
		{"Golden Egg", CategoryLimited, 15},
		{"Promo Token", CategoryResource, 16},
	}
	for _, r := range rows {
		c.items[r.name] = Item{Name: r.name, Category: r.category, OnChainID: r.id}
		c.nameToID[r.name] = r.id
		c.idToName[r.id] = r.name
		c.idOrder = append(c.idOrder, r.name)
	}

	crops := []Crop{
		{Seed: "Sunflower Seed", HarvestsInto: "Sunflower", GrowTime: 1 * time.Minute},
		{Seed: "Potato Seed", HarvestsInto: "Potato", GrowTime: 5 * time.Minute},
		{Seed: "Pumpkin Seed", HarvestsInto: "Pumpkin", GrowTime: 30 * time.Minute},
		{Seed: "Carrot Seed", HarvestsInto: "Carrot", GrowTime: 10 * time.Minute},
		{Seed: "Cabbage Seed", HarvestsInto: "Cabbage", GrowTime: 20 * time.Minute},
	}
	for _, crop := range crops {
		c.crops[crop.Seed] = crop
	}

	d := func(s string) decimal.Decimal {
		v, err := decimal.NewFromString(s)
		if err != nil {
			panic(err)
		}
		return v
	}

	recipes := []Recipe{
		{Item: "Sunflower Seed", SFLPrice: d("0.01"), Supply: 1000, Craftable: true, FromStock: true},
		{Item: "Potato Seed", SFLPrice: d("0.02"), Supply: 1000, Craftable: true, FromStock: true},
		{Item: "Pumpkin Seed", SFLPrice: d("0.05"), Supply: 500, Craftable: true, FromStock: true},
		{Item: "Carrot Seed", SFLPrice: d("0.03"), Supply: 500, Craftable: true, FromStock: true},
		{Item: "Cabbage Seed", SFLPrice: d("0.04"), Supply: 500, Craftable: true, FromStock: true},
		{
			Item:      "Axe",
			SFLPrice:  d("0"),
			Supply:    -1,
			Craftable: true,
			FromStock: false,
			Ingredients: []Ingredient{
				{Item: "Wood", Amount: d("1")},
			},
		},
		{
			Item:      "Pickaxe",
			SFLPrice:  d("0"),
			Supply:    -1,
			Craftable: true,
			FromStock: false,
			Ingredients: []Ingredient{
				{Item: "Wood", Amount: d("1")},
				{Item: "Stone", Amount: d("1")},
			},
		},
		{Item: "Chicken Coop", Craftable: false},
		{Item: "Golden Egg", Craftable: false},
	}
	for _, r := range recipes {
		c.recipes[r.Item] = r
	}

	sellPrices := map[ItemName]string{
		"Sunflower": "0.01",
		"Potato":    "0.03",
		"Pumpkin":   "0.4",
		"Carrot":    "0.08",
		"Cabbage":   "0.1",
		"Wood":      "0.02",
		"Stone":     "0.05",
	}
	for name, price := range sellPrices {
		c.sellPrices[name] = d(price)
	}

	nonSellable := []ItemName{"Axe", "Pickaxe", "Chicken Coop", "Golden Egg"}
	for _, name := range nonSellable {
		c.nonSellable[name] = struct{}{}
	}

	withdrawable := []ItemName{"Axe", "Pickaxe", "Wood", "Stone", "Chicken Coop", "Golden Egg"}
	for _, name := range withdrawable {
		c.withdrawable[name] = struct{}{}
	}

	c.redeemables = map[string]ItemName{
		"WELCOME2024": "Promo Token",
		"HARVESTFEST": "Wood",
	}

	return c
}

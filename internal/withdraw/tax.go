package withdraw

import "github.com/shopspring/decimal"

// taxTier is one break of the piecewise withdrawal tax schedule (§4.7).
type taxTier struct {
	belowSFL string // exclusive upper bound; "" marks the floor tier
	bps      int
}

// Tax schedule constants. The schedule itself is a design choice per §4.7
// ("design choice, constants in catalog") — larger withdrawals are taxed
// less, floors out at FloorTaxBps.
var taxSchedule = []taxTier{
	{belowSFL: "10", bps: 3000},
	{belowSFL: "100", bps: 2500},
	{belowSFL: "1000", bps: 2000},
	{belowSFL: "10000", bps: 1000},
	{belowSFL: "", bps: FloorTaxBps},
}

// FloorTaxBps is the minimum tax rate, applied to withdrawals at or above
// the schedule's largest named threshold.
const FloorTaxBps = 500

// TaxBasisPoints returns the tax rate, in basis points (1/100 of a
// percent), for a withdrawal of sfl SFL.
func TaxBasisPoints(sfl decimal.Decimal) int {
	for _, tier := range taxSchedule {
		if tier.belowSFL == "" {
			return tier.bps
		}
		threshold, err := decimal.NewFromString(tier.belowSFL)
		if err != nil {
			panic(err) // programmer error: malformed schedule literal
		}
		if sfl.LessThan(threshold) {
			return tier.bps
		}
	}
	return FloorTaxBps
}

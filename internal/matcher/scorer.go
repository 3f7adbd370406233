package matcher

import (
	"github.com/shopspring/decimal"

	"github.com/ganorabricks/figfinder/internal/domain"
)

// Profit returns the candidate's market value minus the cost of its matched
// parts. Market value is the six-month average sale price, used condition
// preferred, new as fallback. When no price data exists the profit is zero:
// callers cannot (and must not) distinguish "no data" from break-even here.
func Profit(c *domain.Candidate) decimal.Decimal {
	if len(c.MatchedDetails) == 0 {
		return decimal.Zero
	}
	market, ok := c.Prices.MarketValue()
	if !ok {
		return decimal.Zero
	}
	return market.Sub(PartsCost(c))
}

// PartsCost returns the summed cost of the currently matched parts. It
// ranks partial candidates, where profit is not computable because the
// build is incomplete.
func PartsCost(c *domain.Candidate) decimal.Decimal {
	cost := decimal.Zero
	for _, detail := range c.MatchedDetails {
		cost = cost.Add(detail.TotalPrice)
	}
	return cost
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

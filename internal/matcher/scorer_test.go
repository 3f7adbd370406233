package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ganorabricks/figfinder/internal/domain"
)

func candidateWithCost(total string) *domain.Candidate {
	return &domain.Candidate{
		MatchedDetails: []domain.MatchedPartDetail{
			{PartID: "3626", ColorID: 4, Quantity: 1, Price: price(total), TotalPrice: price(total)},
		},
	}
}

func TestProfit_PrefersUsedCondition(t *testing.T) {
	c := candidateWithCost("2.00")
	c.Prices = &domain.PriceGuide{
		OrderedNew:  &domain.PriceDetail{AvgPrice: price("12.00")},
		OrderedUsed: &domain.PriceDetail{AvgPrice: price("8.50")},
	}

	assert.True(t, Profit(c).Equal(price("6.50")), "8.50 used - 2.00 cost")
}

func TestProfit_FallsBackToNew(t *testing.T) {
	c := candidateWithCost("2.00")
	c.Prices = &domain.PriceGuide{
		OrderedNew: &domain.PriceDetail{AvgPrice: price("12.00")},
	}

	assert.True(t, Profit(c).Equal(price("10.00")))
}

func TestProfit_ZeroUsedAverageFallsBackToNew(t *testing.T) {
	c := candidateWithCost("2.00")
	c.Prices = &domain.PriceGuide{
		OrderedNew:  &domain.PriceDetail{AvgPrice: price("5.00")},
		OrderedUsed: &domain.PriceDetail{AvgPrice: price("0")},
	}

	assert.True(t, Profit(c).Equal(price("3.00")))
}

func TestProfit_NoPriceDataIsZero(t *testing.T) {
	c := candidateWithCost("2.00")

	assert.True(t, Profit(c).IsZero(), "nil guide degrades to zero, not an error")

	c.Prices = &domain.PriceGuide{}
	assert.True(t, Profit(c).IsZero(), "empty guide degrades to zero")
}

func TestProfit_NoMatchedPartsIsZero(t *testing.T) {
	c := &domain.Candidate{
		Prices: &domain.PriceGuide{OrderedUsed: &domain.PriceDetail{AvgPrice: price("9.99")}},
	}

	assert.True(t, Profit(c).IsZero())
}

func TestProfit_CanBeNegative(t *testing.T) {
	c := candidateWithCost("15.00")
	c.Prices = &domain.PriceGuide{OrderedUsed: &domain.PriceDetail{AvgPrice: price("8.00")}}

	assert.True(t, Profit(c).Equal(price("-7.00")))
}

func TestPartsCost(t *testing.T) {
	c := &domain.Candidate{
		MatchedDetails: []domain.MatchedPartDetail{
			{TotalPrice: price("1.25")},
			{TotalPrice: price("0.50")},
			{TotalPrice: price("3.00")},
		},
	}

	assert.True(t, PartsCost(c).Equal(price("4.75")))
	assert.True(t, PartsCost(&domain.Candidate{}).IsZero())
}

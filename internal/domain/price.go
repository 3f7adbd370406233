package domain

import "github.com/shopspring/decimal"

// PriceDetail summarizes one condition section of a BrickLink price guide.
type PriceDetail struct {
	Lots        int             `json:"lots"`
	Quantity    int             `json:"quantity"`
	MinPrice    decimal.Decimal `json:"min_price"`
	AvgPrice    decimal.Decimal `json:"avg_price"`
	QtyAvgPrice decimal.Decimal `json:"qty_avg_price"`
	MaxPrice    decimal.Decimal `json:"max_price"`
}

// PriceGuide holds the price guide sections for a minifigure. The "ordered"
// sections cover completed sales in the last six months, the "inventory"
// sections current listings. A nil section means no data was available;
// callers treat absence as zero, never as an error.
type PriceGuide struct {
	OrderedNew    *PriceDetail `json:"ordered_new,omitempty"`
	OrderedUsed   *PriceDetail `json:"ordered_used,omitempty"`
	InventoryNew  *PriceDetail `json:"inventory_new,omitempty"`
	InventoryUsed *PriceDetail `json:"inventory_used,omitempty"`
}

// MarketValue returns the six-month average sale price, preferring used
// condition over new (used is the realistic resale price). ok is false when
// neither condition carries a positive average.
func (g *PriceGuide) MarketValue() (value decimal.Decimal, ok bool) {
	if g == nil {
		return decimal.Zero, false
	}
	if g.OrderedUsed != nil && g.OrderedUsed.AvgPrice.IsPositive() {
		return g.OrderedUsed.AvgPrice, true
	}
	if g.OrderedNew != nil && g.OrderedNew.AvgPrice.IsPositive() {
		return g.OrderedNew.AvgPrice, true
	}
	return decimal.Zero, false
}

package bricklink

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ganorabricks/figfinder/internal/domain"
	"github.com/ganorabricks/figfinder/internal/metrics"
)

// The price guide summary page renders four rows (6-month sales and
// current inventory, each in new and used condition). Every row carries
// two counts (lots, quantity) and four prices (min, avg, qty avg, max).
var (
	priceGuidePricePattern = regexp.MustCompile(`US \$([0-9,.]+)`)
	priceGuideCountPattern = regexp.MustCompile(`&nbsp;(\d+)&nbsp;</TD>`)
)

const (
	priceGuideMinPrices = 16
	priceGuideMinCounts = 8
)

// GetPriceGuide scrapes the price guide summary for a minifigure. Returns
// domain.ErrPriceGuideNotFound when the page has no sales data, which is
// common for obscure or retired listings.
func (c *Client) GetPriceGuide(ctx context.Context, minifigID string) (*domain.PriceGuide, error) {
	start := time.Now()
	defer func() {
		metrics.RemoteFetchDuration.WithLabelValues(metrics.KindPriceGuide).Observe(time.Since(start).Seconds())
	}()

	params := url.Values{
		"a":           {"M"},
		"itemID":      {minifigID},
		"colorID":     {"0"},
		"vcID":        {"1"}, // USD
		"viewExclude": {"Y"},
		"ajView":      {"Y"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.priceGuideURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", priceGuideUserAgent)

	resp, err := c.web.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price guide request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price guide: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read price guide: %w", err)
	}

	guide, err := parsePriceGuide(string(body))
	if err != nil {
		return nil, fmt.Errorf("minifig %s: %w", minifigID, err)
	}
	return guide, nil
}

// parsePriceGuide extracts the four price sections from the summary HTML.
func parsePriceGuide(html string) (*domain.PriceGuide, error) {
	var prices []decimal.Decimal
	for _, m := range priceGuidePricePattern.FindAllStringSubmatch(html, -1) {
		p, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			return nil, fmt.Errorf("bad price %q: %w", m[1], err)
		}
		prices = append(prices, p)
	}

	var counts []int
	for _, m := range priceGuideCountPattern.FindAllStringSubmatch(html, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("bad count %q: %w", m[1], err)
		}
		counts = append(counts, n)
	}

	if len(prices) < priceGuideMinPrices || len(counts) < priceGuideMinCounts {
		return nil, domain.ErrPriceGuideNotFound
	}

	section := func(row int) *domain.PriceDetail {
		return &domain.PriceDetail{
			Lots:        counts[row*2],
			Quantity:    counts[row*2+1],
			MinPrice:    prices[row*4],
			AvgPrice:    prices[row*4+1],
			QtyAvgPrice: prices[row*4+2],
			MaxPrice:    prices[row*4+3],
		}
	}

	return &domain.PriceGuide{
		OrderedNew:    section(0),
		OrderedUsed:   section(1),
		InventoryNew:  section(2),
		InventoryUsed: section(3),
	}, nil
}

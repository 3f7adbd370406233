// Package bricklink is an HTTP client for the BrickLink store API plus
// the public price guide page. Catalog reads go through the OAuth1-signed
// REST API; price data is only published as HTML and is scraped.
package bricklink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/ganorabricks/figfinder/internal/domain"
	"github.com/ganorabricks/figfinder/internal/metrics"
)

const (
	defaultBaseURL       = "https://api.bricklink.com/api/store/v1"
	defaultPriceGuideURL = "https://www.bricklink.com/priceGuideSummary.asp"

	// The price guide page serves a stripped response to unknown clients.
	priceGuideUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	// BrickLink throttles aggressive consumers; space out catalog calls.
	requestInterval = 100 * time.Millisecond

	itemTypeMinifig = "MINIFIG"
)

// Config holds BrickLink API credentials and endpoint overrides.
// Endpoints default to the public BrickLink URLs when empty.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string

	BaseURL       string
	PriceGuideURL string
	Timeout       time.Duration
}

// Client talks to BrickLink. Safe for concurrent use.
type Client struct {
	api           *http.Client
	web           *http.Client
	baseURL       string
	priceGuideURL string

	mu         sync.Mutex
	colorNames map[int]string
	lastCall   time.Time
}

// NewClient creates a BrickLink client with OAuth1 request signing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" || cfg.Token == "" || cfg.TokenSecret == "" {
		return nil, fmt.Errorf("bricklink: incomplete credentials")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	priceGuideURL := cfg.PriceGuideURL
	if priceGuideURL == "" {
		priceGuideURL = defaultPriceGuideURL
	}

	oauthConfig := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	token := oauth1.NewToken(cfg.Token, cfg.TokenSecret)
	api := oauthConfig.Client(oauth1.NoContext, token)
	api.Timeout = timeout

	return &Client{
		api:           api,
		web:           &http.Client{Timeout: timeout},
		baseURL:       baseURL,
		priceGuideURL: priceGuideURL,
		colorNames:    make(map[int]string),
	}, nil
}

// envelope is the wrapper every REST API response arrives in.
type envelope struct {
	Meta struct {
		Code        int    `json:"code"`
		Message     string `json:"message"`
		Description string `json:"description"`
	} `json:"meta"`
	Data json.RawMessage `json:"data"`
}

// Item is a catalog item as returned by the items endpoint.
type Item struct {
	No           string `json:"no"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	CategoryID   int    `json:"category_id"`
	CategoryName string `json:"category_name"`
	YearReleased int    `json:"year_released"`
}

// Color is a catalog color as returned by the colors endpoint.
type Color struct {
	ColorID   int    `json:"color_id"`
	ColorName string `json:"color_name"`
	ColorCode string `json:"color_code"`
	ColorType string `json:"color_type"`
}

// SubsetEntry is one part line within a subset grouping.
type SubsetEntry struct {
	Item struct {
		No   string `json:"no"`
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"item"`
	ColorID       int  `json:"color_id"`
	Quantity      int  `json:"quantity"`
	ExtraQuantity int  `json:"extra_quantity"`
	IsAlternate   bool `json:"is_alternate"`
	IsCounterpart bool `json:"is_counterpart"`
	IsSpare       bool `json:"is_spare"`
}

// Subset is one match group from the subsets endpoint.
type Subset struct {
	MatchNo int           `json:"match_no"`
	Entries []SubsetEntry `json:"entries"`
}

// throttle enforces the minimum spacing between API calls.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if wait := requestInterval - time.Since(c.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	c.lastCall = time.Now()
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	c.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.api.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if env.Meta.Code != http.StatusOK {
		return fmt.Errorf("api error %d: %s", env.Meta.Code, env.Meta.Message)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode payload: %w", err)
		}
	}
	return nil
}

// GetItem fetches catalog details for one item.
func (c *Client) GetItem(ctx context.Context, itemType, itemID string) (*Item, error) {
	var item Item
	path := fmt.Sprintf("/items/%s/%s", itemType, url.PathEscape(itemID))
	if err := c.get(ctx, path, &item); err != nil {
		return nil, fmt.Errorf("get item %s/%s: %w", itemType, itemID, err)
	}
	return &item, nil
}

// GetSubsets fetches the part inventory groupings for an item.
func (c *Client) GetSubsets(ctx context.Context, itemType, itemID string) ([]Subset, error) {
	var subsets []Subset
	path := fmt.Sprintf("/items/%s/%s/subsets", itemType, url.PathEscape(itemID))
	if err := c.get(ctx, path, &subsets); err != nil {
		return nil, fmt.Errorf("get subsets %s/%s: %w", itemType, itemID, err)
	}
	return subsets, nil
}

// GetColorName resolves a color ID to its display name, memoized for the
// client's lifetime. Unresolvable colors degrade to "Color <id>".
func (c *Client) GetColorName(ctx context.Context, colorID int) string {
	if colorID <= 0 {
		return "Not Applicable"
	}

	c.mu.Lock()
	name, ok := c.colorNames[colorID]
	c.mu.Unlock()
	if ok {
		return name
	}

	var color Color
	if err := c.get(ctx, "/colors/"+strconv.Itoa(colorID), &color); err != nil || color.ColorName == "" {
		return "Color " + strconv.Itoa(colorID)
	}

	c.mu.Lock()
	c.colorNames[colorID] = color.ColorName
	c.mu.Unlock()
	return color.ColorName
}

// GetMinifig fetches a minifigure's catalog entry and full part list,
// composed into the domain shape. Returns domain.ErrMinifigNotFound when
// BrickLink has no inventory for the ID.
func (c *Client) GetMinifig(ctx context.Context, minifigID string) (*domain.Minifig, error) {
	start := time.Now()
	defer func() {
		metrics.RemoteFetchDuration.WithLabelValues(metrics.KindMinifig).Observe(time.Since(start).Seconds())
	}()

	item, err := c.GetItem(ctx, itemTypeMinifig, minifigID)
	if err != nil {
		return nil, err
	}

	subsets, err := c.GetSubsets(ctx, itemTypeMinifig, minifigID)
	if err != nil {
		return nil, err
	}
	if len(subsets) == 0 {
		return nil, fmt.Errorf("minifig %s: %w", minifigID, domain.ErrMinifigNotFound)
	}

	fig := &domain.Minifig{
		ID:           minifigID,
		Name:         item.Name,
		CategoryName: item.CategoryName,
	}
	if fig.Name == "" {
		fig.Name = "Unknown"
	}
	if fig.CategoryName == "" {
		fig.CategoryName = "Unknown"
	}
	if item.YearReleased > 0 {
		year := item.YearReleased
		fig.YearReleased = &year
	}

	for _, subset := range subsets {
		for _, entry := range subset.Entries {
			fig.Parts = append(fig.Parts, domain.RequiredPart{
				PartID:        entry.Item.No,
				PartName:      entry.Item.Name,
				ColorID:       entry.ColorID,
				ColorName:     c.GetColorName(ctx, entry.ColorID),
				Quantity:      entry.Quantity,
				IsAlternate:   entry.IsAlternate,
				IsCounterpart: entry.IsCounterpart,
				IsExtra:       entry.ExtraQuantity > 0,
				IsSpare:       entry.IsSpare,
			})
		}
	}

	return fig, nil
}

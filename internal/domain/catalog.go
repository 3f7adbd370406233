package domain

import "time"

// CacheStatus summarizes the persisted catalog cache.
type CacheStatus struct {
	MinifigCount    int        `json:"minifig_count"`
	PriceGuideCount int        `json:"price_guide_count"`
	OldestFetchedAt *time.Time `json:"oldest_fetched_at,omitempty"`
	NewestFetchedAt *time.Time `json:"newest_fetched_at,omitempty"`
}

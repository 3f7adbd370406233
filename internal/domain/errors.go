package domain

import "errors"

// Sentinel errors shared across layers
var (
	// ErrMinifigNotFound indicates the minifig is not in the catalog cache
	ErrMinifigNotFound = errors.New("minifig not found")

	// ErrPriceGuideNotFound indicates no cached price guide for the minifig
	ErrPriceGuideNotFound = errors.New("price guide not found")

	// ErrInvalidInventory indicates the inventory upload could not be parsed
	ErrInvalidInventory = errors.New("invalid inventory file")

	// ErrRefreshUnavailable indicates the catalog is running cache-only
	// and cannot reach the upstream API
	ErrRefreshUnavailable = errors.New("catalog refresh unavailable")
)

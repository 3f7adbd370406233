package config

import "time"

// Catalog cache defaults
const (
	DefaultCatalogCacheSize = 2048
	DefaultCatalogCacheTTL  = 15 * time.Minute
)

// Default file locations
const (
	// DefaultReportPath is where the CLI writes the match report
	DefaultReportPath = "reports/buildable-minifigs.json"
)

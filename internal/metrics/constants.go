package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Match run metric names
const (
	MetricNameMatchRunsTotal       = "match_runs_total"
	MetricNameMatchRunDuration     = "match_run_duration_seconds"
	MetricNameMinifigsChecked      = "minifigs_checked_total"
	MetricNameCompleteBuildsFound  = "complete_builds_found_total"
	MetricNamePartialBuildsFound   = "partial_builds_found_total"
	MetricNameCopiesAllocated      = "copies_allocated_total"
)

// Catalog metric names
const (
	MetricNameCatalogLookups       = "catalog_lookups_total"
	MetricNameCatalogLookupErrors  = "catalog_lookup_errors_total"
	MetricNameCatalogRefreshes     = "catalog_refreshes_total"
	MetricNameRemoteFetchDuration  = "remote_fetch_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Match run metric help text
const (
	HelpTextMatchRunsTotal      = "Total number of match runs performed"
	HelpTextMatchRunDuration    = "Match run duration in seconds"
	HelpTextMinifigsChecked     = "Total number of minifigure recipes checked"
	HelpTextCompleteBuildsFound = "Total number of complete builds found"
	HelpTextPartialBuildsFound  = "Total number of partial builds reported"
	HelpTextCopiesAllocated     = "Total number of minifigure copies allocated"
)

// Catalog metric help text
const (
	HelpTextCatalogLookups      = "Total number of catalog lookups by data kind and source"
	HelpTextCatalogLookupErrors = "Total number of failed catalog lookups by data kind"
	HelpTextCatalogRefreshes    = "Total number of catalog refresh operations"
	HelpTextRemoteFetchDuration = "Remote catalog fetch latency in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelKind   = "kind"
	LabelSource = "source"
)

// Values for the kind label
const (
	KindMinifig    = "minifig"
	KindPriceGuide = "price_guide"
)

// Values for the source label
const (
	SourceMemory   = "memory"
	SourceDatabase = "database"
	SourceRemote   = "remote"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// MatchRunBuckets covers match runs, which scale with the number of recipes
// checked and can take noticeably longer than a single HTTP request
var MatchRunBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}

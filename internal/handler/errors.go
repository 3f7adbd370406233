package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Upload error messages
	ErrMsgMissingUploadFile = "Missing 'file' upload field"
	ErrMsgNotAnXMLFile      = "Upload must be a .xml BrickLink inventory export"
	ErrMsgUploadTooLarge    = "Upload is too large"
	ErrMsgInvalidInventory  = "Inventory file could not be parsed"
	ErrMsgMatchRunFailed    = "Failed to run the match"

	// Catalog error messages
	ErrMsgCacheStatusFailed  = "Failed to read cache status"
	ErrMsgListMinifigsFailed = "Failed to list cached minifigures"
	ErrMsgRefreshFailed      = "Failed to refresh catalog cache"
	ErrMsgRefreshUnavailable = "Catalog refresh requires BrickLink API credentials"
)

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ganorabricks/figfinder/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	ErrMsgMinifigNotFoundError  = "Minifigure not found"
	ErrMsgPriceGuideNotFoundErr = "No price data available for that minifigure"
	ErrMsgInvalidInventoryError = "Inventory file could not be parsed. Upload a BrickLink XML export."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrMinifigNotFound):
		return http.StatusNotFound, ErrMsgMinifigNotFoundError
	case errors.Is(err, domain.ErrPriceGuideNotFound):
		return http.StatusNotFound, ErrMsgPriceGuideNotFoundErr
	case errors.Is(err, domain.ErrInvalidInventory):
		return http.StatusBadRequest, ErrMsgInvalidInventoryError
	case errors.Is(err, domain.ErrRefreshUnavailable):
		return http.StatusServiceUnavailable, ErrMsgRefreshUnavailable
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

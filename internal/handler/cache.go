package handler

import (
	"net/http"

	"github.com/ganorabricks/figfinder/internal/catalog"
	"github.com/ganorabricks/figfinder/internal/logger"
)

// RefreshRequest selects which minifigs to re-fetch from BrickLink.
// An empty or absent list refreshes everything currently cached.
type RefreshRequest struct {
	MinifigIDs []string `json:"minifig_ids" validate:"omitempty,dive,minifig_id"`
}

// MinifigListResponse lists the IDs the cache currently holds.
type MinifigListResponse struct {
	Count      int      `json:"count"`
	MinifigIDs []string `json:"minifig_ids"`
}

// HandleCacheStatus reports row counts and fetch-time bounds for the cache
func HandleCacheStatus(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		status, err := svc.Status(r.Context())
		if err != nil {
			log.Error("Failed to read cache status", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgCacheStatusFailed)
			return
		}

		respondJSON(w, http.StatusOK, status)
	}
}

// HandleCacheMinifigs lists every cached minifig ID
func HandleCacheMinifigs(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		ids, err := svc.ListMinifigIDs(r.Context())
		if err != nil {
			log.Error("Failed to list cached minifigs", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgListMinifigsFailed)
			return
		}
		if ids == nil {
			ids = []string{}
		}

		respondJSON(w, http.StatusOK, MinifigListResponse{Count: len(ids), MinifigIDs: ids})
	}
}

// HandleCacheRefresh re-fetches recipes and price guides from BrickLink.
// The body is optional; with no body every cached minifig is refreshed.
func HandleCacheRefresh(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RefreshRequest
		if r.ContentLength > 0 {
			if err := DecodeAndValidateRequest(r, w, &req, "Cache refresh"); err != nil {
				return
			}
		}

		result, err := svc.Refresh(r.Context(), req.MinifigIDs)
		if err != nil {
			log.Error("Cache refresh failed", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			if status == http.StatusInternalServerError {
				msg = ErrMsgRefreshFailed
			}
			respondError(w, status, msg)
			return
		}

		log.Info("Cache refresh completed",
			"requested", result.Requested,
			"fetched", result.Fetched,
			"failed", len(result.Failed))

		respondJSON(w, http.StatusOK, result)
	}
}

package handler

import (
	"net/http"
	"strings"

	"github.com/ganorabricks/figfinder/internal/domain"
	"github.com/ganorabricks/figfinder/internal/finder"
	"github.com/ganorabricks/figfinder/internal/inventory"
	"github.com/ganorabricks/figfinder/internal/logger"
)

// maxUploadBytes caps the inventory upload. BrickLink XML exports are a
// few hundred KB for even very large stores.
const maxUploadBytes = 16 << 20

// HandleMatch runs the matcher against an uploaded inventory.
// The request is multipart/form-data with the XML export in the "file"
// field. Optional repeated "minifig_id" form values restrict the run to
// those IDs; otherwise every cached minifig is checked.
func HandleMatch(svc finder.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			log.Warn("Failed to parse match upload", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgMissingUploadFile)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			log.Warn("Match request without file field", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgMissingUploadFile)
			return
		}
		defer file.Close()

		if !strings.HasSuffix(strings.ToLower(header.Filename), ".xml") {
			log.Warn("Rejected non-XML upload", "filename", header.Filename)
			respondError(w, http.StatusBadRequest, ErrMsgNotAnXMLFile)
			return
		}

		store, err := inventory.Parse(file)
		if err != nil {
			log.Warn("Failed to parse inventory upload", "filename", header.Filename, "error", err)
			status, msg := mapServiceErrorToUserMessage(domain.ErrInvalidInventory)
			respondError(w, status, msg)
			return
		}

		minifigIDs := cleanIDList(r.MultipartForm.Value["minifig_id"])

		log.Info("Match upload accepted",
			"filename", header.Filename,
			"unique_parts", store.UniqueParts(),
			"total_pieces", store.TotalPieces(),
			"requested_ids", len(minifigIDs))

		result, err := svc.Run(r.Context(), store, minifigIDs)
		if err != nil {
			log.Error("Match run failed", "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			if status == http.StatusInternalServerError {
				msg = ErrMsgMatchRunFailed
			}
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// cleanIDList trims and drops empty entries from a form value list.
func cleanIDList(values []string) []string {
	var ids []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			ids = append(ids, v)
		}
	}
	return ids
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
)

// AuditHandler exposes the generation call audit trail
type AuditHandler struct {
	storage interfaces.AuditStorage
	logger  arbor.ILogger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(storage interfaces.AuditStorage, logger arbor.ILogger) *AuditHandler {
	return &AuditHandler{
		storage: storage,
		logger:  logger,
	}
}

// ListHandler serves GET /api/audit
func (h *AuditHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 1000 {
			limit = parsed
		}
	}

	entries, err := h.storage.ListEntries(limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
)

// StatusHandler reports service health and course counts
type StatusHandler struct {
	config    *common.Config
	generator interfaces.GenerationService
	storage   interfaces.CourseStorage
	logger    arbor.ILogger
	startedAt time.Time
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(config *common.Config, generator interfaces.GenerationService, storage interfaces.CourseStorage, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		config:    config,
		generator: generator,
		storage:   storage,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// StatusHandler serves GET /api/status
func (h *StatusHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	status := map[string]interface{}{
		"status":      "ok",
		"version":     common.GetVersion(),
		"environment": h.config.Environment,
		"uptime":      time.Since(h.startedAt).Round(time.Second).String(),
		"provider":    h.config.LLM.DefaultProvider,
	}

	if h.storage != nil {
		if count, err := h.storage.CountCourses(); err == nil {
			status["courses"] = count
		}
	}

	WriteJSON(w, http.StatusOK, status)
}

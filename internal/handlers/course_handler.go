package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/ternarybob/doceo/internal/services/pipeline"
)

// CourseHandler exposes course generation and retrieval endpoints
type CourseHandler struct {
	pipeline *pipeline.Service
	storage  interfaces.CourseStorage
	logger   arbor.ILogger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(pipelineService *pipeline.Service, storage interfaces.CourseStorage, logger arbor.ILogger) *CourseHandler {
	return &CourseHandler{
		pipeline: pipelineService,
		storage:  storage,
		logger:   logger,
	}
}

// generateRequest is the POST /api/courses/generate payload
type generateRequest struct {
	Text    string                 `json:"text"`
	Profile *models.LearnerProfile `json:"profile"`
}

// GenerateHandler runs the synthesis pipeline for the supplied document and
// learner profile. The response is always a CourseResult; callers branch on
// the error field, never on HTTP status alone.
func (h *CourseHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result := h.pipeline.GenerateCourse(r.Context(), req.Text, req.Profile)
	if result.Error != "" {
		WriteJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// GetHandler returns one stored course by ID (GET /api/courses/{id})
func (h *CourseHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/courses/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "course ID is required")
		return
	}

	course, err := h.storage.GetCourse(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, course)
}

// ListHandler returns stored courses, newest first (GET /api/courses)
func (h *CourseHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	courses, err := h.storage.ListCourses(limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"courses": courses,
		"count":   len(courses),
	})
}

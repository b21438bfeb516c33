package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Courses
	mux.HandleFunc("/api/courses/generate", s.app.CourseHandler.GenerateHandler) // POST - run the synthesis pipeline
	mux.HandleFunc("/api/courses", s.app.CourseHandler.ListHandler)              // GET - list stored courses
	mux.HandleFunc("/api/courses/", s.app.CourseHandler.GetHandler)              // GET /{id}

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.StatusHandler) // GET - application status
	mux.HandleFunc("/api/audit", s.app.AuditHandler.ListHandler)     // GET - generation audit trail

	return mux
}

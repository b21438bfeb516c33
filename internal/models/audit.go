package models

import "time"

// AuditEntry records one generation call for the audit trail.
// Written fire-and-forget; failures are logged, never surfaced to callers.
type AuditEntry struct {
	ID          string    `json:"id" badgerhold:"key"`
	Timestamp   time.Time `json:"timestamp"`
	Provider    string    `json:"provider"`
	Operation   string    `json:"operation"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
	PromptChars int       `json:"prompt_chars"`
	PromptText  string    `json:"prompt_text,omitempty"` // Only populated when prompt logging is enabled
}

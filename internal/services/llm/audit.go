package llm

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// Auditor records generation calls as a detached side task. Recording happens
// after the main result is already on its way back to the caller; storage
// failures are logged and never surfaced.
type Auditor struct {
	storage    interfaces.AuditStorage
	logger     arbor.ILogger
	enabled    bool
	logPrompts bool
	inflight   sync.WaitGroup
}

// NewAuditor creates an auditor backed by the given storage.
// A nil storage or disabled config yields a no-op auditor.
func NewAuditor(config *common.AuditConfig, storage interfaces.AuditStorage, logger arbor.ILogger) *Auditor {
	return &Auditor{
		storage:    storage,
		logger:     logger,
		enabled:    config != nil && config.Enabled && storage != nil,
		logPrompts: config != nil && config.LogPrompts,
	}
}

// Record writes an audit entry asynchronously (fire-and-forget)
func (a *Auditor) Record(operation, provider string, duration time.Duration, opErr error, prompt string) {
	if a == nil || !a.enabled {
		return
	}

	entry := &models.AuditEntry{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Provider:    provider,
		Operation:   operation,
		Success:     opErr == nil,
		DurationMs:  duration.Milliseconds(),
		PromptChars: len(prompt),
	}
	if opErr != nil {
		entry.Error = opErr.Error()
	}
	if a.logPrompts {
		entry.PromptText = prompt
	}

	a.inflight.Add(1)
	go func() {
		defer a.inflight.Done()
		if err := a.storage.SaveEntry(entry); err != nil {
			a.logger.Warn().
				Err(err).
				Str("operation", operation).
				Str("provider", provider).
				Msg("Failed to write audit entry")
		}
	}()
}

// Drain blocks until all in-flight audit writes have finished. Called during
// shutdown before the backing store closes.
func (a *Auditor) Drain() {
	if a == nil {
		return
	}
	a.inflight.Wait()
}

package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// AuditStorage implements the AuditStorage interface for Badger
type AuditStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewAuditStorage creates a new AuditStorage instance
func NewAuditStorage(db *BadgerDB, logger arbor.ILogger) interfaces.AuditStorage {
	return &AuditStorage{
		db:     db,
		logger: logger,
	}
}

func (s *AuditStorage) SaveEntry(entry *models.AuditEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("audit entry ID is required")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	if err := s.db.Store().Upsert(entry.ID, entry); err != nil {
		return fmt.Errorf("failed to save audit entry: %w", err)
	}
	return nil
}

func (s *AuditStorage) ListEntries(limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	var entries []models.AuditEntry
	if err := s.db.Store().Find(&entries, badgerhold.Where("ID").Ne("").SortBy("Timestamp").Reverse().Limit(limit)); err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}

func (s *AuditStorage) DeleteOlderThan(cutoff time.Time) (int, error) {
	var stale []models.AuditEntry
	if err := s.db.Store().Find(&stale, badgerhold.Where("Timestamp").Lt(cutoff)); err != nil {
		return 0, fmt.Errorf("failed to find stale audit entries: %w", err)
	}

	deleted := 0
	for _, entry := range stale {
		if err := s.db.Store().Delete(entry.ID, &models.AuditEntry{}); err != nil {
			if err == badgerhold.ErrNotFound {
				continue
			}
			return deleted, fmt.Errorf("failed to delete audit entry %s: %w", entry.ID, err)
		}
		deleted++
	}

	return deleted, nil
}

package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
)

// AuditSweeper periodically removes audit entries older than the configured
// retention window
type AuditSweeper struct {
	cron      *cron.Cron
	storage   interfaces.AuditStorage
	logger    arbor.ILogger
	retention time.Duration
	schedule  string
}

// NewAuditSweeper creates a sweeper from the audit config section
func NewAuditSweeper(config *common.AuditConfig, storage interfaces.AuditStorage, logger arbor.ILogger) (*AuditSweeper, error) {
	retention, err := time.ParseDuration(config.Retention)
	if err != nil || retention <= 0 {
		retention = 7 * 24 * time.Hour
	}

	schedule := config.SweepSchedule
	if schedule == "" {
		schedule = "0 * * * *"
	}

	return &AuditSweeper{
		cron:      cron.New(),
		storage:   storage,
		logger:    logger,
		retention: retention,
		schedule:  schedule,
	}, nil
}

// Start registers and starts the sweep schedule
func (s *AuditSweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return fmt.Errorf("failed to schedule audit sweep: %w", err)
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", s.schedule).
		Str("retention", s.retention.String()).
		Msg("Audit sweeper started")
	return nil
}

// Stop halts the schedule; a sweep already in flight runs to completion
func (s *AuditSweeper) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("Audit sweeper stopped")
}

func (s *AuditSweeper) sweep() {
	cutoff := time.Now().UTC().Add(-s.retention)

	deleted, err := s.storage.DeleteOlderThan(cutoff)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Audit sweep failed")
		return
	}

	if deleted > 0 {
		s.logger.Info().
			Int("deleted", deleted).
			Str("cutoff", cutoff.Format(time.RFC3339)).
			Msg("Swept stale audit entries")
	}
}

package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/handlers"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/scheduler"
	"github.com/ternarybob/doceo/internal/services/llm"
	"github.com/ternarybob/doceo/internal/services/pipeline"
	"github.com/ternarybob/doceo/internal/services/video"
	"github.com/ternarybob/doceo/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	DB            *badger.BadgerDB
	CourseStorage interfaces.CourseStorage
	AuditStorage  interfaces.AuditStorage

	// Generation
	Generator interfaces.GenerationService
	Auditor   *llm.Auditor

	// Video enrichment
	YouTubeClient *video.YouTubeClient
	VideoService  *video.Service

	// Pipeline
	PipelineService *pipeline.Service

	// Background
	AuditSweeper *scheduler.AuditSweeper

	// HTTP handlers
	CourseHandler *handlers.CourseHandler
	StatusHandler *handlers.StatusHandler
	AuditHandler  *handlers.AuditHandler
}

// New wires the application from configuration. Services are constructed
// bottom-up: storage, then generation, then video, then the pipeline, then
// the HTTP handlers that expose them.
func New(ctx context.Context, config *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: config,
		Logger: logger,
	}

	db, err := badger.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.DB = db
	a.CourseStorage = badger.NewCourseStorage(db, logger)
	a.AuditStorage = badger.NewAuditStorage(db, logger)

	a.Auditor = llm.NewAuditor(&config.Audit, a.AuditStorage, logger)
	a.Generator = llm.NewProviderFactory(config, a.Auditor, logger)

	a.YouTubeClient = video.NewYouTubeClient(&config.YouTube, logger)
	validator := video.NewValidator(a.YouTubeClient, a.YouTubeClient, config.YouTube.ValidationWorkers, logger)
	a.VideoService = video.NewService(validator, a.YouTubeClient, config.YouTube.SearchMaxResults, logger)

	a.PipelineService = pipeline.NewService(config, a.Generator, a.VideoService, a.CourseStorage, logger)

	if config.Audit.Enabled {
		sweeper, err := scheduler.NewAuditSweeper(&config.Audit, a.AuditStorage, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create audit sweeper: %w", err)
		}
		a.AuditSweeper = sweeper
	}

	a.CourseHandler = handlers.NewCourseHandler(a.PipelineService, a.CourseStorage, logger)
	a.StatusHandler = handlers.NewStatusHandler(config, a.Generator, a.CourseStorage, logger)
	a.AuditHandler = handlers.NewAuditHandler(a.AuditStorage, logger)

	logger.Info().
		Str("provider", config.LLM.DefaultProvider).
		Str("storage", config.Storage.Badger.Path).
		Msg("Application initialized")

	return a, nil
}

// Start launches background services
func (a *App) Start() error {
	if a.AuditSweeper != nil {
		if err := a.AuditSweeper.Start(); err != nil {
			return err
		}
	}
	return nil
}

// Close shuts down services and storage in reverse construction order
func (a *App) Close() error {
	if a.AuditSweeper != nil {
		a.AuditSweeper.Stop()
	}

	if a.Generator != nil {
		if err := a.Generator.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close generation service")
		}
	}

	// Let in-flight audit writes land before the store closes
	a.Auditor.Drain()

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}

	return nil
}

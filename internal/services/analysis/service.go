package analysis

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/ternarybob/doceo/internal/services/llm"
)

// Service runs per-chunk semantic analysis against the generation backend.
// Chunks are processed in sequential batches; calls within a batch run
// concurrently. Analysis failures never propagate — a failed chunk gets a
// minimal fallback semantics record instead.
type Service struct {
	generator interfaces.GenerationService
	config    *common.PipelineConfig
	logger    arbor.ILogger
	timeout   time.Duration
}

// NewService creates a new semantic analysis service
func NewService(generator interfaces.GenerationService, config *common.PipelineConfig, logger arbor.ILogger) *Service {
	timeout, err := time.ParseDuration(config.AnalysisTimeout)
	if err != nil || timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Service{
		generator: generator,
		config:    config,
		logger:    logger,
		timeout:   timeout,
	}
}

// AnalyzeChunks fills in the Semantics field of every chunk, in place.
// Results land in original chunk order regardless of completion order.
func (s *Service) AnalyzeChunks(ctx context.Context, chunks []*models.ContentChunk) {
	batchSize := s.config.AnalysisBatchSize
	if batchSize <= 0 {
		batchSize = 3
	}

	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		var wg sync.WaitGroup
		for _, chunk := range chunks[start:end] {
			wg.Add(1)
			go func(c *models.ContentChunk) {
				defer wg.Done()
				c.Semantics = s.analyzeChunk(ctx, c)
			}(chunk)
		}
		wg.Wait()
	}
}

// analyzeChunk runs one generation call for a chunk. All error kinds are
// swallowed here; the fallback record keeps the pipeline moving.
func (s *Service) analyzeChunk(ctx context.Context, chunk *models.ContentChunk) models.ChunkSemantics {
	req := &interfaces.GenerateRequest{
		Prompt:            buildAnalysisPrompt(chunk),
		SystemInstruction: analysisSystemInstruction,
		Timeout:           s.timeout,
	}

	text, err := s.generator.GenerateText(ctx, req)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("chunk_id", chunk.ID).
			Msg("Chunk analysis failed, substituting fallback semantics")
		return fallbackSemantics(chunk)
	}

	var parsed models.GeneratedSemantics
	if err := llm.ExtractJSON(text, &parsed); err != nil {
		s.logger.Warn().
			Err(err).
			Str("chunk_id", chunk.ID).
			Msg("Chunk analysis output not parseable, substituting fallback semantics")
		return fallbackSemantics(chunk)
	}

	return models.ChunkSemantics{
		MainConcepts:   parsed.MainConcepts,
		KeyDefinitions: parsed.KeyDefinitions,
		CodeExamples:   parsed.CodeExamples,
		Formulas:       parsed.Formulas,
		Difficulty:     normalizeDifficulty(parsed.Difficulty),
		Prerequisites:  parsed.Prerequisites,
		Summary:        parsed.Summary,
		KeyTakeaways:   parsed.KeyTakeaways,
	}
}

// fallbackSemantics is the documented minimal record for a failed analysis:
// empty lists, moderate difficulty, truncated raw-text summary.
func fallbackSemantics(chunk *models.ContentChunk) models.ChunkSemantics {
	summary := chunk.RawText
	if len(summary) > 300 {
		cut := 300
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut]
	}

	return models.ChunkSemantics{
		MainConcepts:   []string{},
		KeyDefinitions: []models.KeyDefinition{},
		CodeExamples:   []string{},
		Formulas:       []string{},
		Difficulty:     models.DifficultyModerate,
		Prerequisites:  []string{},
		KeyTakeaways:   []string{},
		Summary:        summary,
		Fallback:       true,
	}
}

// normalizeDifficulty coerces model output into the closed difficulty set
func normalizeDifficulty(raw string) models.Difficulty {
	switch models.Difficulty(raw) {
	case models.DifficultyIntro, models.DifficultyModerate, models.DifficultyAdvanced:
		return models.Difficulty(raw)
	}
	return models.DifficultyModerate
}

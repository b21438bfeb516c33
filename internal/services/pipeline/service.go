package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/ternarybob/doceo/internal/services/alignment"
	"github.com/ternarybob/doceo/internal/services/analysis"
	"github.com/ternarybob/doceo/internal/services/assembler"
	"github.com/ternarybob/doceo/internal/services/llm"
	"github.com/ternarybob/doceo/internal/services/resources"
	"github.com/ternarybob/doceo/internal/services/segmenter"
	"github.com/ternarybob/doceo/internal/services/video"
)

// Service orchestrates the full course synthesis pipeline:
// segment -> analyze -> global context -> learner alignment -> course
// generation -> assembly -> video enrichment -> resource prioritization.
//
// Each invocation is independent; the service holds no per-request state and
// is safe for concurrent use.
type Service struct {
	config      *common.Config
	generator   interfaces.GenerationService
	segmenter   *segmenter.Service
	analyzer    *analysis.Service
	aligner     *alignment.Service
	enricher    *video.Service
	prioritizer *resources.Prioritizer
	storage     interfaces.CourseStorage
	validate    *validator.Validate
	logger      arbor.ILogger
	genTimeout  time.Duration
}

// NewService wires the pipeline from its collaborators
func NewService(
	config *common.Config,
	generator interfaces.GenerationService,
	enricher *video.Service,
	storage interfaces.CourseStorage,
	logger arbor.ILogger,
) *Service {
	genTimeout, err := time.ParseDuration(config.Pipeline.GenerateTimeout)
	if err != nil || genTimeout <= 0 {
		genTimeout = 120 * time.Second
	}

	return &Service{
		config:      config,
		generator:   generator,
		segmenter:   segmenter.NewService(logger),
		analyzer:    analysis.NewService(generator, &config.Pipeline, logger),
		aligner:     alignment.NewService(generator, &config.Pipeline, logger),
		enricher:    enricher,
		prioritizer: resources.NewPrioritizer(config.Pipeline.VerifiedSources, config.Pipeline.MaxResourcesPerLesson),
		storage:     storage,
		validate:    validator.New(),
		logger:      logger,
		genTimeout:  genTimeout,
	}
}

// GenerateCourse runs the full pipeline for one document. The learner profile
// is optional; when present it drives the learning plan and prompt hints.
// The returned CourseResult is a discriminated outcome: callers branch on
// Error being empty. Errors never cross this boundary as Go errors except
// through that field.
func (s *Service) GenerateCourse(ctx context.Context, text string, profile *models.LearnerProfile) *models.CourseResult {
	text = strings.TrimSpace(text)

	// Input gate: rejected before any external call is made
	if len(text) < s.config.Pipeline.MinInputChars {
		return &models.CourseResult{
			Error: fmt.Sprintf("input text too short: %d characters, minimum %d", len(text), s.config.Pipeline.MinInputChars),
		}
	}
	if profile != nil {
		if err := s.validate.Struct(profile); err != nil {
			return &models.CourseResult{Error: fmt.Sprintf("invalid learner profile: %v", err)}
		}
	}

	started := time.Now()

	chunks := s.segmenter.Segment(text)
	if len(chunks) == 0 {
		return &models.CourseResult{Error: "document could not be segmented into usable content"}
	}
	s.logger.Info().Int("chunks", len(chunks)).Msg("Document segmented")

	s.analyzer.AnalyzeChunks(ctx, chunks)
	globalCtx := analysis.BuildGlobalContext(chunks)
	s.logger.Info().
		Str("document_type", globalCtx.DocumentType).
		Str("difficulty", string(globalCtx.DifficultyEstimate)).
		Int("main_topics", len(globalCtx.MainTopics)).
		Msg("Semantic analysis complete")

	var plan *models.LearningPlan
	if profile != nil {
		plan = s.aligner.BuildPlan(ctx, chunks, globalCtx, profile)
		s.logger.Info().
			Int("confidence", plan.ConfidenceLevel).
			Int("total_weeks", plan.Pacing.TotalWeeks).
			Msg("Learning plan built")
	}

	course := s.generateStructure(ctx, text, globalCtx, plan, profile)

	if !course.Fallback && len(text) > s.config.Pipeline.WindowThreshold {
		s.supplementQuizzes(ctx, text, course)
	}

	if s.enricher != nil {
		s.enricher.Enrich(ctx, course)
	}
	s.prioritizer.PrioritizeCourse(course)

	if s.storage != nil {
		if err := s.storage.SaveCourse(course); err != nil {
			s.logger.Warn().Err(err).Str("course_id", course.ID).Msg("Failed to persist course")
		}
	}

	s.logger.Info().
		Str("course_id", course.ID).
		Int("sessions", len(course.Sessions)).
		Str("duration", time.Since(started).Round(time.Millisecond).String()).
		Msg("Course generation complete")

	return &models.CourseResult{Course: course, Plan: plan}
}

// generateStructure runs the course structure generation call. Output that
// cannot be coerced into a non-empty module list yields a synthesized
// single-lesson fallback course rather than a hard failure.
func (s *Service) generateStructure(ctx context.Context, text string, globalCtx *models.GlobalContext, plan *models.LearningPlan, profile *models.LearnerProfile) *models.Course {
	req := &interfaces.GenerateRequest{
		Prompt:            buildCoursePrompt(text, globalCtx, plan, profile),
		SystemInstruction: courseSystemInstruction,
		Timeout:           s.genTimeout,
	}

	raw, err := s.generator.GenerateText(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Course structure generation failed, synthesizing fallback course")
		return assembler.FallbackCourse(text, globalCtx)
	}

	var generated models.GeneratedCourse
	if err := llm.ExtractJSON(raw, &generated); err != nil {
		s.logger.Warn().Err(err).Msg("Course structure output not parseable, synthesizing fallback course")
		return assembler.FallbackCourse(text, globalCtx)
	}

	if len(generated.Modules) == 0 {
		s.logger.Warn().Msg("Generated course has zero modules, synthesizing fallback course")
		return assembler.FallbackCourse(text, globalCtx)
	}

	return assembler.BuildCourse(&generated, globalCtx.DifficultyEstimate)
}

// supplementQuizzes runs windowed quiz extraction over large documents and
// distributes the merged questions round-robin across lessons with thin quiz
// coverage. A total windowing failure is non-fatal.
func (s *Service) supplementQuizzes(ctx context.Context, text string, course *models.Course) {
	windows := llm.SplitWindows(text, s.config.Pipeline.WindowSize)

	questions, err := llm.GenerateWindowed(ctx, s.logger, windows, s.config.Pipeline.MaxWindowsInFlight,
		func(ctx context.Context, window string) ([]models.GeneratedQuizQuestion, error) {
			req := &interfaces.GenerateRequest{
				Prompt:            buildQuizPrompt(window),
				SystemInstruction: quizSystemInstruction,
				Timeout:           s.genTimeout,
			}
			raw, genErr := s.generator.GenerateText(ctx, req)
			if genErr != nil {
				return nil, genErr
			}
			var items []models.GeneratedQuizQuestion
			if extractErr := llm.ExtractJSONList(raw, "questions", &items); extractErr != nil {
				return nil, extractErr
			}
			return items, nil
		})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Windowed quiz generation produced nothing")
		return
	}

	// Collect lessons needing more quiz coverage, in course order
	var targets []*models.Lesson
	for si := range course.Sessions {
		for li := range course.Sessions[si].Lessons {
			lesson := &course.Sessions[si].Lessons[li]
			if len(lesson.Quiz) < 2 {
				targets = append(targets, lesson)
			}
		}
	}
	if len(targets) == 0 {
		return
	}

	attached := 0
	for _, q := range questions {
		if q.Question == "" {
			continue
		}
		options := q.Options
		if len(options) > 0 {
			// Options without an answer cannot satisfy the answer-in-options
			// contract
			if q.Answer == "" {
				continue
			}
			if !containsOption(options, q.Answer) {
				options = append(append([]string{}, options...), q.Answer)
			}
		}
		target := targets[attached%len(targets)]
		target.Quiz = append(target.Quiz, models.QuizQuestion{
			Question:    q.Question,
			Options:     options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		})
		attached++
	}

	s.logger.Info().
		Int("questions", attached).
		Int("lessons", len(targets)).
		Msg("Supplemented lessons with windowed quiz questions")
}

func containsOption(options []string, answer string) bool {
	for _, option := range options {
		if option == answer {
			return true
		}
	}
	return false
}

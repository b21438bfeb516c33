package alignment

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/ternarybob/doceo/internal/services/llm"
)

const maxPrerequisiteConcepts = 20

// Service aligns the analyzed document with a learner profile. Goal alignment
// and prerequisite checking are generative calls with documented fallbacks;
// pacing and confidence are pure arithmetic. Nothing here aborts the pipeline.
type Service struct {
	generator interfaces.GenerationService
	logger    arbor.ILogger
	timeout   time.Duration
}

// NewService creates a new learner alignment service
func NewService(generator interfaces.GenerationService, config *common.PipelineConfig, logger arbor.ILogger) *Service {
	timeout, err := time.ParseDuration(config.AlignmentTimeout)
	if err != nil || timeout <= 0 {
		timeout = 45 * time.Second
	}

	return &Service{
		generator: generator,
		logger:    logger,
		timeout:   timeout,
	}
}

// BuildPlan runs the three alignment computations and assembles the plan
func (s *Service) BuildPlan(ctx context.Context, chunks []*models.ContentChunk, globalCtx *models.GlobalContext, profile *models.LearnerProfile) *models.LearningPlan {
	now := time.Now()

	goalAlignment := s.alignGoal(ctx, globalCtx, profile)
	prereqCheck := s.checkPrerequisites(ctx, chunks, profile)
	pacing := ComputePacing(len(chunks), profile, now)

	relevantIDs := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		relevantIDs = append(relevantIDs, chunk.ID)
	}

	return &models.LearningPlan{
		GoalAlignment:        goalAlignment,
		PrerequisiteCheck:    prereqCheck,
		Pacing:               pacing,
		RelevantChunkIDs:     relevantIDs,
		Customization:        buildCustomization(globalCtx, prereqCheck, profile),
		ConfidenceLevel:      ComputeConfidence(goalAlignment, prereqCheck),
		TargetCompletionDate: CompletionDate(pacing, profile, now),
	}
}

// alignGoal scores document/goal fit with a generative call.
// On any failure, falls back to a neutral 50 with the top 3 main topics.
func (s *Service) alignGoal(ctx context.Context, globalCtx *models.GlobalContext, profile *models.LearnerProfile) models.GoalAlignment {
	req := &interfaces.GenerateRequest{
		Prompt:            buildGoalAlignmentPrompt(globalCtx, profile),
		SystemInstruction: alignmentSystemInstruction,
		Timeout:           s.timeout,
	}

	text, err := s.generator.GenerateText(ctx, req)
	if err == nil {
		var parsed models.GeneratedGoalAlignment
		if err = llm.ExtractJSON(text, &parsed); err == nil {
			return models.GoalAlignment{
				RelevanceScore:      clampScore(parsed.RelevanceScore),
				AlignedTopics:       parsed.AlignedTopics,
				MissingFromDocument: parsed.MissingFromDocument,
				ExcessInDocument:    parsed.ExcessInDocument,
				Recommendations:     parsed.Recommendations,
			}
		}
	}

	s.logger.Warn().Err(err).Msg("Goal alignment failed, using neutral fallback")

	aligned := globalCtx.MainTopics
	if len(aligned) > 3 {
		aligned = aligned[:3]
	}
	return models.GoalAlignment{
		RelevanceScore:      50,
		AlignedTopics:       aligned,
		MissingFromDocument: []string{},
		ExcessInDocument:    []string{},
		Recommendations:     []string{"Work through the material in order and revisit sections that feel unfamiliar."},
	}
}

// checkPrerequisites assesses readiness with a generative call.
// On any failure, falls back to an optimistic ready verdict.
func (s *Service) checkPrerequisites(ctx context.Context, chunks []*models.ContentChunk, profile *models.LearnerProfile) models.PrerequisiteCheck {
	concepts := collectPrerequisites(chunks)

	req := &interfaces.GenerateRequest{
		Prompt:            buildPrerequisitePrompt(concepts, profile),
		SystemInstruction: alignmentSystemInstruction,
		Timeout:           s.timeout,
	}

	text, err := s.generator.GenerateText(ctx, req)
	if err == nil {
		var parsed models.GeneratedPrerequisiteCheck
		if err = llm.ExtractJSON(text, &parsed); err == nil {
			return models.PrerequisiteCheck{
				Required:     parsed.Required,
				Recommended:  parsed.Recommended,
				LearnerLevel: parsed.LearnerLevel,
				ReadyToStart: parsed.ReadyToStart,
				Gaps:         parsed.Gaps,
			}
		}
	}

	s.logger.Warn().Err(err).Msg("Prerequisite check failed, using optimistic fallback")

	level := profile.BackgroundLevel
	if level == "" {
		level = "beginner"
	}
	return models.PrerequisiteCheck{
		Required:     []string{},
		Recommended:  concepts,
		LearnerLevel: level,
		ReadyToStart: true,
		Gaps:         []models.KnowledgeGap{},
	}
}

// collectPrerequisites aggregates up to 20 unique prerequisite concepts
// across all chunks, in first-seen order
func collectPrerequisites(chunks []*models.ContentChunk) []string {
	seen := make(map[string]bool)
	var concepts []string

	for _, chunk := range chunks {
		for _, prereq := range chunk.Semantics.Prerequisites {
			if prereq == "" || seen[prereq] {
				continue
			}
			seen[prereq] = true
			concepts = append(concepts, prereq)
			if len(concepts) == maxPrerequisiteConcepts {
				return concepts
			}
		}
	}
	return concepts
}

// buildCustomization flags how the course should be shaped for this learner
func buildCustomization(globalCtx *models.GlobalContext, prereq models.PrerequisiteCheck, profile *models.LearnerProfile) models.CustomizationStrategy {
	advanced := profile.BackgroundLevel == "advanced" || profile.BackgroundLevel == "intermediate"

	return models.CustomizationStrategy{
		SkipIntroductory:  advanced && globalCtx.DifficultyEstimate == models.DocumentDifficultyBeginner,
		EmphasizeExamples: profile.LearningStyle == "hands_on" || profile.LearningStyle == "visual",
		IncludePrework:    !prereq.ReadyToStart,
		CompressTimeline:  profile.Deadline != nil,
		ExpandPractice:    profile.GoalType == "exam_prep",
	}
}

// clampScore limits a model-supplied score to [0,100]
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

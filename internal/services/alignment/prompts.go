package alignment

import (
	"fmt"
	"strings"

	"github.com/ternarybob/doceo/internal/models"
)

const alignmentSystemInstruction = `You are an expert learning advisor.
Respond with a single JSON object and nothing else. Do not add commentary.`

// buildGoalAlignmentPrompt renders the goal/document fit prompt
func buildGoalAlignmentPrompt(globalCtx *models.GlobalContext, profile *models.LearnerProfile) string {
	return fmt.Sprintf(`A learner wants to study a document toward a personal goal.

Learner goal: %s
Goal type: %s

Document main topics: %s
Document type: %s
Document difficulty: %s

Score how well the document serves the goal. Return a JSON object:
{
  "relevance_score": 0-100,
  "aligned_topics": ["topics in the document that serve the goal"],
  "missing_from_document": ["goal topics the document does not cover"],
  "excess_in_document": ["document topics outside the goal"],
  "recommendations": ["1-3 short study recommendations"]
}`, profile.Goal, orUnknown(profile.GoalType),
		strings.Join(globalCtx.MainTopics, ", "),
		globalCtx.DocumentType, globalCtx.DifficultyEstimate)
}

// buildPrerequisitePrompt renders the readiness assessment prompt
func buildPrerequisitePrompt(concepts []string, profile *models.LearnerProfile) string {
	prior := strings.Join(profile.PriorKnowledge, ", ")
	if prior == "" {
		prior = "(none declared)"
	}

	return fmt.Sprintf(`Assess whether a learner is ready to start studying material with these prerequisite concepts.

Prerequisite concepts: %s
Learner background level: %s
Learner prior knowledge: %s

Return a JSON object:
{
  "required": ["concepts that must be known before starting"],
  "recommended": ["concepts that help but are not blocking"],
  "learner_level": "none" | "beginner" | "intermediate" | "advanced",
  "ready_to_start": true or false,
  "gaps_to_bridge": [{"concept": "...", "importance": "critical" | "helpful" | "optional", "suggested_prework": "..."}]
}`, strings.Join(concepts, ", "), orUnknown(profile.BackgroundLevel), prior)
}

func orUnknown(s string) string {
	if s == "" {
		return "unspecified"
	}
	return s
}

package pipeline

import (
	"fmt"
	"strings"

	"github.com/ternarybob/doceo/internal/models"
)

const courseSystemInstruction = `You are an expert curriculum designer.
Respond with a single JSON object and nothing else. Do not add commentary.`

const quizSystemInstruction = `You are an expert assessment writer.
Respond with JSON and nothing else. Do not add commentary.`

// buildCoursePrompt renders the course structure generation prompt from the
// document text, global context and learning plan
func buildCoursePrompt(text string, globalCtx *models.GlobalContext, plan *models.LearningPlan, profile *models.LearnerProfile) string {
	var sb strings.Builder

	sb.WriteString("Design a structured course from the document below.\n\n")

	if profile != nil {
		fmt.Fprintf(&sb, "Learner goal: %s\nLearner background: %s\n",
			profile.Goal, orDefault(profile.BackgroundLevel, "unspecified"))
	}
	if plan != nil {
		fmt.Fprintf(&sb, "Pacing: %d weeks, %d sessions per week, about %d minutes per session\n",
			plan.Pacing.TotalWeeks, plan.Pacing.SessionsPerWeek, plan.Pacing.MinutesPerSession)
	}
	fmt.Fprintf(&sb, "Document difficulty: %s\nMain topics: %s\n\n",
		globalCtx.DifficultyEstimate, strings.Join(globalCtx.MainTopics, ", "))

	if plan != nil {
		if plan.Customization.SkipIntroductory {
			sb.WriteString("Skip introductory material; the learner already knows the basics.\n")
		}
		if plan.Customization.EmphasizeExamples {
			sb.WriteString("Emphasize worked examples and hands-on activities.\n")
		}
		if plan.Customization.IncludePrework {
			sb.WriteString("Open with a short prework module covering missing prerequisites.\n")
		}
		if plan.Customization.ExpandPractice {
			sb.WriteString("Include generous practice and quiz coverage in every lesson.\n")
		}
	}

	sb.WriteString(`
Return a JSON object with exactly this shape:
{
  "title": "course title",
  "description": "1-2 sentences",
  "modules": [
    {
      "title": "module title",
      "description": "...",
      "lessons": [
        {
          "title": "lesson title",
          "key_points": ["..."],
          "time_estimate_minutes": 30,
          "video_search_query": "a good YouTube search for this lesson",
          "resources": {
            "youtube": [{"title": "...", "url": "..."}],
            "articles": [{"title": "...", "url": "..."}],
            "pdfs_docs": [{"title": "...", "url": "..."}]
          },
          "quiz": [
            {"question": "...", "options": ["...", "..."], "answer": "...", "explanation": "..."}
          ]
        }
      ]
    }
  ]
}

Only suggest resource URLs you are confident exist. Use empty arrays otherwise.

Document:
`)
	sb.WriteString(text)

	return sb.String()
}

// buildQuizPrompt renders the per-window quiz extraction prompt used when the
// document exceeds the windowing threshold
func buildQuizPrompt(window string) string {
	return fmt.Sprintf(`Write quiz questions covering the important ideas in this text.

Return a JSON object:
{
  "questions": [
    {"question": "...", "options": ["...", "...", "...", "..."], "answer": "...", "explanation": "..."}
  ]
}

The answer must be one of the options. Write 2-4 questions.

Text:
%s`, window)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

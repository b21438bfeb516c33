package assembler

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/ternarybob/doceo/internal/models"
)

const snippetMaxChars = 160

// BuildCourse transforms validated generative output into the final course
// shape. Pure transform: positional IDs, summary/snippet derived from key
// points, resources categorized by source field, quiz answers repaired to
// honor the answer-in-options contract.
//
// Callers must not invoke this with zero modules; the pipeline synthesizes a
// fallback course instead (see FallbackCourse).
func BuildCourse(generated *models.GeneratedCourse, difficulty models.DocumentDifficulty) *models.Course {
	now := time.Now().UTC()

	course := &models.Course{
		ID:                 uuid.NewString(),
		Title:              generated.Title,
		Description:        generated.Description,
		Sessions:           make([]models.Session, 0, len(generated.Modules)),
		DifficultyEstimate: difficulty,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	totalMinutes := 0
	for i, module := range generated.Modules {
		session := models.Session{
			ID:          fmt.Sprintf("session-%d", i),
			Title:       module.Title,
			Description: module.Description,
			Lessons:     make([]models.Lesson, 0, len(module.Lessons)),
		}

		for j, genLesson := range module.Lessons {
			lesson := buildLesson(i, j, &genLesson)
			totalMinutes += lesson.TimeEstimateMinutes
			session.Lessons = append(session.Lessons, lesson)
		}

		course.Sessions = append(course.Sessions, session)
	}

	course.TotalEstimatedTimeMinutes = totalMinutes
	return course
}

// buildLesson converts one generated lesson, deriving summary and snippet
// from the key points
func buildLesson(sessionIdx, lessonIdx int, gen *models.GeneratedLesson) models.Lesson {
	summary := strings.Join(gen.KeyPoints, ". ")
	snippet := truncate(summary, snippetMaxChars)

	minutes := gen.TimeEstimateMinutes
	if minutes <= 0 {
		minutes = 30
	}

	return models.Lesson{
		ID:                  fmt.Sprintf("session-%d-lesson-%d", sessionIdx, lessonIdx),
		Title:               gen.Title,
		ContentSummary:      summary,
		ContentSnippet:      snippet,
		KeyPoints:           gen.KeyPoints,
		TimeEstimateMinutes: minutes,
		VideoSearchQuery:    gen.VideoSearchQuery,
		Quiz:                buildQuiz(gen.Quiz),
		Resources:           buildResources(&gen.Resources),
	}
}

// buildQuiz copies quiz items, enforcing the answer-in-options contract: when
// options are present and none equals the answer, the answer is appended.
// Questions carrying options but no answer cannot satisfy the contract and
// are dropped.
func buildQuiz(gen []models.GeneratedQuizQuestion) []models.QuizQuestion {
	quiz := make([]models.QuizQuestion, 0, len(gen))
	for _, q := range gen {
		if q.Question == "" {
			continue
		}

		options := q.Options
		if len(options) > 0 {
			if q.Answer == "" {
				continue
			}
			if !contains(options, q.Answer) {
				options = append(append([]string{}, options...), q.Answer)
			}
		}

		quiz = append(quiz, models.QuizQuestion{
			Question:    q.Question,
			Options:     options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		})
	}
	return quiz
}

// buildResources categorizes proposed links by their source field
func buildResources(gen *models.GeneratedResources) []models.Resource {
	var resources []models.Resource

	for _, r := range gen.YouTube {
		if r.URL == "" {
			continue
		}
		resources = append(resources, models.Resource{Title: r.Title, URL: r.URL, Type: models.ResourceTypeVideo})
	}
	for _, r := range gen.Articles {
		if r.URL == "" {
			continue
		}
		resources = append(resources, models.Resource{Title: r.Title, URL: r.URL, Type: models.ResourceTypeArticle})
	}
	for _, r := range gen.PDFsDocs {
		if r.URL == "" {
			continue
		}
		resources = append(resources, models.Resource{Title: r.Title, URL: r.URL, Type: models.ResourceTypeDocs})
	}

	return resources
}

// FallbackCourse synthesizes a minimal single-session, single-lesson course
// when generative output cannot be coerced into a valid module list
func FallbackCourse(text string, globalCtx *models.GlobalContext) *models.Course {
	now := time.Now().UTC()

	title := "Study Guide"
	keyPoints := []string{"Read the source material carefully", "Take notes on key concepts"}
	if globalCtx != nil && len(globalCtx.MainTopics) > 0 {
		title = "Study Guide: " + globalCtx.MainTopics[0]
		keyPoints = globalCtx.MainTopics
		if len(keyPoints) > 5 {
			keyPoints = keyPoints[:5]
		}
	}

	snippet := truncate(strings.TrimSpace(text), snippetMaxChars)

	difficulty := models.DocumentDifficulty("")
	if globalCtx != nil {
		difficulty = globalCtx.DifficultyEstimate
	}

	return &models.Course{
		ID:          uuid.NewString(),
		Title:       title,
		Description: "Automatically generated outline of the supplied material.",
		Sessions: []models.Session{{
			ID:    "session-0",
			Title: title,
			Lessons: []models.Lesson{{
				ID:                  "session-0-lesson-0",
				Title:               "Work through the material",
				ContentSummary:      strings.Join(keyPoints, ". "),
				ContentSnippet:      snippet,
				KeyPoints:           keyPoints,
				TimeEstimateMinutes: 60,
				Quiz:                []models.QuizQuestion{},
				Resources:           []models.Resource{},
			}},
		}},
		TotalEstimatedTimeMinutes: 60,
		DifficultyEstimate:        difficulty,
		Fallback:                  true,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
}

// truncate cuts s to at most max bytes without splitting a rune
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func contains(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}

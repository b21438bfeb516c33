package assembler

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ternarybob/doceo/internal/models"
)

func sampleGenerated() *models.GeneratedCourse {
	return &models.GeneratedCourse{
		Title:       "Algorithms from Scratch",
		Description: "A practical tour.",
		Modules: []models.GeneratedModule{
			{
				Title: "Foundations",
				Lessons: []models.GeneratedLesson{
					{
						Title:               "Big-O Notation",
						KeyPoints:           []string{"Growth rates matter", "Constants are dropped"},
						TimeEstimateMinutes: 25,
						VideoSearchQuery:    "big o notation explained",
						Resources: models.GeneratedResources{
							YouTube:  []models.GeneratedResource{{Title: "Big O", URL: "https://youtube.com/watch?v=abcdefghijk"}},
							Articles: []models.GeneratedResource{{Title: "Big O Guide", URL: "https://example.com/big-o"}},
							PDFsDocs: []models.GeneratedResource{{Title: "Cheat Sheet", URL: "https://example.com/sheet.pdf"}},
						},
						Quiz: []models.GeneratedQuizQuestion{
							{Question: "What is O(n)?", Options: []string{"Linear", "Quadratic"}, Answer: "Linear"},
						},
					},
					{
						Title:               "Recursion",
						KeyPoints:           []string{"Base case first"},
						TimeEstimateMinutes: 35,
					},
				},
			},
			{
				Title: "Sorting",
				Lessons: []models.GeneratedLesson{
					{Title: "Merge Sort", KeyPoints: []string{"Divide and conquer"}, TimeEstimateMinutes: 40},
				},
			},
		},
	}
}

func TestBuildCoursePositionalIDs(t *testing.T) {
	course := BuildCourse(sampleGenerated(), models.DocumentDifficultyIntermediate)

	if len(course.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(course.Sessions))
	}
	if course.Sessions[0].ID != "session-0" || course.Sessions[1].ID != "session-1" {
		t.Errorf("session IDs = %q, %q; want session-0, session-1",
			course.Sessions[0].ID, course.Sessions[1].ID)
	}
	if got := course.Sessions[0].Lessons[1].ID; got != "session-0-lesson-1" {
		t.Errorf("lesson ID = %q, want session-0-lesson-1", got)
	}
	if got := course.Sessions[1].Lessons[0].ID; got != "session-1-lesson-0" {
		t.Errorf("lesson ID = %q, want session-1-lesson-0", got)
	}
}

func TestBuildCourseTotalTime(t *testing.T) {
	course := BuildCourse(sampleGenerated(), models.DocumentDifficultyIntermediate)

	if course.TotalEstimatedTimeMinutes != 100 {
		t.Errorf("TotalEstimatedTimeMinutes = %d, want 100", course.TotalEstimatedTimeMinutes)
	}
}

func TestBuildCourseSummaryAndSnippet(t *testing.T) {
	course := BuildCourse(sampleGenerated(), models.DocumentDifficultyIntermediate)

	lesson := course.Sessions[0].Lessons[0]
	if lesson.ContentSummary != "Growth rates matter. Constants are dropped" {
		t.Errorf("ContentSummary = %q", lesson.ContentSummary)
	}
	if len(lesson.ContentSnippet) > 160 {
		t.Errorf("ContentSnippet is %d chars, want <= 160", len(lesson.ContentSnippet))
	}
}

func TestBuildCourseResourceCategories(t *testing.T) {
	course := BuildCourse(sampleGenerated(), models.DocumentDifficultyIntermediate)

	resources := course.Sessions[0].Lessons[0].Resources
	if len(resources) != 3 {
		t.Fatalf("got %d resources, want 3", len(resources))
	}

	byType := map[models.ResourceType]int{}
	for _, r := range resources {
		byType[r.Type]++
	}
	if byType[models.ResourceTypeVideo] != 1 || byType[models.ResourceTypeArticle] != 1 || byType[models.ResourceTypeDocs] != 1 {
		t.Errorf("resource categories = %v, want one of each", byType)
	}
}

func TestBuildCourseRepairsQuizAnswer(t *testing.T) {
	generated := sampleGenerated()
	generated.Modules[0].Lessons[0].Quiz = []models.GeneratedQuizQuestion{
		{Question: "Pick one", Options: []string{"A", "B"}, Answer: "C"},
	}

	course := BuildCourse(generated, models.DocumentDifficultyIntermediate)

	quiz := course.Sessions[0].Lessons[0].Quiz
	if len(quiz) != 1 {
		t.Fatalf("got %d quiz questions, want 1", len(quiz))
	}

	found := false
	for _, option := range quiz[0].Options {
		if option == quiz[0].Answer {
			found = true
		}
	}
	if !found {
		t.Errorf("answer %q not among options %v; the contract requires it", quiz[0].Answer, quiz[0].Options)
	}
}

func TestBuildCourseDropsQuestionWithoutAnswer(t *testing.T) {
	generated := sampleGenerated()
	generated.Modules[0].Lessons[0].Quiz = []models.GeneratedQuizQuestion{
		{Question: "Pick one", Options: []string{"A", "B"}}, // no answer to repair with
		{Question: "What grows linearly?", Options: []string{"O(n)", "O(n^2)"}, Answer: "O(n)"},
		{Question: "Explain amortized cost"}, // short answer form, no options
	}

	course := BuildCourse(generated, models.DocumentDifficultyIntermediate)

	quiz := course.Sessions[0].Lessons[0].Quiz
	if len(quiz) != 2 {
		t.Fatalf("got %d quiz questions, want 2 (answerless multiple-choice must be dropped)", len(quiz))
	}
	for _, q := range quiz {
		if len(q.Options) > 0 && !contains(q.Options, q.Answer) {
			t.Errorf("question %q: answer %q not among options %v", q.Question, q.Answer, q.Options)
		}
	}
}

func TestBuildCourseSnippetRuneBoundary(t *testing.T) {
	generated := sampleGenerated()
	generated.Modules[0].Lessons[0].KeyPoints = []string{strings.Repeat("グラフ理論", 20)}

	course := BuildCourse(generated, models.DocumentDifficultyIntermediate)

	snippet := course.Sessions[0].Lessons[0].ContentSnippet
	if len(snippet) > snippetMaxChars {
		t.Errorf("snippet is %d bytes, want <= %d", len(snippet), snippetMaxChars)
	}
	if !utf8.ValidString(snippet) {
		t.Error("snippet truncation must not split a rune")
	}
}

func TestFallbackCourse(t *testing.T) {
	globalCtx := &models.GlobalContext{
		MainTopics:         []string{"graphs", "trees"},
		DifficultyEstimate: models.DocumentDifficultyBeginner,
	}

	course := FallbackCourse("Some source material about graphs.", globalCtx)

	if !course.Fallback {
		t.Error("fallback course must be flagged")
	}
	if len(course.Sessions) != 1 || len(course.Sessions[0].Lessons) != 1 {
		t.Fatalf("fallback course must have exactly one session and one lesson")
	}
	if course.Sessions[0].ID != "session-0" {
		t.Errorf("session ID = %q, want session-0", course.Sessions[0].ID)
	}
	if course.Sessions[0].Lessons[0].ID != "session-0-lesson-0" {
		t.Errorf("lesson ID = %q, want session-0-lesson-0", course.Sessions[0].Lessons[0].ID)
	}
	if course.DifficultyEstimate != models.DocumentDifficultyBeginner {
		t.Errorf("difficulty = %q, want beginner", course.DifficultyEstimate)
	}
}

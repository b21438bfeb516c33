package models

import "time"

// ResourceType tags a lesson resource by medium
type ResourceType string

const (
	ResourceTypeVideo   ResourceType = "video"
	ResourceTypeArticle ResourceType = "article"
	ResourceTypeDocs    ResourceType = "docs"
)

// Resource is supplementary material attached to a lesson
type Resource struct {
	Title      string       `json:"title"`
	URL        string       `json:"url"`
	Type       ResourceType `json:"type"`
	Embeddable bool         `json:"embeddable,omitempty"`
	EmbedURL   string       `json:"embed_url,omitempty"`
	Author     string       `json:"author,omitempty"`
	Thumbnail  string       `json:"thumbnail,omitempty"`
}

// QuizQuestion is a single multiple-choice or short-answer check.
// Invariant: when Options is non-empty, Answer equals one of its elements.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// Lesson is the atomic unit of study. Belongs to exactly one session.
// Mutated in place only by the video resource subsystem (appending resources).
type Lesson struct {
	ID                  string         `json:"id"` // session-<i>-lesson-<j>, positional
	Title               string         `json:"title"`
	ContentSummary      string         `json:"content_summary"`
	ContentSnippet      string         `json:"content_snippet"`
	KeyPoints           []string       `json:"key_points"`
	TimeEstimateMinutes int            `json:"time_estimate_minutes"`
	VideoSearchQuery    string         `json:"video_search_query,omitempty"`
	Quiz                []QuizQuestion `json:"quiz"`
	Resources           []Resource     `json:"resources"`
}

// Session groups an ordered list of lessons
type Session struct {
	ID          string   `json:"id"` // session-<i>, positional
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Lessons     []Lesson `json:"lessons"`
}

// Course is the final synthesized artifact
type Course struct {
	ID                        string             `json:"id"`
	Title                     string             `json:"title"`
	Description               string             `json:"description,omitempty"`
	Sessions                  []Session          `json:"sessions"`
	TotalEstimatedTimeMinutes int                `json:"total_estimated_time_minutes"`
	DifficultyEstimate        DocumentDifficulty `json:"difficulty_estimate,omitempty"`
	Fallback                  bool               `json:"fallback,omitempty"` // True when synthesized from unusable generative output
	CreatedAt                 time.Time          `json:"created_at"`
	UpdatedAt                 time.Time          `json:"updated_at"`
}

// CourseResult is the discriminated pipeline outcome. Callers branch on
// Error being empty, never on errors crossing the pipeline boundary.
type CourseResult struct {
	Course *Course       `json:"course,omitempty"`
	Plan   *LearningPlan `json:"learning_plan,omitempty"`
	Error  string        `json:"error,omitempty"`
}

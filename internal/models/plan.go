package models

import "time"

// GoalAlignment scores how well the document matches the learner's stated goal
type GoalAlignment struct {
	RelevanceScore      int      `json:"relevance_score"` // 0-100
	AlignedTopics       []string `json:"aligned_topics"`
	MissingFromDocument []string `json:"missing_from_document"` // Goal topics the document doesn't cover
	ExcessInDocument    []string `json:"excess_in_document"`    // Document topics outside the goal
	Recommendations     []string `json:"recommendations"`
}

// KnowledgeGap is a prerequisite concept the learner has not yet covered
type KnowledgeGap struct {
	Concept          string `json:"concept"`
	Importance       string `json:"importance"` // "critical", "helpful", "optional"
	SuggestedPrework string `json:"suggested_prework,omitempty"`
}

// PrerequisiteCheck assesses the learner's readiness to start
type PrerequisiteCheck struct {
	Required     []string       `json:"required"`
	Recommended  []string       `json:"recommended"`
	LearnerLevel string         `json:"learner_level"`
	ReadyToStart bool           `json:"ready_to_start"`
	Gaps         []KnowledgeGap `json:"gaps_to_bridge"`
}

// PacingPlan is the weekly time budget and session cadence derived from the
// learner's constraints. Pure arithmetic, no external calls.
type PacingPlan struct {
	TotalWeeks               int `json:"total_weeks"`
	HoursPerWeek             int `json:"hours_per_week"`
	SessionsPerWeek          int `json:"sessions_per_week"`
	MinutesPerSession        int `json:"minutes_per_session"`
	FlexibilityBufferPercent int `json:"flexibility_buffer_percent"`
}

// CustomizationStrategy flags how the course should be shaped for this learner
type CustomizationStrategy struct {
	SkipIntroductory  bool `json:"skip_introductory"`
	EmphasizeExamples bool `json:"emphasize_examples"`
	IncludePrework    bool `json:"include_prework"`
	CompressTimeline  bool `json:"compress_timeline"`
	ExpandPractice    bool `json:"expand_practice"`
}

// LearningPlan is the full alignment output for one learner and one document.
// Computed once; immutable result object.
type LearningPlan struct {
	GoalAlignment        GoalAlignment         `json:"goal_alignment"`
	PrerequisiteCheck    PrerequisiteCheck     `json:"prerequisite_check"`
	Pacing               PacingPlan            `json:"pacing"`
	RelevantChunkIDs     []string              `json:"relevant_chunk_ids"`
	Customization        CustomizationStrategy `json:"customization_strategy"`
	ConfidenceLevel      int                   `json:"confidence_level"` // 0-100
	TargetCompletionDate time.Time             `json:"target_completion_date"`
}

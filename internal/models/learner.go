package models

import "time"

// LearnerProfile describes the learner's goal and constraints.
// Supplied by the caller; never mutated by the pipeline.
type LearnerProfile struct {
	Goal                    string     `json:"goal" validate:"required"`
	GoalType                string     `json:"goal_type,omitempty"` // e.g. "exam_prep", "career", "curiosity"
	BackgroundLevel         string     `json:"background_level,omitempty" validate:"omitempty,oneof=none beginner intermediate advanced"`
	PriorKnowledge          []string   `json:"prior_knowledge,omitempty"`
	TimePerWeekHours        float64    `json:"time_per_week_hours" validate:"gt=0"`
	Deadline                *time.Time `json:"deadline,omitempty"`
	LearningStyle           string     `json:"learning_style,omitempty"` // e.g. "visual", "hands_on", "reading"
	PacingPreference        string     `json:"pacing_preference,omitempty"`
	QuizPreference          string     `json:"quiz_preference,omitempty"`
	PreferredSessionMinutes int        `json:"preferred_session_minutes,omitempty" validate:"omitempty,gt=0"`
}

// SessionLengthOrDefault returns the preferred session length in minutes,
// falling back to 45 when unset.
func (p *LearnerProfile) SessionLengthOrDefault() int {
	if p.PreferredSessionMinutes > 0 {
		return p.PreferredSessionMinutes
	}
	return 45
}

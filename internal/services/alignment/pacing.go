package alignment

import (
	"math"
	"time"

	"github.com/ternarybob/doceo/internal/models"
)

const (
	// minutesPerChunk is the study-time estimate for one content chunk
	minutesPerChunk = 30

	// flexibilityBufferPercent is the fixed schedule slack
	flexibilityBufferPercent = 20
)

// ComputePacing derives the weekly time budget and session cadence from the
// chunk count and the learner's constraints. Pure arithmetic, no external
// calls; all divisions round up so the schedule never under-budgets.
func ComputePacing(chunkCount int, profile *models.LearnerProfile, now time.Time) models.PacingPlan {
	totalMinutes := chunkCount * minutesPerChunk
	totalHours := float64(totalMinutes) / 60.0

	var totalWeeks int
	if profile.Deadline != nil {
		totalWeeks = int(math.Ceil(profile.Deadline.Sub(now).Hours() / (24 * 7)))
		if totalWeeks < 1 {
			totalWeeks = 1
		}
	} else {
		perWeek := profile.TimePerWeekHours
		if perWeek <= 0 {
			perWeek = 5
		}
		totalWeeks = int(math.Ceil(totalHours / perWeek))
		if totalWeeks < 1 {
			totalWeeks = 1
		}
	}

	hoursPerWeek := int(math.Ceil(totalHours / float64(totalWeeks)))
	if hoursPerWeek < 1 {
		hoursPerWeek = 1
	}

	sessionLength := profile.SessionLengthOrDefault()
	sessionsPerWeek := int(math.Ceil(float64(hoursPerWeek*60) / float64(sessionLength)))
	if sessionsPerWeek < 1 {
		sessionsPerWeek = 1
	}

	minutesPerSession := int(math.Ceil(float64(hoursPerWeek*60) / float64(sessionsPerWeek)))

	return models.PacingPlan{
		TotalWeeks:               totalWeeks,
		HoursPerWeek:             hoursPerWeek,
		SessionsPerWeek:          sessionsPerWeek,
		MinutesPerSession:        minutesPerSession,
		FlexibilityBufferPercent: flexibilityBufferPercent,
	}
}

// CompletionDate returns the supplied deadline when present, otherwise
// now + ceil(totalWeeks × (1 + buffer/100)) weeks.
func CompletionDate(pacing models.PacingPlan, profile *models.LearnerProfile, now time.Time) time.Time {
	if profile.Deadline != nil {
		return *profile.Deadline
	}

	buffered := float64(pacing.TotalWeeks) * (1 + float64(pacing.FlexibilityBufferPercent)/100.0)
	weeks := int(math.Ceil(buffered))
	return now.AddDate(0, 0, weeks*7)
}

// ComputeConfidence scores overall plan confidence on [0,100].
// Start at 50; add relevance×0.4; add 30 when ready else a penalty scaled by
// critical gap count; subtract 5 per missing topic; clamp once at the end.
func ComputeConfidence(alignment models.GoalAlignment, prereq models.PrerequisiteCheck) int {
	score := 50.0
	score += float64(alignment.RelevanceScore) * 0.4

	if prereq.ReadyToStart {
		score += 30
	} else {
		critical := 0
		for _, gap := range prereq.Gaps {
			if gap.Importance == "critical" {
				critical++
			}
		}
		score += math.Max(0, 30-10*float64(critical))
	}

	score -= 5 * float64(len(alignment.MissingFromDocument))

	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

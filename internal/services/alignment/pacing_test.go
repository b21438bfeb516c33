package alignment

import (
	"testing"
	"time"

	"github.com/ternarybob/doceo/internal/models"
)

func TestComputePacingNoDeadline(t *testing.T) {
	// 20 chunks ~= 600 minutes ~= 10 hours at 5 h/week => 2 weeks
	profile := &models.LearnerProfile{
		Goal:             "learn",
		TimePerWeekHours: 5,
	}

	pacing := ComputePacing(20, profile, time.Now())

	if pacing.TotalWeeks != 2 {
		t.Errorf("TotalWeeks = %d, want 2", pacing.TotalWeeks)
	}
	if pacing.HoursPerWeek != 5 {
		t.Errorf("HoursPerWeek = %d, want 5", pacing.HoursPerWeek)
	}
	if pacing.SessionsPerWeek < 1 {
		t.Errorf("SessionsPerWeek = %d, want >= 1", pacing.SessionsPerWeek)
	}
	// Weekly session capacity must cover the weekly hour budget
	if pacing.SessionsPerWeek*pacing.MinutesPerSession < pacing.HoursPerWeek*60 {
		t.Errorf("sessions %d x %d min < %d hours of content",
			pacing.SessionsPerWeek, pacing.MinutesPerSession, pacing.HoursPerWeek)
	}
	if pacing.FlexibilityBufferPercent != 20 {
		t.Errorf("FlexibilityBufferPercent = %d, want 20", pacing.FlexibilityBufferPercent)
	}
}

func TestComputePacingWithDeadline(t *testing.T) {
	now := time.Now()
	deadline := now.Add(10 * 24 * time.Hour) // ~1.4 weeks => ceil 2

	profile := &models.LearnerProfile{
		Goal:             "exam",
		TimePerWeekHours: 3,
		Deadline:         &deadline,
	}

	pacing := ComputePacing(20, profile, now)
	if pacing.TotalWeeks != 2 {
		t.Errorf("TotalWeeks = %d, want 2 (driven by deadline)", pacing.TotalWeeks)
	}
}

func TestComputePacingPastDeadlineClampsToOneWeek(t *testing.T) {
	now := time.Now()
	deadline := now.Add(-24 * time.Hour)

	profile := &models.LearnerProfile{
		Goal:             "late",
		TimePerWeekHours: 5,
		Deadline:         &deadline,
	}

	pacing := ComputePacing(4, profile, now)
	if pacing.TotalWeeks != 1 {
		t.Errorf("TotalWeeks = %d, want minimum 1", pacing.TotalWeeks)
	}
}

func TestComputePacingSessionLengthDefault(t *testing.T) {
	profile := &models.LearnerProfile{
		Goal:                    "learn",
		TimePerWeekHours:        5,
		PreferredSessionMinutes: 90,
	}

	pacing := ComputePacing(20, profile, time.Now())
	// 5 h/week = 300 min at 90-min sessions => ceil(300/90) = 4 sessions
	if pacing.SessionsPerWeek != 4 {
		t.Errorf("SessionsPerWeek = %d, want 4", pacing.SessionsPerWeek)
	}
	if pacing.MinutesPerSession != 75 {
		t.Errorf("MinutesPerSession = %d, want 75", pacing.MinutesPerSession)
	}
}

func TestComputeConfidenceBounds(t *testing.T) {
	// Every combination must land in [0,100]
	for relevance := 0; relevance <= 100; relevance += 25 {
		for gaps := 0; gaps <= 6; gaps += 2 {
			for missing := 0; missing <= 20; missing += 5 {
				alignment := models.GoalAlignment{
					RelevanceScore:      relevance,
					MissingFromDocument: make([]string, missing),
				}
				check := models.PrerequisiteCheck{ReadyToStart: false}
				for i := 0; i < gaps; i++ {
					check.Gaps = append(check.Gaps, models.KnowledgeGap{Concept: "c", Importance: "critical"})
				}

				got := ComputeConfidence(alignment, check)
				if got < 0 || got > 100 {
					t.Fatalf("ComputeConfidence(relevance=%d, gaps=%d, missing=%d) = %d, out of [0,100]",
						relevance, gaps, missing, got)
				}
			}
		}
	}
}

func TestComputeConfidenceValues(t *testing.T) {
	tests := []struct {
		name      string
		relevance int
		ready     bool
		critical  int
		missing   int
		want      int
	}{
		{name: "perfect fit ready", relevance: 100, ready: true, want: 100}, // 50+40+30=120 clamped
		{name: "neutral ready", relevance: 50, ready: true, want: 100},      // 50+20+30=100
		{name: "not ready no gaps", relevance: 50, ready: false, want: 100}, // 50+20+30
		{name: "not ready two critical gaps", relevance: 50, ready: false, critical: 2, want: 80}, // 50+20+10
		{name: "missing topics penalized", relevance: 0, ready: false, critical: 3, missing: 4, want: 30}, // 50+0+0-20
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alignment := models.GoalAlignment{
				RelevanceScore:      tt.relevance,
				MissingFromDocument: make([]string, tt.missing),
			}
			check := models.PrerequisiteCheck{ReadyToStart: tt.ready}
			for i := 0; i < tt.critical; i++ {
				check.Gaps = append(check.Gaps, models.KnowledgeGap{Concept: "c", Importance: "critical"})
			}

			if got := ComputeConfidence(alignment, check); got != tt.want {
				t.Errorf("ComputeConfidence() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompletionDate(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	deadline := now.Add(21 * 24 * time.Hour)
	withDeadline := &models.LearnerProfile{Goal: "g", TimePerWeekHours: 5, Deadline: &deadline}
	pacing := models.PacingPlan{TotalWeeks: 2, FlexibilityBufferPercent: 20}

	if got := CompletionDate(pacing, withDeadline, now); !got.Equal(deadline) {
		t.Errorf("CompletionDate with deadline = %v, want %v", got, deadline)
	}

	noDeadline := &models.LearnerProfile{Goal: "g", TimePerWeekHours: 5}
	// 2 weeks * 1.2 = 2.4 => ceil 3 weeks
	want := now.AddDate(0, 0, 21)
	if got := CompletionDate(pacing, noDeadline, now); !got.Equal(want) {
		t.Errorf("CompletionDate without deadline = %v, want %v", got, want)
	}
}

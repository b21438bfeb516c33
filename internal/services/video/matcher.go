package video

import (
	"regexp"
	"strings"

	"github.com/ternarybob/doceo/internal/models"
)

// jaccardThreshold is the minimum similarity for a lesson/video match
const jaccardThreshold = 0.3

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "are": true, "was": true, "were": true,
	"you": true, "your": true, "how": true, "what": true, "why": true,
	"can": true, "not": true, "but": true, "all": true, "its": true,
	"into": true, "about": true, "when": true, "where": true, "which": true,
	"will": true, "have": true, "has": true, "had": true, "been": true,
}

var nonWordPattern = regexp.MustCompile(`[^a-z0-9\s]`)

// KeywordSet builds the normalized token set for matching: lowercased,
// punctuation stripped, stop words removed, tokens longer than 2 characters.
func KeywordSet(parts ...string) map[string]bool {
	set := make(map[string]bool)
	for _, part := range parts {
		cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(part), " ")
		for _, token := range strings.Fields(cleaned) {
			if len(token) <= 2 || stopWords[token] {
				continue
			}
			set[token] = true
		}
	}
	return set
}

// Jaccard computes |intersection| / |union| of two keyword sets.
// Two empty sets score 0.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// MatchResult pairs a lesson index with its assigned validated video
type MatchResult struct {
	LessonIndex int
	Video       *models.VideoValidation
}

// lessonKeywords is the matching input for one lesson
type lessonKeywords struct {
	index int
	set   map[string]bool
}

// MatchLessons assigns validated videos to lessons one-to-one. Lessons are
// visited in declared order; each takes the unused video with the highest
// Jaccard score, accepted only above the threshold. No video is reused, so
// matching is injective. Unmatched lessons simply get no entry.
func MatchLessons(lessons []models.Lesson, videos []*models.VideoValidation) []MatchResult {
	videoSets := make([]map[string]bool, len(videos))
	for i, v := range videos {
		if v != nil && v.Reason == models.ReasonOK {
			videoSets[i] = KeywordSet(v.Title)
		}
	}

	prepared := make([]lessonKeywords, len(lessons))
	for i, lesson := range lessons {
		parts := append([]string{lesson.Title}, lesson.KeyPoints...)
		prepared[i] = lessonKeywords{index: i, set: KeywordSet(parts...)}
	}

	used := make([]bool, len(videos))
	var matches []MatchResult

	for _, lk := range prepared {
		bestIdx := -1
		bestScore := 0.0

		for vi, set := range videoSets {
			if set == nil || used[vi] {
				continue
			}
			score := Jaccard(lk.set, set)
			if score > bestScore {
				bestScore = score
				bestIdx = vi
			}
		}

		if bestIdx >= 0 && bestScore > jaccardThreshold {
			used[bestIdx] = true
			matches = append(matches, MatchResult{LessonIndex: lk.index, Video: videos[bestIdx]})
		}
	}

	return matches
}

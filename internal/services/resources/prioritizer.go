package resources

import (
	"net/url"
	"sort"
	"strings"

	"github.com/ternarybob/doceo/internal/models"
)

// Scoring constants. Videos outrank docs outrank articles; embeddability and
// a verified source host each earn a bonus.
const (
	scoreVideo          = 100
	scoreDocs           = 75
	scoreArticle        = 50
	bonusEmbeddable     = 50
	bonusVerifiedSource = 25

	defaultMaxPerLesson = 5
)

// Prioritizer dedups, scores and caps lesson resources
type Prioritizer struct {
	verifiedHosts map[string]bool
	maxPerLesson  int
}

// NewPrioritizer creates a prioritizer with a verified-source allowlist
func NewPrioritizer(verifiedSources []string, maxPerLesson int) *Prioritizer {
	if maxPerLesson <= 0 {
		maxPerLesson = defaultMaxPerLesson
	}

	hosts := make(map[string]bool, len(verifiedSources))
	for _, source := range verifiedSources {
		hosts[strings.ToLower(source)] = true
	}

	return &Prioritizer{
		verifiedHosts: hosts,
		maxPerLesson:  maxPerLesson,
	}
}

// PrioritizeCourse applies prioritization to every lesson in place
func (p *Prioritizer) PrioritizeCourse(course *models.Course) {
	for si := range course.Sessions {
		for li := range course.Sessions[si].Lessons {
			lesson := &course.Sessions[si].Lessons[li]
			lesson.Resources = p.Prioritize(lesson.Resources)
		}
	}
}

// Prioritize dedups by normalized title+URL (first occurrence wins), sorts by
// descending score with a stable sort so equal scores keep input order, and
// caps the list.
func (p *Prioritizer) Prioritize(resources []models.Resource) []models.Resource {
	seen := make(map[string]bool)
	deduped := make([]models.Resource, 0, len(resources))

	for _, resource := range resources {
		key := normalizeTitle(resource.Title) + "|" + normalizeURL(resource.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, resource)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return p.score(deduped[i]) > p.score(deduped[j])
	})

	if len(deduped) > p.maxPerLesson {
		deduped = deduped[:p.maxPerLesson]
	}
	return deduped
}

// score ranks a single resource
func (p *Prioritizer) score(resource models.Resource) int {
	score := 0
	switch resource.Type {
	case models.ResourceTypeVideo:
		score = scoreVideo
		if resource.Embeddable {
			score += bonusEmbeddable
		}
	case models.ResourceTypeDocs:
		score = scoreDocs
	case models.ResourceTypeArticle:
		score = scoreArticle
	}

	if p.isVerified(resource.URL) {
		score += bonusVerifiedSource
	}
	return score
}

// isVerified checks the URL host against the allowlist, with and without a
// leading www prefix
func (p *Prioritizer) isVerified(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}

	host := strings.ToLower(parsed.Host)
	return p.verifiedHosts[host] || p.verifiedHosts[strings.TrimPrefix(host, "www.")]
}

// normalizeURL reduces a URL to origin+path, stripping query and fragment
func normalizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return strings.TrimSpace(strings.ToLower(raw))
	}

	normalized := strings.ToLower(parsed.Scheme + "://" + parsed.Host + parsed.Path)
	return strings.TrimSuffix(normalized, "/")
}

// normalizeTitle lowercases, trims and collapses internal whitespace
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

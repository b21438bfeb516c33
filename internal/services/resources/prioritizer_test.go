package resources

import (
	"fmt"
	"testing"

	"github.com/ternarybob/doceo/internal/models"
)

func TestPrioritizeDedupsQueryParams(t *testing.T) {
	p := NewPrioritizer(nil, 5)

	resources := []models.Resource{
		{Title: "Big O Guide", URL: "https://example.com/big-o?utm_source=feed", Type: models.ResourceTypeArticle},
		{Title: "Big O Guide", URL: "https://example.com/big-o?ref=homepage", Type: models.ResourceTypeArticle},
	}

	got := p.Prioritize(resources)
	if len(got) != 1 {
		t.Fatalf("got %d resources, want 1 (same title and origin+path must collapse)", len(got))
	}
	// First occurrence wins
	if got[0].URL != "https://example.com/big-o?utm_source=feed" {
		t.Errorf("kept %q, want the first occurrence", got[0].URL)
	}
}

func TestPrioritizeScoreOrdering(t *testing.T) {
	p := NewPrioritizer([]string{"developer.mozilla.org"}, 10)

	resources := []models.Resource{
		{Title: "Article", URL: "https://blog.example.com/post", Type: models.ResourceTypeArticle},
		{Title: "Plain Video", URL: "https://youtube.com/watch?v=aaaaaaaaaaa", Type: models.ResourceTypeVideo},
		{Title: "Docs", URL: "https://docs.example.com/ref", Type: models.ResourceTypeDocs},
		{Title: "Embeddable Video", URL: "https://youtube.com/watch?v=bbbbbbbbbbb", Type: models.ResourceTypeVideo, Embeddable: true},
		{Title: "MDN Article", URL: "https://developer.mozilla.org/en-US/docs/Web", Type: models.ResourceTypeArticle},
	}

	got := p.Prioritize(resources)

	// Scores: embeddable video 150, plain video 100, docs 75, verified article 75,
	// plain article 50. Docs and the verified article tie; stable sort keeps
	// their input order.
	wantOrder := []string{"Embeddable Video", "Plain Video", "Docs", "MDN Article", "Article"}

	if len(got) != len(wantOrder) {
		t.Fatalf("got %d resources, want %d", len(got), len(wantOrder))
	}
	for i, want := range wantOrder {
		if got[i].Title != want {
			t.Errorf("position %d = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestPrioritizeCap(t *testing.T) {
	p := NewPrioritizer(nil, 5)

	var resources []models.Resource
	for i := 0; i < 9; i++ {
		resources = append(resources, models.Resource{
			Title: fmt.Sprintf("Article %d", i),
			URL:   fmt.Sprintf("https://example.com/a%d", i),
			Type:  models.ResourceTypeArticle,
		})
	}

	got := p.Prioritize(resources)
	if len(got) != 5 {
		t.Errorf("got %d resources, want capped at 5", len(got))
	}
}

func TestPrioritizeVerifiedSourceWwwPrefix(t *testing.T) {
	p := NewPrioritizer([]string{"khanacademy.org"}, 5)

	resources := []models.Resource{
		{Title: "Khan", URL: "https://www.khanacademy.org/math", Type: models.ResourceTypeArticle},
		{Title: "Other", URL: "https://other.example.com/math", Type: models.ResourceTypeArticle},
	}

	got := p.Prioritize(resources)
	if got[0].Title != "Khan" {
		t.Errorf("verified source must outrank unverified, got %q first", got[0].Title)
	}
}

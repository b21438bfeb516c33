package video

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
)

// routedMetadata keys canned oEmbed results by video ID
type routedMetadata struct {
	byID map[string]*models.VideoMetadata
}

func (f *routedMetadata) Lookup(_ context.Context, url string) (*models.VideoMetadata, error) {
	if meta, ok := f.byID[ExtractVideoID(url)]; ok {
		return meta, nil
	}
	return nil, fmt.Errorf("404")
}

// routedStatus keys canned status results by video ID
type routedStatus struct {
	byID map[string]*models.VideoStatus
}

func (f *routedStatus) Status(_ context.Context, id string) (*models.VideoStatus, error) {
	return f.byID[id], nil
}

type fakeSearch struct {
	items []models.VideoSearchItem
	calls int
}

func (f *fakeSearch) Search(_ context.Context, _ string, _ int, _, _ time.Duration) ([]models.VideoSearchItem, error) {
	f.calls++
	return f.items, nil
}

func okStatus() *models.VideoStatus {
	return &models.VideoStatus{Embeddable: boolPtr(true), PrivacyStatus: "public"}
}

func searchItem(id, title string) models.VideoSearchItem {
	return models.VideoSearchItem{
		ID:       id,
		Title:    title,
		Channel:  "a channel",
		WatchURL: "https://www.youtube.com/watch?v=" + id,
		EmbedURL: "https://www.youtube.com/embed/" + id,
	}
}

func courseWithLesson(lesson models.Lesson) *models.Course {
	lesson.ID = "session-0-lesson-0"
	return &models.Course{
		ID:    "course-1",
		Title: "Test Course",
		Sessions: []models.Session{
			{ID: "session-0", Title: "Session", Lessons: []models.Lesson{lesson}},
		},
	}
}

func videoResources(lesson models.Lesson) []models.Resource {
	var videos []models.Resource
	for _, r := range lesson.Resources {
		if r.Type == models.ResourceTypeVideo {
			videos = append(videos, r)
		}
	}
	return videos
}

func TestEnrichSearchFallbackPicksFirstEmbeddable(t *testing.T) {
	meta := &routedMetadata{byID: map[string]*models.VideoMetadata{
		"aaaaaaaaaaa": {Title: "Locked Walkthrough"},
		"bbbbbbbbbbb": {Title: "Open Walkthrough"},
	}}
	status := &routedStatus{byID: map[string]*models.VideoStatus{
		"aaaaaaaaaaa": {Embeddable: boolPtr(false), PrivacyStatus: "public"},
		"bbbbbbbbbbb": okStatus(),
	}}
	search := &fakeSearch{items: []models.VideoSearchItem{
		searchItem("aaaaaaaaaaa", "Locked Walkthrough"),
		searchItem("bbbbbbbbbbb", "Open Walkthrough"),
	}}

	validator := NewValidator(meta, status, 4, arbor.NewLogger())
	svc := NewService(validator, search, 5, arbor.NewLogger())

	course := courseWithLesson(models.Lesson{
		Title:            "Graph Traversal",
		VideoSearchQuery: "graph traversal walkthrough",
	})
	svc.Enrich(context.Background(), course)

	videos := videoResources(course.Sessions[0].Lessons[0])
	if len(videos) != 1 {
		t.Fatalf("got %d video resources, want 1", len(videos))
	}
	if !videos[0].Embeddable {
		t.Error("attached video must be embeddable")
	}
	if videos[0].EmbedURL != "https://www.youtube.com/embed/bbbbbbbbbbb" {
		t.Errorf("attached %q, want the first embeddable result (second ranked)", videos[0].EmbedURL)
	}
	if search.calls != 1 {
		t.Errorf("search called %d times, want 1", search.calls)
	}
}

func TestEnrichNoPassingResultLeavesLessonUntouched(t *testing.T) {
	meta := &routedMetadata{byID: map[string]*models.VideoMetadata{
		"aaaaaaaaaaa": {Title: "Locked Walkthrough"},
	}}
	status := &routedStatus{byID: map[string]*models.VideoStatus{
		"aaaaaaaaaaa": {Embeddable: boolPtr(false), PrivacyStatus: "public"},
	}}
	search := &fakeSearch{items: []models.VideoSearchItem{
		searchItem("aaaaaaaaaaa", "Locked Walkthrough"),
	}}

	validator := NewValidator(meta, status, 4, arbor.NewLogger())
	svc := NewService(validator, search, 5, arbor.NewLogger())

	course := courseWithLesson(models.Lesson{
		Title:            "Graph Traversal",
		VideoSearchQuery: "graph traversal walkthrough",
	})
	svc.Enrich(context.Background(), course)

	if videos := videoResources(course.Sessions[0].Lessons[0]); len(videos) != 0 {
		t.Errorf("got %d video resources, want 0 (no passing result means no video)", len(videos))
	}
}

func TestEnrichMatchedLessonSkipsSearch(t *testing.T) {
	meta := &routedMetadata{byID: map[string]*models.VideoMetadata{
		"ccccccccccc": {Title: "Binary Search Tree Tutorial", Author: "a teacher"},
	}}
	status := &routedStatus{byID: map[string]*models.VideoStatus{
		"ccccccccccc": okStatus(),
	}}
	search := &fakeSearch{}

	validator := NewValidator(meta, status, 4, arbor.NewLogger())
	svc := NewService(validator, search, 5, arbor.NewLogger())

	course := courseWithLesson(models.Lesson{
		Title:            "Binary Search Trees",
		KeyPoints:        []string{"tree", "balance"},
		VideoSearchQuery: "binary search trees",
		Resources: []models.Resource{
			{Title: "BST", URL: "https://www.youtube.com/watch?v=ccccccccccc", Type: models.ResourceTypeVideo},
		},
	})
	svc.Enrich(context.Background(), course)

	videos := videoResources(course.Sessions[0].Lessons[0])
	if len(videos) != 1 {
		t.Fatalf("got %d video resources, want the single validated candidate", len(videos))
	}
	if videos[0].URL != "https://www.youtube.com/watch?v=ccccccccccc" {
		t.Errorf("attached URL = %q, want the validated candidate's watch URL", videos[0].URL)
	}
	if !videos[0].Embeddable || videos[0].EmbedURL == "" {
		t.Error("validated candidate must carry embed details")
	}
	if search.calls != 0 {
		t.Errorf("search called %d times, want 0 (matched lessons skip the fallback)", search.calls)
	}
}

package video

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

const (
	minVideoDuration = 60 * time.Second
	maxVideoDuration = 2 * time.Hour
)

// Service enriches an assembled course with validated video resources.
// Three phases per course: validate the candidate URLs the model proposed,
// match validated videos to lessons by title similarity, then search for
// videos for lessons that remain unmatched. Every failure here is non-fatal;
// the course is returned with whatever videos could be attached.
type Service struct {
	validator *Validator
	search    interfaces.VideoSearchService
	logger    arbor.ILogger
	maxSearch int
}

// NewService creates a video enrichment service
func NewService(validator *Validator, search interfaces.VideoSearchService, searchMaxResults int, logger arbor.ILogger) *Service {
	if searchMaxResults <= 0 {
		searchMaxResults = 5
	}
	return &Service{
		validator: validator,
		search:    search,
		logger:    logger,
		maxSearch: searchMaxResults,
	}
}

// Enrich attaches video resources to course lessons in place
func (s *Service) Enrich(ctx context.Context, course *models.Course) {
	for si := range course.Sessions {
		session := &course.Sessions[si]

		candidates := collectCandidates(session.Lessons)
		validated := s.validator.ValidateAll(ctx, candidates)

		matched := make(map[int]bool)
		for _, match := range MatchLessons(session.Lessons, validated) {
			s.attach(&session.Lessons[match.LessonIndex], match.Video)
			matched[match.LessonIndex] = true
		}

		for li := range session.Lessons {
			if matched[li] {
				continue
			}
			lesson := &session.Lessons[li]
			if lesson.VideoSearchQuery == "" {
				continue
			}
			if found := s.searchForLesson(ctx, lesson.VideoSearchQuery); found != nil {
				s.attach(lesson, found)
			}
		}
	}
}

// collectCandidates gathers the video-typed resource URLs already present on
// the session's lessons (the model's proposed links)
func collectCandidates(lessons []models.Lesson) []string {
	var urls []string
	seen := make(map[string]bool)

	for _, lesson := range lessons {
		for _, resource := range lesson.Resources {
			if resource.Type != models.ResourceTypeVideo || resource.URL == "" || seen[resource.URL] {
				continue
			}
			seen[resource.URL] = true
			urls = append(urls, resource.URL)
		}
	}
	return urls
}

// searchForLesson runs the search fallback: iterate ranked results and
// return the first that validates as embeddable. A nil return means the
// lesson simply gets no video.
func (s *Service) searchForLesson(ctx context.Context, query string) *models.VideoValidation {
	if s.search == nil {
		return nil
	}

	items, err := s.search.Search(ctx, query, s.maxSearch, minVideoDuration, maxVideoDuration)
	if err != nil {
		s.logger.Debug().Err(err).Str("query", query).Msg("Video search failed")
		return nil
	}

	for _, item := range items {
		validation := s.validator.Validate(ctx, item.WatchURL)
		if validation.Embeddable {
			if validation.Title == "" {
				validation.Title = item.Title
			}
			if validation.Author == "" {
				validation.Author = item.Channel
			}
			return validation
		}
	}

	return nil
}

// attach replaces the lesson's unvalidated video resources with the single
// validated one
func (s *Service) attach(lesson *models.Lesson, validation *models.VideoValidation) {
	kept := lesson.Resources[:0]
	for _, resource := range lesson.Resources {
		if resource.Type != models.ResourceTypeVideo {
			kept = append(kept, resource)
		}
	}

	title := validation.Title
	if title == "" {
		title = lesson.Title
	}

	lesson.Resources = append(kept, models.Resource{
		Title:      title,
		URL:        validation.WatchURL,
		Type:       models.ResourceTypeVideo,
		Embeddable: validation.Embeddable,
		EmbedURL:   validation.EmbedURL,
		Author:     validation.Author,
		Thumbnail:  validation.Thumbnail,
	})

	s.logger.Debug().
		Str("lesson_id", lesson.ID).
		Str("video_id", validation.ID).
		Msg("Attached validated video to lesson")
}

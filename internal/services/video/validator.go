package video

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

var (
	// shortsPattern and livePattern reject by URL shape before any lookup
	shortsPattern = regexp.MustCompile(`/shorts/`)
	livePattern   = regexp.MustCompile(`/live/`)

	// videoIDPatterns extract the 11-character identifier from known URL shapes
	videoIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`/embed/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`/v/([A-Za-z0-9_-]{11})`),
	}
)

// Validator classifies candidate video URLs into the closed reason taxonomy.
// Each validation fuses two signals: the lightweight embed-metadata lookup
// (availability) and the richer status lookup (embeddability, privacy,
// rating, liveness, region restrictions).
type Validator struct {
	metadata interfaces.VideoMetadataService
	status   interfaces.VideoStatusService
	logger   arbor.ILogger
	workers  int
}

// NewValidator creates a validator over the given lookup services
func NewValidator(metadata interfaces.VideoMetadataService, status interfaces.VideoStatusService, workers int, logger arbor.ILogger) *Validator {
	if workers <= 0 {
		workers = 4
	}
	return &Validator{
		metadata: metadata,
		status:   status,
		logger:   logger,
		workers:  workers,
	}
}

// Validate classifies one candidate URL
func (v *Validator) Validate(ctx context.Context, rawURL string) *models.VideoValidation {
	// URL-shape rejections come first, regardless of API availability
	if shortsPattern.MatchString(rawURL) {
		return &models.VideoValidation{Reason: models.ReasonShorts}
	}
	if livePattern.MatchString(rawURL) {
		return &models.VideoValidation{Reason: models.ReasonLive}
	}

	id := ExtractVideoID(rawURL)
	if id == "" {
		return &models.VideoValidation{Reason: models.ReasonInvalidURL}
	}

	meta, metaErr := v.metadata.Lookup(ctx, rawURL)
	status, statusErr := v.status.Status(ctx, id)
	if statusErr != nil {
		v.logger.Debug().Err(statusErr).Str("video_id", id).Msg("Status lookup failed")
		status = nil
	}

	// Neither lookup returned data: the video does not exist for us
	if (metaErr != nil || meta == nil) && status == nil {
		return &models.VideoValidation{ID: id, Reason: models.ReasonNotFound}
	}

	result := &models.VideoValidation{ID: id}
	if meta != nil {
		result.Title = meta.Title
		result.Author = meta.Author
		result.Thumbnail = meta.Thumbnail
	}

	result.Reason = classifyStatus(metaErr == nil && meta != nil, status)
	result.Embeddable = result.Reason == models.ReasonOK

	available := result.Reason == models.ReasonOK || result.Reason == models.ReasonEmbedDisabled
	if available {
		result.WatchURL = fmt.Sprintf("https://www.youtube.com/watch?v=%s", id)
	}
	if result.Embeddable {
		result.EmbedURL = fmt.Sprintf("https://www.youtube.com/embed/%s", id)
	}

	return result
}

// classifyStatus fuses the availability and status signals into one reason.
// When embedding is ruled out, the most specific applicable reason wins, in
// priority order: embed_disabled, private, age_restricted, live,
// region_blocked.
func classifyStatus(metadataAccessible bool, status *models.VideoStatus) models.ValidationReason {
	if status == nil {
		// Metadata succeeded but status is absent; treat cautiously
		if metadataAccessible {
			return models.ReasonUnknown
		}
		return models.ReasonNotFound
	}

	embeddable := status.Embeddable == nil || *status.Embeddable

	if !embeddable {
		return models.ReasonEmbedDisabled
	}
	if status.PrivacyStatus == "private" {
		return models.ReasonPrivate
	}
	if status.ContentRating == "ytAgeRestricted" {
		return models.ReasonAgeRestricted
	}
	if status.LiveBroadcastContent == "live" || status.LiveBroadcastContent == "upcoming" {
		return models.ReasonLive
	}
	// Any non-empty restriction list is treated as blocked; the viewer's
	// region is unknown here, so this stays conservative.
	if status.RegionRestriction != nil &&
		(len(status.RegionRestriction.Allowed) > 0 || len(status.RegionRestriction.Blocked) > 0) {
		return models.ReasonRegionBlocked
	}

	if !metadataAccessible && status.PrivacyStatus == "unlisted" {
		return models.ReasonPrivate
	}

	return models.ReasonOK
}

// ExtractVideoID pulls the 11-character video identifier from known URL
// shapes (watch?v=, youtu.be/, embed/, v/). Empty string when none match.
func ExtractVideoID(rawURL string) string {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// ValidateAll validates candidate URLs with a bounded worker pool, returning
// results indexed identically to the input so downstream matching stays
// deterministic.
func (v *Validator) ValidateAll(ctx context.Context, urls []string) []*models.VideoValidation {
	results := make([]*models.VideoValidation, len(urls))
	sem := make(chan struct{}, v.workers)
	var wg sync.WaitGroup

	for i, url := range urls {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx] = v.Validate(ctx, u)
		}(i, url)
	}

	wg.Wait()
	return results
}

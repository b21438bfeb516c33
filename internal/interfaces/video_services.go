package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/doceo/internal/models"
)

// VideoMetadataService performs the lightweight embed-metadata lookup for a
// video URL. A non-nil error is treated as an availability signal (the video
// may be private, deleted or blocked), not a pipeline failure.
type VideoMetadataService interface {
	Lookup(ctx context.Context, url string) (*models.VideoMetadata, error)
}

// VideoStatusService performs the richer status lookup for a video ID.
// Returns (nil, nil) when the video is absent from the status API.
type VideoStatusService interface {
	Status(ctx context.Context, id string) (*models.VideoStatus, error)
}

// VideoSearchService queries the external video search capability.
// Results are returned in relevance/popularity order. Implementations filter
// out videos shorter than minDuration or longer than maxDuration.
type VideoSearchService interface {
	Search(ctx context.Context, query string, maxResults int, minDuration, maxDuration time.Duration) ([]models.VideoSearchItem, error)
}

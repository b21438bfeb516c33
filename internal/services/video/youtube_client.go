package video

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"golang.org/x/time/rate"
)

const (
	oembedEndpoint      = "https://www.youtube.com/oembed"
	videosEndpoint      = "https://www.googleapis.com/youtube/v3/videos"
	searchEndpoint      = "https://www.googleapis.com/youtube/v3/search"
	searchFetchMultiple = 2 // Over-fetch to survive duration filtering
)

// YouTubeClient implements the three video lookup capabilities over the
// YouTube oEmbed and Data API v3 endpoints. All outbound calls share one
// rate limiter and a per-request timeout.
type YouTubeClient struct {
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     arbor.ILogger
	timeout    time.Duration
}

// Compile-time interface assertions
var (
	_ interfaces.VideoMetadataService = (*YouTubeClient)(nil)
	_ interfaces.VideoStatusService   = (*YouTubeClient)(nil)
	_ interfaces.VideoSearchService   = (*YouTubeClient)(nil)
)

// NewYouTubeClient creates a client from the YouTube config section.
// The Data API key may be empty; status and search then report accordingly.
func NewYouTubeClient(config *common.YouTubeConfig, logger arbor.ILogger) *YouTubeClient {
	timeout, err := time.ParseDuration(config.RequestTimeout)
	if err != nil || timeout <= 0 {
		timeout = 5 * time.Second
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}

	return &YouTubeClient{
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
		timeout:    timeout,
	}
}

// Lookup performs the lightweight oEmbed metadata fetch. A non-200 response
// is returned as an error and treated by the caller as an availability
// signal, not a failure.
func (c *YouTubeClient) Lookup(ctx context.Context, videoURL string) (*models.VideoMetadata, error) {
	params := url.Values{}
	params.Set("url", videoURL)
	params.Set("format", "json")

	body, err := c.get(ctx, oembedEndpoint, params)
	if err != nil {
		return nil, err
	}

	var meta struct {
		Title        string `json:"title"`
		AuthorName   string `json:"author_name"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse oEmbed response: %w", err)
	}

	return &models.VideoMetadata{
		Title:     meta.Title,
		Author:    meta.AuthorName,
		Thumbnail: meta.ThumbnailURL,
	}, nil
}

// videosListResponse is the subset of the Data API videos.list payload we read
type videosListResponse struct {
	Items []struct {
		ID     string `json:"id"`
		Status struct {
			Embeddable    *bool  `json:"embeddable"`
			PrivacyStatus string `json:"privacyStatus"`
		} `json:"status"`
		ContentDetails struct {
			Duration      string `json:"duration"`
			ContentRating struct {
				YtRating string `json:"ytRating"`
			} `json:"contentRating"`
			RegionRestriction *struct {
				Allowed []string `json:"allowed"`
				Blocked []string `json:"blocked"`
			} `json:"regionRestriction"`
		} `json:"contentDetails"`
		Snippet struct {
			Title                string `json:"title"`
			ChannelTitle         string `json:"channelTitle"`
			LiveBroadcastContent string `json:"liveBroadcastContent"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Status performs the richer status lookup. Returns (nil, nil) when the
// video is absent from the API, and an error when the API itself is
// unreachable or no key is configured.
func (c *YouTubeClient) Status(ctx context.Context, id string) (*models.VideoStatus, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("youtube data api key not configured")
	}

	params := url.Values{}
	params.Set("id", id)
	params.Set("part", "status,contentDetails,snippet")
	params.Set("key", c.apiKey)

	body, err := c.get(ctx, videosEndpoint, params)
	if err != nil {
		return nil, err
	}

	var resp videosListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse videos.list response: %w", err)
	}

	if len(resp.Items) == 0 {
		return nil, nil
	}

	item := resp.Items[0]
	status := &models.VideoStatus{
		Embeddable:           item.Status.Embeddable,
		PrivacyStatus:        item.Status.PrivacyStatus,
		ContentRating:        item.ContentDetails.ContentRating.YtRating,
		LiveBroadcastContent: item.Snippet.LiveBroadcastContent,
	}
	if rr := item.ContentDetails.RegionRestriction; rr != nil {
		status.RegionRestriction = &models.RegionRestriction{
			Allowed: rr.Allowed,
			Blocked: rr.Blocked,
		}
	}

	return status, nil
}

// Search queries search.list, then hydrates durations and view counts via
// videos.list, filtering out entries outside the [minDuration, maxDuration]
// window. Results keep the API's relevance order.
func (c *YouTubeClient) Search(ctx context.Context, query string, maxResults int, minDuration, maxDuration time.Duration) ([]models.VideoSearchItem, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("youtube data api key not configured")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("videoEmbeddable", "true")
	params.Set("maxResults", fmt.Sprintf("%d", maxResults*searchFetchMultiple))
	params.Set("key", c.apiKey)

	body, err := c.get(ctx, searchEndpoint, params)
	if err != nil {
		return nil, err
	}

	var searchResp struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse search.list response: %w", err)
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	details, err := c.listDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	var results []models.VideoSearchItem
	for _, id := range ids {
		item, ok := details[id]
		if !ok {
			continue
		}
		dur := ParseISODuration(item.DurationISO)
		if dur < minDuration || (maxDuration > 0 && dur > maxDuration) {
			continue
		}
		results = append(results, item)
		if len(results) == maxResults {
			break
		}
	}

	return results, nil
}

// listDetails hydrates search hits with duration, title and view count
func (c *YouTubeClient) listDetails(ctx context.Context, ids []string) (map[string]models.VideoSearchItem, error) {
	params := url.Values{}
	params.Set("id", strings.Join(ids, ","))
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("key", c.apiKey)

	body, err := c.get(ctx, videosEndpoint, params)
	if err != nil {
		return nil, err
	}

	var resp videosListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse videos.list response: %w", err)
	}

	details := make(map[string]models.VideoSearchItem, len(resp.Items))
	for _, item := range resp.Items {
		views := int64(0)
		fmt.Sscanf(item.Statistics.ViewCount, "%d", &views)

		details[item.ID] = models.VideoSearchItem{
			ID:          item.ID,
			Title:       item.Snippet.Title,
			Channel:     item.Snippet.ChannelTitle,
			DurationISO: item.ContentDetails.Duration,
			EmbedURL:    fmt.Sprintf("https://www.youtube.com/embed/%s", item.ID),
			WatchURL:    fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.ID),
			ViewCount:   views,
		}
	}

	return details, nil
}

// get performs a rate-limited GET and returns the body for 2xx responses
func (c *YouTubeClient) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

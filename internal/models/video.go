package models

// ValidationReason is the closed taxonomy of video validation outcomes.
// These are classification values, not errors.
type ValidationReason string

const (
	ReasonOK            ValidationReason = "ok"
	ReasonInvalidURL    ValidationReason = "invalid_url"
	ReasonShorts        ValidationReason = "shorts"
	ReasonLive          ValidationReason = "live"
	ReasonPrivate       ValidationReason = "private"
	ReasonAgeRestricted ValidationReason = "age_restricted"
	ReasonEmbedDisabled ValidationReason = "embed_disabled"
	ReasonRegionBlocked ValidationReason = "region_blocked"
	ReasonNotFound      ValidationReason = "not_found"
	ReasonUnknown       ValidationReason = "unknown"
)

// VideoValidation is the outcome of validating one candidate video URL.
// Produced per call; never cached across calls by the pipeline.
type VideoValidation struct {
	ID         string           `json:"id"`
	Embeddable bool             `json:"embeddable"`
	EmbedURL   string           `json:"embed_url,omitempty"` // Set only when judged embeddable
	WatchURL   string           `json:"watch_url,omitempty"` // Set only when judged available
	Reason     ValidationReason `json:"reason"`
	Title      string           `json:"title,omitempty"`
	Author     string           `json:"author,omitempty"`
	Thumbnail  string           `json:"thumbnail,omitempty"`
}

// VideoMetadata is the lightweight embed-metadata lookup result (oEmbed)
type VideoMetadata struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author_name,omitempty"`
	Thumbnail string `json:"thumbnail_url,omitempty"`
}

// RegionRestriction lists countries where playback is allowed or blocked.
// Any non-empty restriction is treated conservatively as region-blocked.
type RegionRestriction struct {
	Allowed []string `json:"allowed,omitempty"`
	Blocked []string `json:"blocked,omitempty"`
}

// VideoStatus is the richer status-lookup result. Nil pointer fields mean
// the API omitted the signal.
type VideoStatus struct {
	Embeddable           *bool              `json:"embeddable,omitempty"`
	PrivacyStatus        string             `json:"privacy_status,omitempty"`        // "public", "unlisted", "private"
	ContentRating        string             `json:"content_rating,omitempty"`        // "ytAgeRestricted" when age-gated
	LiveBroadcastContent string             `json:"live_broadcast_content,omitempty"` // "none", "live", "upcoming"
	RegionRestriction    *RegionRestriction `json:"region_restriction,omitempty"`
}

// VideoSearchItem is one ranked result from the video search capability
type VideoSearchItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	DurationISO string `json:"duration_iso"` // ISO-8601 duration, e.g. "PT14M33S"
	EmbedURL    string `json:"embed_url"`
	WatchURL    string `json:"watch_url"`
	ViewCount   int64  `json:"view_count"`
}

package video

import (
	"context"
	"fmt"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
)

// fakeMetadata returns canned oEmbed results keyed by URL substring
type fakeMetadata struct {
	meta *models.VideoMetadata
	err  error
}

func (f *fakeMetadata) Lookup(_ context.Context, _ string) (*models.VideoMetadata, error) {
	return f.meta, f.err
}

type fakeStatus struct {
	status *models.VideoStatus
	err    error
}

func (f *fakeStatus) Status(_ context.Context, _ string) (*models.VideoStatus, error) {
	return f.status, f.err
}

func boolPtr(b bool) *bool { return &b }

func newTestValidator(meta *fakeMetadata, status *fakeStatus) *Validator {
	return NewValidator(meta, status, 4, arbor.NewLogger())
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "watch url", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch url extra params", url: "https://www.youtube.com/watch?t=10&v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short link", url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "embed url", url: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "v path", url: "https://www.youtube.com/v/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "not a video url", url: "https://example.com/page", want: ""},
		{name: "malformed id", url: "https://www.youtube.com/watch?v=short", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.url); got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestValidateShortsAlwaysRejected(t *testing.T) {
	// Shorts rejection happens before any lookup, even when the status API
	// would report the video as fine
	v := newTestValidator(
		&fakeMetadata{meta: &models.VideoMetadata{Title: "A Short"}},
		&fakeStatus{status: &models.VideoStatus{Embeddable: boolPtr(true), PrivacyStatus: "public"}},
	)

	got := v.Validate(context.Background(), "https://www.youtube.com/shorts/dQw4w9WgXcQ")
	if got.Reason != models.ReasonShorts {
		t.Errorf("reason = %q, want shorts", got.Reason)
	}
	if got.Embeddable {
		t.Error("shorts must never be embeddable")
	}
}

func TestValidateReasonTaxonomy(t *testing.T) {
	watchURL := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	tests := []struct {
		name       string
		meta       *fakeMetadata
		status     *fakeStatus
		wantReason models.ValidationReason
		wantEmbed  bool
	}{
		{
			name:       "fully available",
			meta:       &fakeMetadata{meta: &models.VideoMetadata{Title: "Good"}},
			status:     &fakeStatus{status: &models.VideoStatus{Embeddable: boolPtr(true), PrivacyStatus: "public"}},
			wantReason: models.ReasonOK,
			wantEmbed:  true,
		},
		{
			name:       "embed disabled wins over private",
			meta:       &fakeMetadata{meta: &models.VideoMetadata{Title: "Locked"}},
			status:     &fakeStatus{status: &models.VideoStatus{Embeddable: boolPtr(false), PrivacyStatus: "private"}},
			wantReason: models.ReasonEmbedDisabled,
		},
		{
			name:       "private",
			meta:       &fakeMetadata{err: fmt.Errorf("401")},
			status:     &fakeStatus{status: &models.VideoStatus{Embeddable: boolPtr(true), PrivacyStatus: "private"}},
			wantReason: models.ReasonPrivate,
		},
		{
			name:       "age restricted",
			meta:       &fakeMetadata{meta: &models.VideoMetadata{Title: "18+"}},
			status:     &fakeStatus{status: &models.VideoStatus{Embeddable: boolPtr(true), PrivacyStatus: "public", ContentRating: "ytAgeRestricted"}},
			wantReason: models.ReasonAgeRestricted,
		},
		{
			name:       "live broadcast",
			meta:       &fakeMetadata{meta: &models.VideoMetadata{Title: "Live now"}},
			status:     &fakeStatus{status: &models.VideoStatus{Embeddable: boolPtr(true), PrivacyStatus: "public", LiveBroadcastContent: "live"}},
			wantReason: models.ReasonLive,
		},
		{
			name: "region blocked conservatively",
			meta: &fakeMetadata{meta: &models.VideoMetadata{Title: "Geo"}},
			status: &fakeStatus{status: &models.VideoStatus{
				Embeddable:        boolPtr(true),
				PrivacyStatus:     "public",
				RegionRestriction: &models.RegionRestriction{Blocked: []string{"DE"}},
			}},
			wantReason: models.ReasonRegionBlocked,
		},
		{
			name:       "neither lookup returns data",
			meta:       &fakeMetadata{err: fmt.Errorf("404")},
			status:     &fakeStatus{status: nil},
			wantReason: models.ReasonNotFound,
		},
		{
			name:       "metadata only no status",
			meta:       &fakeMetadata{meta: &models.VideoMetadata{Title: "Mystery"}},
			status:     &fakeStatus{err: fmt.Errorf("api key missing")},
			wantReason: models.ReasonUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator(tt.meta, tt.status)
			got := v.Validate(context.Background(), watchURL)

			if got.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if got.Embeddable != tt.wantEmbed {
				t.Errorf("embeddable = %v, want %v", got.Embeddable, tt.wantEmbed)
			}
			if tt.wantEmbed && got.EmbedURL == "" {
				t.Error("embeddable result must carry an embed URL")
			}
			if !tt.wantEmbed && got.EmbedURL != "" {
				t.Error("non-embeddable result must not carry an embed URL")
			}
		})
	}
}

func TestValidateInvalidURL(t *testing.T) {
	v := newTestValidator(&fakeMetadata{}, &fakeStatus{})

	got := v.Validate(context.Background(), "https://example.com/not-a-video")
	if got.Reason != models.ReasonInvalidURL {
		t.Errorf("reason = %q, want invalid_url", got.Reason)
	}
}

func TestValidateAllPreservesIndex(t *testing.T) {
	v := newTestValidator(
		&fakeMetadata{meta: &models.VideoMetadata{Title: "ok"}},
		&fakeStatus{status: &models.VideoStatus{Embeddable: boolPtr(true), PrivacyStatus: "public"}},
	)

	urls := []string{
		"https://www.youtube.com/watch?v=aaaaaaaaaaa",
		"https://example.com/nope",
		"https://www.youtube.com/shorts/bbbbbbbbbbb",
	}

	results := v.ValidateAll(context.Background(), urls)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Reason != models.ReasonOK {
		t.Errorf("result 0 reason = %q, want ok", results[0].Reason)
	}
	if results[1].Reason != models.ReasonInvalidURL {
		t.Errorf("result 1 reason = %q, want invalid_url", results[1].Reason)
	}
	if results[2].Reason != models.ReasonShorts {
		t.Errorf("result 2 reason = %q, want shorts", results[2].Reason)
	}
}

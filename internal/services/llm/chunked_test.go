package llm

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ternarybob/arbor"
)

func TestSplitWindows(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		size     int
		want     int
		lastSize int
	}{
		{name: "exact multiple", text: strings.Repeat("a", 100), size: 50, want: 2, lastSize: 50},
		{name: "with remainder", text: strings.Repeat("a", 120), size: 50, want: 3, lastSize: 20},
		{name: "smaller than window", text: "short", size: 50, want: 1, lastSize: 5},
		{name: "empty text", text: "", size: 50, want: 0},
		{name: "zero size", text: "abc", size: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitWindows(tt.text, tt.size)
			if len(got) != tt.want {
				t.Fatalf("SplitWindows() returned %d windows, want %d", len(got), tt.want)
			}
			if tt.want > 0 && len(got[len(got)-1]) != tt.lastSize {
				t.Errorf("last window size = %d, want %d", len(got[len(got)-1]), tt.lastSize)
			}
		})
	}
}

func TestSplitWindowsRuneBoundaries(t *testing.T) {
	// Three-byte runes with a window size that is not a multiple of three
	text := strings.Repeat("グラフ理論の入門。", 40)

	got := SplitWindows(text, 50)

	var rebuilt strings.Builder
	for i, window := range got {
		if !utf8.ValidString(window) {
			t.Errorf("window %d contains a split rune", i)
		}
		rebuilt.WriteString(window)
	}
	if rebuilt.String() != text {
		t.Error("windows must concatenate back to the original text")
	}
}

func TestGenerateWindowedPreservesOrder(t *testing.T) {
	windows := []string{"w0", "w1", "w2", "w3", "w4"}

	got, err := GenerateWindowed(context.Background(), arbor.NewLogger(), windows, 2,
		func(ctx context.Context, window string) ([]string, error) {
			return []string{window + "-a", window + "-b"}, nil
		})
	if err != nil {
		t.Fatalf("GenerateWindowed() error = %v", err)
	}

	want := []string{"w0-a", "w0-b", "w1-a", "w1-b", "w2-a", "w2-b", "w3-a", "w3-b", "w4-a", "w4-b"}
	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %q, want %q (merge must preserve window order)", i, got[i], want[i])
		}
	}
}

func TestGenerateWindowedPartialFailure(t *testing.T) {
	windows := []string{"w0", "w1", "w2"}

	got, err := GenerateWindowed(context.Background(), arbor.NewLogger(), windows, 4,
		func(ctx context.Context, window string) ([]string, error) {
			if window == "w1" {
				return nil, fmt.Errorf("backend unavailable")
			}
			return []string{window}, nil
		})
	if err != nil {
		t.Fatalf("partial failure must not error, got %v", err)
	}

	want := []string{"w0", "w2"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGenerateWindowedTotalFailure(t *testing.T) {
	windows := []string{"w0", "w1"}

	_, err := GenerateWindowed(context.Background(), arbor.NewLogger(), windows, 4,
		func(ctx context.Context, window string) ([]string, error) {
			return nil, fmt.Errorf("backend unavailable")
		})
	if err == nil {
		t.Fatal("expected error when every window produces zero items")
	}
}

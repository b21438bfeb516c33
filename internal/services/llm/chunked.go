package llm

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
)

// Windowed generation for inputs too large for a single call. The text is cut
// into fixed-size character windows (a simple sliding cut, no semantic
// awareness); each window is generated concurrently under a bounded fan-out
// and merged back in window order. A failed window contributes an empty item
// list rather than aborting the batch.

// SplitWindows cuts text into fixed-size windows. Cut points back up to the
// nearest rune start so no window holds a split rune.
func SplitWindows(text string, size int) []string {
	if size <= 0 || len(text) == 0 {
		return nil
	}

	windows := make([]string, 0, len(text)/size+1)
	for start := 0; start < len(text); {
		end := start + size
		if end >= len(text) {
			end = len(text)
		} else {
			for end > start && !utf8.RuneStart(text[end]) {
				end--
			}
			if end == start {
				end = start + size
			}
		}
		windows = append(windows, text[start:end])
		start = end
	}
	return windows
}

// GenerateWindowed drives gen for every window with at most maxInFlight calls
// running concurrently, then concatenates the per-window item lists in window
// order. Merged output therefore equals the concatenation of each window's
// individually-extracted items regardless of completion order.
//
// Fails only when every window produced zero items, signaling total failure.
func GenerateWindowed[T any](ctx context.Context, logger arbor.ILogger, windows []string, maxInFlight int, gen func(ctx context.Context, window string) ([]T, error)) ([]T, error) {
	if len(windows) == 0 {
		return nil, &models.ValidationError{Reason: "no windows to generate from"}
	}
	if maxInFlight <= 0 {
		maxInFlight = 4
	}

	results := make([][]T, len(windows))
	sem := make(chan struct{}, maxInFlight)
	var wg sync.WaitGroup

	for i, window := range windows {
		wg.Add(1)
		go func(idx int, text string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			items, err := gen(ctx, text)
			if err != nil {
				// Partial failure tolerated: this window yields nothing
				logger.Warn().
					Err(err).
					Int("window", idx).
					Msg("Window generation failed, contributing empty list")
				return
			}
			results[idx] = items
		}(i, window)
	}

	wg.Wait()

	var merged []T
	for _, items := range results {
		merged = append(merged, items...)
	}

	if len(merged) == 0 {
		return nil, &models.ValidationError{Reason: "all windows produced zero items"}
	}

	return merged, nil
}

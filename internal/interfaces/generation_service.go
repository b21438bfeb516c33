package interfaces

import (
	"context"
	"time"
)

// GenerateRequest describes one streaming generation call
type GenerateRequest struct {
	// Prompt is the user-facing instruction text
	Prompt string

	// SystemInstruction steers the model; empty means provider default
	SystemInstruction string

	// Timeout is the per-call budget. The streamed response must reach its
	// terminal chunk before this elapses or the call fails with a TimeoutError.
	Timeout time.Duration

	// Model selects the backing model; empty uses the configured default.
	// Provider is detected from the model name (gemini-*, claude-*).
	Model string

	// Temperature overrides the configured sampling temperature when > 0
	Temperature float32
}

// GenerationService invokes an external streaming text-generation capability
// and returns the fully aggregated text. Implementations stream tokens
// internally and must honor ctx cancellation at every chunk boundary.
//
// Error contract:
//   - *models.TimeoutError when no terminal chunk arrives within the budget
//   - *models.BackendError when the external call itself errors
type GenerationService interface {
	// GenerateText aggregates the streamed response into a single string
	GenerateText(ctx context.Context, req *GenerateRequest) (string, error)

	// HealthCheck verifies the backing provider can handle requests
	HealthCheck(ctx context.Context) error

	// Close releases provider resources
	Close() error
}

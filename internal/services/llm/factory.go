package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
)

// ProviderType represents the AI provider type
type ProviderType string

const (
	// ProviderGemini uses Google Gemini API
	ProviderGemini ProviderType = "gemini"
	// ProviderClaude uses Anthropic Claude API
	ProviderClaude ProviderType = "claude"
)

// ProviderFactory creates generation services lazily and dispatches calls to
// the provider detected from the request's model name. It implements
// GenerationService so the pipeline depends on a single capability object.
type ProviderFactory struct {
	config  *common.Config
	auditor *Auditor
	logger  arbor.ILogger

	mu     sync.Mutex
	gemini *GeminiService
	claude *ClaudeService
}

// Compile-time assertion: ProviderFactory implements GenerationService
var _ interfaces.GenerationService = (*ProviderFactory)(nil)

// NewProviderFactory creates a new provider factory
func NewProviderFactory(config *common.Config, auditor *Auditor, logger arbor.ILogger) *ProviderFactory {
	return &ProviderFactory{
		config:  config,
		auditor: auditor,
		logger:  logger,
	}
}

// DetectProvider determines the provider type from a model string.
// Model strings can be:
//   - "claude-sonnet-4-20250514" -> Claude
//   - "claude/claude-sonnet-4-20250514" -> Claude (with prefix)
//   - "gemini-2.0-flash" -> Gemini
//   - "gemini/gemini-2.0-flash" -> Gemini (with prefix)
//   - Empty string -> uses default provider from config
func (f *ProviderFactory) DetectProvider(model string) ProviderType {
	if model == "" {
		return ProviderType(f.config.LLM.DefaultProvider)
	}

	model = strings.ToLower(model)

	if strings.HasPrefix(model, "claude/") || strings.HasPrefix(model, "anthropic/") {
		return ProviderClaude
	}
	if strings.HasPrefix(model, "gemini/") || strings.HasPrefix(model, "google/") {
		return ProviderGemini
	}

	if strings.HasPrefix(model, "claude-") {
		return ProviderClaude
	}
	if strings.HasPrefix(model, "gemini-") {
		return ProviderGemini
	}

	return ProviderType(f.config.LLM.DefaultProvider)
}

// NormalizeModel removes provider prefix from model name if present
func (f *ProviderFactory) NormalizeModel(model string) string {
	prefixes := []string{"claude/", "anthropic/", "gemini/", "google/"}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToLower(model), prefix) {
			return model[len(prefix):]
		}
	}
	return model
}

// service returns the provider's generation service, creating it on first
// use. Analysis batches call GenerateText from several goroutines, so the
// lazy init is guarded.
func (f *ProviderFactory) service(provider ProviderType) (interfaces.GenerationService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch provider {
	case ProviderClaude:
		if f.claude == nil {
			claude, err := NewClaudeService(f.config, f.auditor, f.logger)
			if err != nil {
				return nil, fmt.Errorf("failed to create Claude service: %w", err)
			}
			f.claude = claude
		}
		return f.claude, nil
	case ProviderGemini:
		if f.gemini == nil {
			gemini, err := NewGeminiService(f.config, f.auditor, f.logger)
			if err != nil {
				return nil, fmt.Errorf("failed to create Gemini service: %w", err)
			}
			f.gemini = gemini
		}
		return f.gemini, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

// GenerateText dispatches to the provider detected from the request model
func (f *ProviderFactory) GenerateText(ctx context.Context, req *interfaces.GenerateRequest) (string, error) {
	provider := f.DetectProvider(req.Model)

	svc, err := f.service(provider)
	if err != nil {
		return "", err
	}

	normalized := *req
	normalized.Model = f.NormalizeModel(req.Model)

	f.logger.Debug().
		Str("provider", string(provider)).
		Str("model", normalized.Model).
		Msg("Dispatching generation request")

	return svc.GenerateText(ctx, &normalized)
}

// HealthCheck probes the default provider
func (f *ProviderFactory) HealthCheck(ctx context.Context) error {
	svc, err := f.service(ProviderType(f.config.LLM.DefaultProvider))
	if err != nil {
		return err
	}
	return svc.HealthCheck(ctx)
}

// Close releases all created provider services
func (f *ProviderFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gemini != nil {
		if err := f.gemini.Close(); err != nil {
			return err
		}
	}
	if f.claude != nil {
		if err := f.claude.Close(); err != nil {
			return err
		}
	}
	return nil
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// ClaudeService implements the GenerationService interface using the
// Anthropic Claude API with streamed message deltas.
type ClaudeService struct {
	config    *common.ClaudeConfig
	logger    arbor.ILogger
	client    anthropic.Client
	auditor   *Auditor
	timeout   time.Duration
	maxTokens int
	temp      float32
}

// NewClaudeService creates a new Claude generation service.
//
// Initialization resolves the API key (config value with DOCEO_CLAUDE_API_KEY
// env override already applied), sets the default model name if unspecified
// and parses the timeout duration.
func NewClaudeService(config *common.Config, auditor *Auditor, logger arbor.ILogger) (*ClaudeService, error) {
	if config.Claude.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (set DOCEO_CLAUDE_API_KEY or claude.api_key in config)")
	}

	if config.Claude.Model == "" {
		config.Claude.Model = "claude-sonnet-4-20250514"
	}

	timeout, err := time.ParseDuration(config.Claude.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Claude.Timeout, err)
	}

	maxTokens := config.Claude.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	client := anthropic.NewClient(
		option.WithAPIKey(config.Claude.APIKey),
	)

	service := &ClaudeService{
		config:    &config.Claude,
		logger:    logger,
		client:    client,
		auditor:   auditor,
		timeout:   timeout,
		maxTokens: maxTokens,
		temp:      config.LLM.Temperature,
	}

	logger.Info().
		Str("model", config.Claude.Model).
		Dur("timeout", timeout).
		Int("max_tokens", maxTokens).
		Msg("Claude generation service initialized")

	return service, nil
}

// GenerateText streams a completion and returns the aggregated text.
// Text deltas are accumulated into a buffer; the call is bounded by
// req.Timeout (or the configured default) via context deadline.
func (s *ClaudeService) GenerateText(ctx context.Context, req *interfaces.GenerateRequest) (string, error) {
	if req == nil || strings.TrimSpace(req.Prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = s.timeout
	}
	model := req.Model
	if model == "" {
		model = s.config.Model
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Debug().
		Str("model", model).
		Int("prompt_length", len(req.Prompt)).
		Dur("timeout", timeout).
		Msg("Starting streamed generation")

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(s.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	temperature := s.temp
	if req.Temperature > 0 {
		temperature = req.Temperature
	}
	params.Temperature = anthropic.Float(float64(temperature))
	if req.SystemInstruction != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.SystemInstruction},
		}
	}

	stream := s.client.Messages.NewStreaming(callCtx, params)

	var response strings.Builder
	for stream.Next() {
		event := stream.Current()
		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				response.WriteString(deltaVariant.Text)
			}
		}
	}

	var genErr error
	if err := stream.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			genErr = &models.TimeoutError{Operation: "generate", Budget: timeout}
		} else {
			genErr = &models.BackendError{Operation: "generate", Err: err}
		}
	} else if response.Len() == 0 {
		genErr = &models.BackendError{Operation: "generate", Err: fmt.Errorf("no response generated")}
	}

	duration := time.Since(startTime)
	s.auditor.Record("generate", "claude", duration, genErr, req.Prompt)

	if genErr != nil {
		s.logger.Warn().
			Err(genErr).
			Dur("duration", duration).
			Msg("Streamed generation failed")
		return "", genErr
	}

	s.logger.Debug().
		Int("response_length", response.Len()).
		Dur("duration", duration).
		Msg("Streamed generation completed")

	return response.String(), nil
}

// HealthCheck exercises the model with a minimal probe
func (s *ClaudeService) HealthCheck(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	response, err := s.GenerateText(probeCtx, &interfaces.GenerateRequest{
		Prompt:  "ping",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("generation probe failed: %w", err)
	}
	if len(strings.TrimSpace(response)) == 0 {
		return fmt.Errorf("generation probe returned empty response")
	}

	return nil
}

// Close is a no-op; the Claude client holds no persistent resources
func (s *ClaudeService) Close() error {
	s.logger.Info().Msg("Closing Claude generation service")
	return nil
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"google.golang.org/genai"
)

// GeminiService implements the GenerationService interface using the Google
// Gemini API. Responses are streamed and aggregated under a per-call timeout.
type GeminiService struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  *genai.Client
	auditor *Auditor
	retry   *RetryConfig
	timeout time.Duration
	temp    float32
}

// NewGeminiService creates a new Gemini generation service.
//
// Initialization resolves the API key (config value with DOCEO_GEMINI_API_KEY
// env override already applied), sets the default model name if unspecified,
// parses the timeout duration and initializes the genai client.
func NewGeminiService(config *common.Config, auditor *Auditor, logger arbor.ILogger) (*GeminiService, error) {
	if config.Gemini.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set DOCEO_GEMINI_API_KEY or gemini.api_key in config)")
	}

	if config.Gemini.Model == "" {
		config.Gemini.Model = "gemini-2.0-flash"
	}

	timeout, err := time.ParseDuration(config.Gemini.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Gemini.Timeout, err)
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &GeminiService{
		config:  &config.Gemini,
		logger:  logger,
		client:  client,
		auditor: auditor,
		retry:   NewDefaultRetryConfig(),
		timeout: timeout,
		temp:    config.LLM.Temperature,
	}

	logger.Info().
		Str("model", config.Gemini.Model).
		Dur("timeout", timeout).
		Msg("Gemini generation service initialized")

	return service, nil
}

// GenerateText streams a completion and returns the aggregated text.
//
// The streamed response is consumed chunk by chunk into a buffer; the call is
// bounded by req.Timeout (or the configured default) via context deadline.
// A deadline firing mid-stream yields a TimeoutError and the partial text is
// discarded. Rate-limit errors are retried with backoff while budget remains.
func (s *GeminiService) GenerateText(ctx context.Context, req *interfaces.GenerateRequest) (string, error) {
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

	startTime := time.Now()
	s.logger.Debug().
		Str("model", model).
		Int("prompt_length", len(req.Prompt)).
		Dur("timeout", timeout).
		Msg("Starting streamed generation")

	var text string
	var err error
	for attempt := 0; ; attempt++ {
		text, err = s.streamCompletion(ctx, model, req, timeout)
		if err == nil || !IsRateLimitError(err) || attempt >= s.retry.MaxRetries {
			break
		}

		backoff := s.retry.CalculateBackoff(attempt, ExtractRetryDelay(err))
		s.logger.Warn().
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Msg("Rate limited by Gemini API, backing off")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			err = &models.BackendError{Operation: "generate", Err: ctx.Err()}
		}
		if ctx.Err() != nil {
			break
		}
	}

	duration := time.Since(startTime)
	s.auditor.Record("generate", "gemini", duration, err, req.Prompt)

	if err != nil {
		s.logger.Warn().
			Err(err).
			Dur("duration", duration).
			Msg("Streamed generation failed")
		return "", err
	}

	s.logger.Debug().
		Int("response_length", len(text)).
		Dur("duration", duration).
		Msg("Streamed generation completed")

	return text, nil
}

// streamCompletion performs one streaming attempt bounded by timeout
func (s *GeminiService) streamCompletion(ctx context.Context, model string, req *interfaces.GenerateRequest, timeout time.Duration) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	temperature := s.temp
	if req.Temperature > 0 {
		temperature = req.Temperature
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	// Accumulate streamed fragments. Each loop iteration is a suspension
	// point; the deadline on callCtx cancels the stream between chunks.
	var response strings.Builder
	for chunk, err := range s.client.Models.GenerateContentStream(callCtx, model, contents, config) {
		if err != nil {
			return "", s.classifyStreamError(err, callCtx, timeout)
		}
		for _, candidate := range chunk.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
		}
	}

	if response.Len() == 0 {
		if callCtx.Err() != nil {
			return "", s.classifyStreamError(callCtx.Err(), callCtx, timeout)
		}
		return "", &models.BackendError{Operation: "generate", Err: fmt.Errorf("no response generated")}
	}

	return response.String(), nil
}

// classifyStreamError maps stream failures onto the error taxonomy
func (s *GeminiService) classifyStreamError(err error, ctx context.Context, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &models.TimeoutError{Operation: "generate", Budget: timeout}
	}
	return &models.BackendError{Operation: "generate", Err: err}
}

// HealthCheck exercises the model with a minimal probe
func (s *GeminiService) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("genai client is not initialized")
	}

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

// Close releases the client reference. The genai client doesn't require
// explicit cleanup beyond this.
func (s *GeminiService) Close() error {
	s.logger.Info().Msg("Closing Gemini generation service")
	s.client = nil
	return nil
}

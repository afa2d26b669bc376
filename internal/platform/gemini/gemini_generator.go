package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/mbenning/cardbox-api/internal/config"
	"github.com/mbenning/cardbox-api/internal/domain"
	"github.com/mbenning/cardbox-api/internal/generation"
)

// promptTemplate frames the user's text for flashcard extraction. The
// response MIME type is pinned to JSON so the reply parses directly into
// responseSchema.
const promptTemplate = `You are an expert flashcard author. Read the text below and produce
concise question/answer flashcards covering its key facts and concepts.

Respond with JSON of the form {"cards": [{"front": "...", "back": "..."}]}.
Keep each front a single question and each back a single short answer.

Text:
%s`

// Generator implements the generation.Generator interface using
// Google's Gemini API to generate flashcards from raw text.
type Generator struct {
	logger *slog.Logger
	config config.LLMConfig
	client *genai.Client
	model  string
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator with the provided configuration.
// Returns generation.ErrInvalidConfig if required settings are missing.
func NewGenerator(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger: log.With(slog.String("component", "gemini_generator")),
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// GenerateCards implements generation.Generator.
func (g *Generator) GenerateCards(ctx context.Context, text string, userID string) ([]domain.Card, error) {
	if strings.TrimSpace(text) == "" {
		return nil, generation.ErrEmptyText
	}

	prompt := fmt.Sprintf(promptTemplate, text)

	response, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		g.logger.ErrorContext(ctx, "card generation failed",
			"user_id", userID,
			"error", err)
		return nil, err
	}

	cards := make([]domain.Card, 0, len(response.Cards))
	for _, c := range response.Cards {
		cards = append(cards, domain.Card{Front: c.Front, Back: c.Back})
	}

	g.logger.InfoContext(ctx, "cards generated",
		"user_id", userID,
		"count", len(cards))
	return cards, nil
}

// callWithRetry calls the Gemini API with exponential backoff and jitter.
// Transient faults are retried up to MaxRetries times; permanent faults
// (safety blocks, unparseable replies) return immediately.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (*responseSchema, error) {
	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		maxRetries = 3
	}
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}

	for attempt := 0; ; attempt++ {
		g.logger.DebugContext(ctx, "calling Gemini API",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1)

		response, err := g.callOnce(ctx, prompt)
		if err == nil {
			return response, nil
		}

		// Permanent faults are not worth retrying.
		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			return nil, err
		}

		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying Gemini API call",
			"attempt", attempt+1,
			"delay", delay,
			"error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce performs a single API call and parses the reply.
func (g *Generator) callOnce(ctx context.Context, prompt string) (*responseSchema, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
	if err != nil {
		// Assume transport-level faults are transient.
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}

	return parseCards(resp.Text())
}

// parseCards decodes the model's JSON reply.
func parseCards(text string) (*responseSchema, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	var parsed responseSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}
	return &parsed, nil
}

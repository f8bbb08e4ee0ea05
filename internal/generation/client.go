package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ChrisCruze/Leo/internal/config"
	"github.com/ChrisCruze/Leo/internal/metrics"
)

// ErrNoChoices is returned when the API responds without any completion.
var ErrNoChoices = errors.New("completion returned no choices")

// completionAPI is the slice of the OpenAI client the generation layer uses.
// Narrowed to an interface so tests can stub the API.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client issues prompt completions with rate-limit aware retries. It is the
// single LLM entry point for matching, message generation and quality review.
type Client struct {
	api       completionAPI
	cfg       config.OpenAIConfig
	log       *slog.Logger
	collector *metrics.PipelineCollector
}

// NewClient constructs a Client from configuration. The collector may be nil.
func NewClient(cfg config.OpenAIConfig, log *slog.Logger, collector *metrics.PipelineCollector) *Client {
	return &Client{
		api:       openai.NewClient(cfg.APIKey),
		cfg:       cfg,
		log:       log,
		collector: collector,
	}
}

// Complete sends a single-prompt chat completion and returns the raw response
// text. Rate-limit errors are retried with exponential backoff and jitter;
// other errors fail immediately. The operation label is for logging and
// metrics only.
func (c *Client) Complete(ctx context.Context, operation, prompt string, temperature float32) (string, error) {
	maxRetries := c.cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	baseDelay := 1 * time.Second

	var resp openai.ChatCompletionResponse
	var err error

	for attempt := 0; attempt < maxRetries; attempt++ {
		start := time.Now()

		apiCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
		resp, err = c.api.CreateChatCompletion(apiCtx, openai.ChatCompletionRequest{
			Model:       c.cfg.Model,
			Temperature: temperature,
			MaxTokens:   c.cfg.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
		cancel()

		if c.collector != nil {
			status := "ok"
			if err != nil {
				status = "error"
			}
			c.collector.ObserveLLMRequest(operation, status, time.Since(start))
		}

		if err == nil {
			break
		}

		if !isRateLimit(err) {
			break
		}

		// Exponential backoff with jitter before the next attempt.
		delay := baseDelay*time.Duration(1<<uint(attempt)) + time.Duration(rand.Intn(500))*time.Millisecond
		if attempt < maxRetries-1 {
			c.log.Warn("rate limited, retrying with backoff",
				"operation", operation,
				"attempt", attempt+1,
				"delay_ms", delay.Milliseconds(),
				"max_retries", maxRetries)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			continue
		}

		c.log.Error("rate limit exceeded, max retries reached",
			"operation", operation,
			"attempts", maxRetries,
			"error", err)
	}

	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", operation, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func isRateLimit(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "Too Many Requests") ||
		strings.Contains(errStr, "Rate limit")
}

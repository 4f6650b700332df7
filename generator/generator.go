package generator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sethvargo/go-retry"

	"github.com/kova98/replydraft.api/metrics"
	"github.com/kova98/replydraft.api/models"
)

const (
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	wordsPerMinute = 200
)

// Generator drafts replies: builds the prompt, calls the completion
// endpoint with retry on transient failures, and derives reply metadata.
type Generator struct {
	logger  *slog.Logger
	client  *Client
	backoff time.Duration
}

func NewGenerator(logger *slog.Logger, client *Client) *Generator {
	return &Generator{logger: logger, client: client, backoff: initialBackoff}
}

// Generate produces one reply for the given post and customization.
// Transient transport failures are retried up to 3 times with exponential
// backoff starting at 1s; auth and request-shape errors fail fast.
func (g *Generator) Generate(ctx context.Context, post models.RedditPost, c models.Customization, apiKey string) (*models.AiReply, error) {
	if strings.TrimSpace(apiKey) == "" {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		return nil, errors.New("api key is missing")
	}

	prompt := BuildPrompt(post, c)
	maxTokens := MaxTokens(c)
	temperature := Temperature(c)

	var content string
	attempt := 0
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(g.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			metrics.GenerationRetries.Inc()
		}

		out, err := g.client.Complete(ctx, apiKey, prompt, maxTokens, temperature)
		if err != nil {
			if isTransient(err) {
				g.logger.Warn("transient completion failure", "attempt", attempt, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}

		content = out
		return nil
	})
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		return nil, pkgerrors.Wrap(err, "generate reply")
	}

	metrics.GenerationsTotal.WithLabelValues("ok").Inc()

	words := len(strings.Fields(content))
	readTime := (words + wordsPerMinute - 1) / wordsPerMinute
	if readTime < 1 {
		readTime = 1
	}

	g.logger.Info("reply generated", "words", words, "attempts", attempt)

	return &models.AiReply{
		Content:           content,
		WordCount:         words,
		EstimatedReadTime: readTime,
		GeneratedAt:       time.Now().UTC(),
	}, nil
}

// TestKey checks whether an API key is accepted by the completion
// endpoint. A rejected key answers false; anything else is an error.
func (g *Generator) TestKey(ctx context.Context, apiKey string) (bool, error) {
	if strings.TrimSpace(apiKey) == "" {
		return false, nil
	}

	_, err := g.client.Complete(ctx, apiKey, "Reply with the single word OK.", 5, 0)
	if err == nil {
		return true, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403) {
		return false, nil
	}

	return false, err
}

// isTransient decides retry eligibility: endpoint answers carry their
// status code, everything else (network, timeout) is assumed transient.
func isTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Transient()
	}
	return true
}

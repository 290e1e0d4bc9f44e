// Package groq is a hand-rolled client for an OpenAI-compatible chat
// completions endpoint, with credential rotation and rate-limit-aware
// retries.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const (
	maxAttempts = 5

	// Fallback wait on a 429 without a usable Retry-After header.
	rateLimitWait = 2 * time.Second

	backoffCeiling = 10 * time.Second
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// transientError marks a failure worth retrying. wait, when positive, is a
// server-dictated delay (Retry-After); otherwise exponential backoff applies.
type transientError struct {
	wait time.Duration
	err  error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

type Client struct {
	apiURL string
	model  string
	pool   *KeyPool
	client *http.Client
	logger *slog.Logger

	// sleep is swappable so tests can observe waits instead of serving them.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(pool *KeyPool, model, apiURL string, logger *slog.Logger) *Client {
	if pool.Len() == 1 {
		logger.Warn("single API key configured — both analysis calls share one rate-limit budget")
	}
	return &Client{
		apiURL: apiURL,
		model:  model,
		pool:   pool,
		client: &http.Client{Timeout: 120 * time.Second},
		logger: logger,
		sleep:  sleepCtx,
	}
}

// Complete sends one chat completion request and returns the raw text of
// the first choice. One credential is consumed per call and reused across
// that call's retries. Transient failures (429, 5xx, network) retry with
// backoff up to maxAttempts; anything else aborts immediately.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage, temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(request{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	key := c.pool.Next()

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		content, err := c.do(ctx, key, body)
		if err == nil {
			return content, nil
		}
		lastErr = err

		var transient *transientError
		if !errors.As(err, &transient) {
			return "", err
		}
		if attempt == maxAttempts-1 {
			break
		}

		wait := transient.wait
		if wait <= 0 {
			wait = backoff(attempt)
		}
		c.logger.Warn("completion call failed, retrying",
			"attempt", attempt+1,
			"max_attempts", maxAttempts,
			"wait", wait,
			"error", err,
		)
		if err := c.sleep(ctx, wait); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) do(ctx context.Context, key string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &transientError{err: fmt.Errorf("api call: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &transientError{err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		wait := rateLimitWait
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
				wait = time.Duration(secs) * time.Second
			}
		}
		return "", &transientError{wait: wait, err: fmt.Errorf("rate limit exceeded (429)")}
	case resp.StatusCode >= 500:
		return "", &transientError{err: fmt.Errorf("api error %d: %s", resp.StatusCode, string(respBody))}
	case resp.StatusCode != http.StatusOK:
		// Malformed request, bad credentials: retrying won't fix it.
		return "", fmt.Errorf("api error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response choices")
	}
	return apiResp.Choices[0].Message.Content, nil
}

// backoff is min(1s × 2^(attempt+1), 10s) after the attempt-th failure.
func backoff(attempt int) time.Duration {
	d := time.Second << uint(attempt+1)
	if d > backoffCeiling {
		d = backoffCeiling
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

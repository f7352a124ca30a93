package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/queueless/queueless-api/internal/logger"
	"github.com/queueless/queueless-api/internal/model"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta3"

	// modelName is the text model used for explanations
	modelName = "text-bison-001"

	// RequestsPerMinute is a conservative limit for the free tier
	RequestsPerMinute = 60

	// DefaultTimeout bounds a single generation request; the explanation
	// is best-effort enrichment, so it stays short
	DefaultTimeout = 10 * time.Second

	// RetryMaxAttempts is the number of attempts per generation
	RetryMaxAttempts = 2

	// RetryBackoff is the wait between retries
	RetryBackoff = 2 * time.Second
)

// GeminiClient is the HTTP client for the Google Generative Language API
type GeminiClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewGeminiClient creates a new text-generation client
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        5,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/RequestsPerMinute), 5),
	}
}

// generateRequest is the wire request for text generation
type generateRequest struct {
	Prompt struct {
		Text string `json:"text"`
	} `json:"prompt"`
}

// generateResponse is the wire response for text generation
type generateResponse struct {
	Candidates []struct {
		Output string `json:"output"`
	} `json:"candidates"`
}

// GenerateText requests a completion for the prompt, with retry on
// transient failures
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= RetryMaxAttempts; attempt++ {
		text, err := c.generate(ctx, prompt)
		if err == nil {
			return text, nil
		}

		lastErr = err

		// Context cancelled: no retry
		if ctx.Err() != nil {
			return "", err
		}

		// Quota and auth failures do not recover within a request
		if err == model.ErrRateLimited || err == model.ErrUnauthorized {
			return "", err
		}

		if attempt < RetryMaxAttempts {
			logger.Get(ctx).Warn().
				Int("attempt", attempt).
				Int("max_attempts", RetryMaxAttempts).
				Err(err).
				Dur("backoff", RetryBackoff).
				Msg("Text generation attempt failed, retrying")

			select {
			case <-time.After(RetryBackoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	return "", lastErr
}

// generate executes one generation request
func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	var reqBody generateRequest
	reqBody.Prompt.Text = prompt

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal body: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateText?key=%s", c.baseURL, modelName, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", model.ErrTimeout
		}
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// OK, continue
	case http.StatusTooManyRequests:
		return "", model.ErrRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", model.ErrUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 {
		return "", model.ErrInvalidResponse
	}

	text := strings.TrimSpace(genResp.Candidates[0].Output)
	if text == "" {
		return "", model.ErrInvalidResponse
	}

	return text, nil
}

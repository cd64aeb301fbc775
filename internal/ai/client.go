// Package ai wraps the chat-completion and image-generation endpoints the
// dashboard widgets call out to.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"skylight/internal/apperr"
	applog "skylight/internal/log"
)

const (
	defaultChatURL  = "https://text.pollinations.ai/openai"
	defaultImageURL = "https://image.pollinations.ai/generate"
	defaultTimeout  = 90 * time.Second

	// maxAttempts bounds the retry loop for chat calls. Image generation is
	// fire-once and never retried.
	maxAttempts = 3

	// NoResponseFallback is returned instead of an error when a successful
	// response carries no usable text, so the UI always has something to show.
	NoResponseFallback = "no response received"

	imageModel  = "flux"
	imageWidth  = 1920
	imageHeight = 1080
)

// Config describes how the provider client should be initialised. Sleep and
// Jitter exist so tests can observe backoff without real timers.
type Config struct {
	ChatURL    string
	ImageURL   string
	Timeout    time.Duration
	HTTPClient *http.Client
	Sleep      func(time.Duration)
	Jitter     func() time.Duration
}

// Client is a thin wrapper around the AI endpoints with retry/backoff on the
// chat path.
type Client struct {
	chatURL    string
	imageURL   string
	httpClient *http.Client
	sleep      func(time.Duration)
	jitter     func() time.Duration
}

// NewClient builds a Client, filling in defaults for anything unset.
func NewClient(cfg Config) *Client {
	chatURL := strings.TrimSpace(cfg.ChatURL)
	if chatURL == "" {
		chatURL = defaultChatURL
	}
	imageURL := strings.TrimSpace(cfg.ImageURL)
	if imageURL == "" {
		imageURL = defaultImageURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	jitter := cfg.Jitter
	if jitter == nil {
		jitter = func() time.Duration {
			return time.Duration(rand.Int63n(int64(time.Second)))
		}
	}

	return &Client{
		chatURL:    chatURL,
		imageURL:   imageURL,
		httpClient: httpClient,
		sleep:      sleep,
		jitter:     jitter,
	}
}

// Complete sends prompt to the chat-completion endpoint and returns the reply
// text. Classification: 401 fails immediately as an authentication failure,
// 429 is retried with exponential backoff up to the attempt ceiling, any other
// non-success status fails immediately with that status. A successful response
// with no usable text yields NoResponseFallback instead of an error.
func (c *Client) Complete(ctx context.Context, apiKey, model, prompt string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", apperr.ConfigurationMissing("chat API key not configured")
	}

	payload := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"stream": false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperr.MalformedResponse(err)
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		status, raw, err := c.post(ctx, c.chatURL, apiKey, body)
		if err != nil {
			return "", &apperr.Error{Code: apperr.CodeAPIFailure, Message: "chat request could not be sent", Err: err}
		}

		switch {
		case status == http.StatusUnauthorized:
			return "", apperr.AuthenticationFailure()
		case status == http.StatusTooManyRequests:
			if attempt < maxAttempts {
				delay := backoffDelay(attempt) + c.jitter()
				applog.Debug(ctx, "rate limited, backing off", "attempt", attempt, "delay", delay.String())
				c.sleep(delay)
				continue
			}
			return "", apperr.RateLimited(maxAttempts)
		case status < 200 || status >= 300:
			return "", apperr.APIFailure(status)
		}

		return extractContent(raw), nil
	}

	return "", apperr.RateLimited(maxAttempts)
}

// backoffDelay returns the base delay before retry n: 1s after the first
// failed attempt, 2s after the second. Jitter is added by the caller.
func backoffDelay(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * time.Second
}

func extractContent(raw []byte) string {
	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return NoResponseFallback
	}
	if len(envelope.Choices) == 0 {
		return NoResponseFallback
	}
	content := strings.TrimSpace(envelope.Choices[0].Message.Content)
	if content == "" {
		return NoResponseFallback
	}
	return content
}

// GenerateImage asks the image endpoint for a 1920x1080 render of prompt and
// returns the resulting image URL. There is no retry; any failure, including a
// success response without a URL, is returned as a classified error.
func (c *Client) GenerateImage(ctx context.Context, apiKey, prompt string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", apperr.ConfigurationMissing("image API key not configured")
	}

	payload := map[string]any{
		"prompt": prompt,
		"model":  imageModel,
		"width":  imageWidth,
		"height": imageHeight,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperr.MalformedResponse(err)
	}

	status, raw, err := c.post(ctx, c.imageURL, apiKey, body)
	if err != nil {
		return "", &apperr.Error{Code: apperr.CodeAPIFailure, Message: "image request could not be sent", Err: err}
	}

	switch {
	case status == http.StatusUnauthorized:
		return "", apperr.AuthenticationFailure()
	case status < 200 || status >= 300:
		return "", apperr.APIFailure(status)
	}

	var envelope struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", apperr.MalformedResponse(err)
	}
	if strings.TrimSpace(envelope.URL) == "" {
		return "", apperr.MalformedResponse(nil)
	}
	return envelope.URL, nil
}

func (c *Client) post(ctx context.Context, url, apiKey string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, raw, nil
}

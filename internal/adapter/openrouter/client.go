package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/user/salesbot-service/internal/repository"
)

// Config holds the completion parameters.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	Referer     string
	Title       string
	RatePerSec  float64
	Burst       int
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	ai          *openai.Client
	cfg         Config
	rateLimiter *rate.Limiter
}

// NewClient creates a completion client.
func NewClient(cfg Config) *Client {
	transportCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		transportCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	transportCfg.HTTPClient = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &attributionTransport{
			next:    http.DefaultTransport,
			referer: cfg.Referer,
			title:   cfg.Title,
		},
	}

	return &Client{
		ai:          openai.NewClientWithConfig(transportCfg),
		cfg:         cfg,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
	}
}

// attributionTransport adds the app attribution headers OpenRouter reads.
type attributionTransport struct {
	next    http.RoundTripper
	referer string
	title   string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer == "" && t.title == "" {
		return t.next.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return t.next.RoundTrip(req)
}

// Complete sends the system instruction followed by messages and returns
// the first choice.
func (c *Client) Complete(ctx context.Context, system string, messages []repository.ChatMessage) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limiter: %v", repository.ErrCompletionFailed, err)
	}

	chat := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chat = append(chat, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	for _, m := range messages {
		chat = append(chat, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    chat,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: float32(c.cfg.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", repository.ErrCompletionFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", repository.ErrEmptyCompletion
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", repository.ErrEmptyCompletion
	}
	return content, nil
}

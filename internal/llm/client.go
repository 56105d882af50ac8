package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

// Client is the generation interface the tailoring pipeline depends on.
// Implementations must be safe for concurrent use.
type Client interface {
	// Generate produces a completion for the prompt. A non-empty system
	// prompt is sent as a separate system message.
	Generate(ctx context.Context, system, prompt string, opts Options) (string, error)
	// IsAvailable reports whether the model server answers health checks.
	IsAvailable(ctx context.Context) bool
	// Model returns the model name in use.
	Model() string
}

// Options control a single generation request.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// OllamaClient talks to a local Ollama server's chat API. Requests are rate
// limited so batch enhancement cannot overwhelm the model server.
type OllamaClient struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

// NewOllamaClient builds a client from cfg, filling blanks with defaults.
func NewOllamaClient(cfg Config) *OllamaClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerMin <= 0 {
		cfg.RequestsPerMin = DefaultRequestsPerMin
	}
	return &OllamaClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMin)/60.0), 1),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error,omitempty"`
}

// Generate implements Client against POST /api/chat.
func (c *OllamaClient) Generate(ctx context.Context, system, prompt string, opts Options) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &GenerationError{Message: "rate limit wait interrupted", Cause: err}
	}

	var messages []chatMessage
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	reqBody := chatRequest{
		Model:    c.cfg.Model,
		Messages: messages,
		Stream:   false,
	}
	options := make(map[string]any)
	if opts.Temperature > 0 {
		options["temperature"] = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		options["num_predict"] = opts.MaxTokens
	}
	if len(options) > 0 {
		reqBody.Options = options
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &GenerationError{Message: "cannot encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", &GenerationError{Message: "cannot build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &GenerationError{Message: "chat request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{Message: "cannot read response", StatusCode: resp.StatusCode, Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &GenerationError{
			Message:    fmt.Sprintf("chat request rejected: %s", strings.TrimSpace(string(body))),
			StatusCode: resp.StatusCode,
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &GenerationError{Message: "cannot decode response", Cause: err}
	}
	if parsed.Error != "" {
		return "", &GenerationError{Message: parsed.Error, StatusCode: resp.StatusCode}
	}
	content := strings.TrimSpace(parsed.Message.Content)
	if content == "" {
		return "", &GenerationError{Message: "empty completion"}
	}
	return content, nil
}

// IsAvailable probes GET /api/tags with a short deadline.
func (c *OllamaClient) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, DefaultHealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Model implements Client.
func (c *OllamaClient) Model() string {
	return c.cfg.Model
}

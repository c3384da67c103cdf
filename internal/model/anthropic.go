package model

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"
)

// DefaultModelID is the model used for issue validation. Validation
// prompts are short yes/no questions, so the cost-efficient tier is
// enough.
const DefaultModelID = "claude-3-5-haiku-20241022"

// GetModelID returns the validation model, checking the KOSEI_MODEL
// env var first.
func GetModelID() string {
	if m := os.Getenv("KOSEI_MODEL"); m != "" {
		return m
	}
	return DefaultModelID
}

// AnthropicConfig configures the Anthropic-backed client.
type AnthropicConfig struct {
	APIKey string // if empty, reads ANTHROPIC_API_KEY
	// RequestsPerSecond throttles inference calls (default: 2).
	RequestsPerSecond float64
}

// AnthropicClient implements Client over the Anthropic Messages API.
// The API itself has no load/unload; LoadModel pins the model id and
// marks the session warm so the lifecycle controller's accounting
// still applies.
type AnthropicClient struct {
	client  anthropic.Client
	limiter *rate.Limiter
	apiKey  string

	mu     sync.Mutex
	loaded bool
	model  string
}

var _ Client = (*AnthropicClient)(nil)

// NewAnthropicClient creates the adapter. A missing API key is not an
// error here: the client reports unavailable and the validator fails
// open.
func NewAnthropicClient(cfg *AnthropicConfig) *AnthropicClient {
	if cfg == nil {
		cfg = &AnthropicConfig{}
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	return &AnthropicClient{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		apiKey:  apiKey,
	}
}

// IsAvailable reports whether credentials exist.
func (a *AnthropicClient) IsAvailable() bool {
	return a.apiKey != ""
}

// IsModelLoaded reports whether LoadModel has pinned a model.
func (a *AnthropicClient) IsModelLoaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loaded
}

// LoadModel pins the model id for subsequent Infer calls.
func (a *AnthropicClient) LoadModel(ctx context.Context, id string) error {
	if !a.IsAvailable() {
		return ErrUnavailable
	}
	if id == "" {
		id = GetModelID()
	}
	a.mu.Lock()
	a.loaded = true
	a.model = id
	a.mu.Unlock()
	return nil
}

// UnloadModel releases the pinned model.
func (a *AnthropicClient) UnloadModel(ctx context.Context) error {
	a.mu.Lock()
	a.loaded = false
	a.model = ""
	a.mu.Unlock()
	return nil
}

// Infer runs one prompt through the pinned model, rate-limited.
func (a *AnthropicClient) Infer(ctx context.Context, prompt string, opts InferOptions) (*InferResult, error) {
	a.mu.Lock()
	loaded, modelID := a.loaded, a.model
	a.mu.Unlock()
	if !loaded {
		return nil, ErrModelNotLoaded
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	maxTokens := int64(opts.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 16
	}
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return &InferResult{Text: text}, nil
}

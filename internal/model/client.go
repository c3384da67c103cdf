// Package model owns the language-model resource: the abstract client
// contract, the lifecycle controller that loads and releases the
// resource, and the Anthropic-backed adapter.
package model

import (
	"context"
	"errors"
)

// ErrModelNotLoaded is returned by Infer when no model is loaded.
var ErrModelNotLoaded = errors.New("model is not loaded")

// ErrUnavailable is returned when the backend cannot be reached at all
// (no credentials, no endpoint).
var ErrUnavailable = errors.New("model backend is unavailable")

// InferOptions bounds a single inference call.
type InferOptions struct {
	// MaxTokens caps the response length. Validation prompts expect
	// one-word answers, so this stays small.
	MaxTokens int
}

// InferResult is the text produced by one inference call.
type InferResult struct {
	Text string
}

// Client is the abstract inference contract. The validator and the
// lifecycle controller depend only on this interface, never on a
// concrete backend.
//
// The model is an exclusive singleton resource: callers must not issue
// concurrent Infer calls. The lifecycle controller serializes loads;
// the validator serializes inference within a batch.
type Client interface {
	// LoadModel makes the model with the given id ready for inference.
	LoadModel(ctx context.Context, id string) error
	// UnloadModel releases the model resource. Unloading an unloaded
	// model is a no-op.
	UnloadModel(ctx context.Context) error
	// IsModelLoaded reports whether a model is currently loaded.
	IsModelLoaded() bool
	// IsAvailable reports whether the backend can be used at all.
	IsAvailable() bool
	// Infer runs one prompt through the loaded model.
	Infer(ctx context.Context, prompt string, opts InferOptions) (*InferResult, error)
}

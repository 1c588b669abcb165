// Package llm abstracts the text-completion endpoint the trainer calls to
// produce problem sets. Providers return raw model text; all structural
// recovery of that text happens in the problemgen package.
package llm

import "context"

// Provider is the core abstraction for completion calls.
type Provider interface {
	// Complete sends one prompt and returns the model's text output.
	// Transport failures and non-success statuses surface as typed errors
	// from this package.
	Complete(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured for.
	ModelID() string
}

// Request describes one completion call. The trainer's prompts are
// single-turn: one user message carrying the full instruction.
type Request struct {
	// Prompt is the user message content.
	Prompt string

	// MaxTokens bounds the response length. 0 means provider default.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Generation benefits from
	// some variety, so callers typically set this above zero.
	Temperature float64
}

// Response holds the model's output.
type Response struct {
	// Text is the raw completion text, exactly as returned. It may be
	// wrapped in code fences or surrounded by prose; callers must not
	// assume it is clean JSON.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Package llm wraps the generative-text collaborator. The pipeline only
// depends on the Client interface; callers must treat any error as a
// degraded upstream and fall back, never as a request failure.
package llm

import (
	"context"
	"strings"
)

// Client produces a structured-text completion for a prompt.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleteFunc adapts a function to the Client interface, mainly for tests.
type CompleteFunc func(ctx context.Context, prompt string) (string, error)

// Complete implements Client.
func (f CompleteFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// CleanJSON strips markdown code fences that models wrap around JSON
// despite instructions, returning the trimmed payload.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

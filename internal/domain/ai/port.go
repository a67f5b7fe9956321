package ai

import "context"

// Client sends one prompt to a text-generation provider and returns the raw
// completion text. Implementations make a single attempt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

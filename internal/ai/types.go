package ai

import "context"

// Model is a text-generation backend that answers a single prompt with raw
// text. Implementations make exactly one round trip per call.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

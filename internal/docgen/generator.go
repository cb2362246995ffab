package docgen

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured means no generator can be built, usually because the API key is missing.
	ErrNotConfigured = errors.New("generator not configured")

	// ErrGenerationFailed wraps every failure of a generator call.
	ErrGenerationFailed = errors.New("generation failed")
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

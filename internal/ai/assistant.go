package ai

import (
	"context"
)

// Generator is the contract of an optional generative-text collaborator.
// Implementations make a single synchronous attempt per call.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

package ranking

import "context"

// Generator produces model completions for ranking prompts.
type Generator interface {
	Generate(ctx context.Context, operation, prompt string) (string, error)
}

package chat

import "context"

// Generator is the text-generation boundary: prompt in, text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

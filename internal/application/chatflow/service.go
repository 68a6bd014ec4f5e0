package chatflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexbharat/lexbharat/internal/domain/chat"
)

// Service implements the chat side-flow: one prompt in, one reply out.
// No conversation state is kept server-side.
type Service struct {
	generator chat.Generator
}

func NewService(g chat.Generator) *Service {
	return &Service{generator: g}
}

// Ask validates the prompt and forwards it to the generation boundary.
// Empty upstream output is an upstream failure, never returned as a reply.
func (s *Service) Ask(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", chat.ErrEmptyPrompt
	}
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", chat.ErrUpstream, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", chat.ErrUpstream)
	}
	return text, nil
}

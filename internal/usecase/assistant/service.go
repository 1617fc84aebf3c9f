// Package assistant wraps the text-generation provider with the helpdesk
// prompt templates: complaint summary, priority scoring and resolution.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain"
)

const (
	operationSummarize = "summarize"
	operationPriority  = "priority_score"
	operationResolve   = "resolve_complaint"
)

// Generator produces model completions.
type Generator interface {
	Generate(ctx context.Context, operation, prompt string) (string, error)
}

// Service exposes the prompt-templated generation operations.
type Service struct {
	gen Generator
}

// New creates an assistant service.
func New(gen Generator) *Service {
	return &Service{gen: gen}
}

// Summarize produces a plain-text summary of a complaint. Markdown emitted
// by the model is stripped before returning.
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	if err := requireText(text); err != nil {
		return "", err
	}

	out, err := s.gen.Generate(ctx, operationSummarize, summarizePrompt+text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	return StripMarkdown(out), nil
}

// PriorityScore rates a complaint 1-10 by urgency and impact. The model
// reply is returned as-is; callers present it verbatim.
func (s *Service) PriorityScore(ctx context.Context, text string) (string, error) {
	if err := requireText(text); err != nil {
		return "", err
	}

	out, err := s.gen.Generate(ctx, operationPriority, priorityPrompt+text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	return strings.TrimSpace(out), nil
}

// Resolve drafts a reply an administrator can send for a complaint. The
// prompt instructs the model to refuse off-topic input with a fixed
// sentence, so no classification happens here.
func (s *Service) Resolve(ctx context.Context, query string) (string, error) {
	if err := requireText(query); err != nil {
		return "", err
	}

	out, err := s.gen.Generate(ctx, operationResolve, resolvePrompt+"\n"+query)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	return strings.TrimSpace(out), nil
}

func requireText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text is empty", domain.ErrValidation)
	}
	return nil
}

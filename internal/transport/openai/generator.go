// Package openai adapts the OpenAI-compatible API as the two external
// collaborators of the helpdesk: text generation and embeddings.
package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/metrics"
)

// Generator is the text-generation collaborator. The model is resolved once
// at construction from a candidate list and never changes afterwards.
type Generator struct {
	client     *openai.Client
	model      string
	timeout    time.Duration
	maxRetries int
	logger     *zap.Logger
}

// GeneratorConfig holds the generation client settings.
type GeneratorConfig struct {
	APIKey          string
	BaseURL         string
	ModelCandidates []string
	Timeout         time.Duration
	MaxRetries      int
	Logger          *zap.Logger
}

// NewGenerator creates a generation client, resolving the chat model from
// the candidate list. Startup fails if no candidate is available.
func NewGenerator(ctx context.Context, cfg GeneratorConfig) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if len(cfg.ModelCandidates) == 0 {
		return nil, fmt.Errorf("at least one chat model candidate is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientCfg)

	model, err := resolveModel(ctx, client, cfg.ModelCandidates)
	if err != nil {
		return nil, err
	}

	cfg.Logger.Info("generation model resolved",
		zap.String("model", model),
		zap.Strings("candidates", cfg.ModelCandidates),
	)

	return &Generator{
		client:     client,
		model:      model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		logger:     cfg.Logger,
	}, nil
}

// Model returns the resolved chat model name.
func (g *Generator) Model() string { return g.model }

// Generate sends a single prompt and returns the raw completion text.
// Each call is independent; no conversation state is carried between calls.
func (g *Generator) Generate(ctx context.Context, operation, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()

	var content string
	err := withRetries(ctx, g.logger, g.maxRetries, func(ctx context.Context) error {
		resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return classifyAPIError(err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty completion response")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})

	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.model, operation, "error").Inc()
		return "", fmt.Errorf("generate %s: %w", operation, err)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.model, operation, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(g.model, operation).Observe(duration.Seconds())

	return content, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", classifyAPIError(err))
	}
	return nil
}

// resolveModel returns the first candidate present in the provider's model
// list. The provider catalog is fetched once; candidate order expresses
// preference.
func resolveModel(ctx context.Context, client *openai.Client, candidates []string) (string, error) {
	list, err := client.ListModels(ctx)
	if err != nil {
		return "", fmt.Errorf("list models: %w", classifyAPIError(err))
	}

	available := make(map[string]bool, len(list.Models))
	for _, m := range list.Models {
		available[m.ID] = true
	}

	for _, candidate := range candidates {
		if available[candidate] {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no usable chat model among candidates %v", candidates)
}

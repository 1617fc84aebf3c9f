// Package complaint implements complaint ingestion and raw vector queries.
package complaint

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain"
	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/metrics"
)

// Service is the complaint store: ingestion plus raw nearest-neighbor access.
type Service struct {
	repo  Repository
	embed Embedder
	newID IDGenerator
}

// New creates a complaint service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed, newID: uuid.NewString}
}

// WithIDGenerator overrides id generation (tests).
func (s *Service) WithIDGenerator(gen IDGenerator) *Service {
	s.newID = gen
	return s
}

// Add validates, embeds and persists one complaint, generating a unique id.
// Empty metadata is replaced with the default sentinel record, because the
// backing store rejects empty metadata.
func (s *Service) Add(ctx context.Context, text string, metadata map[string]string) (domain.Complaint, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Complaint{}, fmt.Errorf("%w: complaint text is empty", domain.ErrValidation)
	}

	c := domain.NewComplaint(s.newID(), text, metadata)

	vector, err := s.embed.Embed(ctx, c.Text())
	if err != nil {
		return domain.Complaint{}, fmt.Errorf("%w: vectorize complaint: %w", domain.ErrStore, err)
	}

	if err := s.repo.Insert(ctx, &c, vector); err != nil {
		return domain.Complaint{}, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}

	metrics.ComplaintsStoredTotal.Inc()
	return c, nil
}

// RawQuery embeds the query text and returns up to k raw matches ordered by
// ascending distance. No threshold is applied.
func (s *Service) RawQuery(ctx context.Context, query string, k int) ([]domain.Match, error) {
	vector, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: vectorize query: %w", domain.ErrStore, err)
	}

	matches, err := s.repo.QueryNearest(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	return matches, nil
}

// GetAll returns every stored complaint, or an error. Never partial.
func (s *Service) GetAll(ctx context.Context) ([]domain.Complaint, error) {
	complaints, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	return complaints, nil
}

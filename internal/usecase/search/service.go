// Package search implements similarity search over stored complaints:
// threshold filtering, query expansion and deterministic result merging.
package search

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain"
	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/metrics"
)

// Report is the outcome of an expanded search.
type Report struct {
	Query            string
	ExpandedSearches int // number of query variants searched beyond the base
	TotalFound       int
	Results          []domain.Match
}

// Service runs similarity searches against the complaint store.
type Service struct {
	querier Querier

	similarityThreshold float64
	enhancedThreshold   float64
}

// New creates a search service. Thresholds are distance cutoffs: a match is
// kept when its raw distance is at or below the cutoff.
func New(querier Querier, similarityThreshold, enhancedThreshold float64) *Service {
	return &Service{
		querier:             querier,
		similarityThreshold: similarityThreshold,
		enhancedThreshold:   enhancedThreshold,
	}
}

// Similar returns up to k matches for query whose distance does not exceed
// threshold, ordered by descending similarity. A non-positive threshold
// falls back to the configured default.
func (s *Service) Similar(ctx context.Context, query string, k int, threshold float64) ([]domain.Match, error) {
	if threshold <= 0 {
		threshold = s.similarityThreshold
	}

	matches, err := s.runQuery(ctx, query, k)
	if err != nil {
		return nil, err
	}

	metrics.SearchesTotal.WithLabelValues("similar").Inc()
	return filterSort(matches, threshold), nil
}

// Enhanced searches the base query plus every expanded variant, merges the
// hits and returns the k best. The variant searches run concurrently; the
// merge is deterministic regardless of completion order. Any failed search
// fails the whole operation.
func (s *Service) Enhanced(ctx context.Context, query string, k int) (Report, error) {
	queries := append([]string{query}, ExpandQuery(query)...)

	batches := make([][]domain.Match, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			batches[i], errs[i] = s.runQuery(ctx, q, k)
		}(i, q)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Report{}, err
		}
	}

	// Each batch is thresholded on its own before the merge, so an
	// over-threshold hit can never claim an id and shadow an in-threshold
	// hit for the same complaint from another variant. The merge runs in
	// query order, first occurrence of an id wins: the base query comes
	// first, so its distance is the one reported.
	seen := make(map[string]struct{})
	var merged []domain.Match
	for _, batch := range batches {
		for _, m := range filterSort(batch, s.enhancedThreshold) {
			if _, ok := seen[m.ID()]; ok {
				continue
			}
			seen[m.ID()] = struct{}{}
			merged = append(merged, m)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SimilarityScore() > merged[j].SimilarityScore()
	})

	totalFound := len(merged)
	if len(merged) > k {
		merged = merged[:k]
	}

	metrics.SearchesTotal.WithLabelValues("enhanced").Inc()
	return Report{
		Query:            query,
		ExpandedSearches: len(queries) - 1,
		TotalFound:       totalFound,
		Results:          merged,
	}, nil
}

func (s *Service) runQuery(ctx context.Context, query string, k int) ([]domain.Match, error) {
	matches, err := s.querier.RawQuery(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %w", domain.ErrRetrieval, query, err)
	}
	return matches, nil
}

// filterSort drops matches beyond the distance cutoff and orders the rest
// by descending similarity. The sort is stable so equal scores keep their
// merge order.
func filterSort(matches []domain.Match, threshold float64) []domain.Match {
	kept := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		if m.Distance() <= threshold {
			kept = append(kept, m)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].SimilarityScore() > kept[j].SimilarityScore()
	})
	return kept
}

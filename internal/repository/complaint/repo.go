// Package complaint persists complaints in the vector store and exposes raw
// nearest-neighbor queries against them.
package complaint

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/db"
	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain"
)

const (
	keyPrefix = domain.KeyPrefix + "complaint:"
	indexName = domain.KeyPrefix + "complaints:idx"
)

// store is the consumer interface for complaint persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// HNSWConfig tunes the vector index build.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements complaint persistence over an FT-indexed hash store.
type Repo struct {
	store     store
	vectorDim int
	hnsw      HNSWConfig
}

// New creates a complaint repository.
func New(s store, vectorDim int) *Repo {
	return &Repo{store: s, vectorDim: vectorDim}
}

// WithHNSW overrides index build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// EnsureIndex creates the complaint vector index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:        indexName,
		StorageType: db.StorageHash,
		Prefixes:    []string{keyPrefix},
		Fields: []db.IndexField{
			{Name: fieldText, Type: db.IndexFieldText},
			{Name: fieldVector, Type: db.IndexFieldVector,
				VectorDim:         r.vectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Insert persists one complaint with its embedding. Writing the same id
// twice overwrites the previous record; uniqueness is the caller's job.
func (r *Repo) Insert(ctx context.Context, c *domain.Complaint, vector []float32) error {
	if err := r.store.HSet(ctx, complaintKey(c.ID()), buildHashFields(c, vector)); err != nil {
		return fmt.Errorf("hset complaint %s: %w", c.ID(), err)
	}
	return nil
}

// QueryNearest returns up to k raw nearest-neighbor matches for the query
// vector, ordered by ascending distance. No threshold is applied here.
func (r *Repo) QueryNearest(ctx context.Context, vector []float32, k int) ([]domain.Match, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    indexName,
		Vector:       vector,
		K:            k,
		ReturnFields: []string{fieldText},
	})
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	matches := make([]domain.Match, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, keyPrefix)
		matches = append(matches, domain.NewMatch(id, entry.Fields[fieldText], entry.Distance))
	}
	return matches, nil
}

// ListAll returns every stored complaint. Either the full list or an error,
// never a partial result. Intended for diagnostics.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	keys, err := r.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan complaints: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch complaints: %w", err)
	}

	complaints := make([]domain.Complaint, 0, len(hashes))
	for i, fields := range hashes {
		id := strings.TrimPrefix(keys[i], keyPrefix)
		complaints = append(complaints, parseHashFields(id, fields))
	}
	return complaints, nil
}

func complaintKey(id string) string {
	return keyPrefix + id
}

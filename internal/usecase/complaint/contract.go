package complaint

import (
	"context"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain"
)

// Repository defines the persistence contract for complaints.
type Repository interface {
	Insert(ctx context.Context, c *domain.Complaint, vector []float32) error
	QueryNearest(ctx context.Context, vector []float32, k int) ([]domain.Match, error)
	ListAll(ctx context.Context) ([]domain.Complaint, error)
}

// Embedder vectorizes text for storage and querying.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// IDGenerator produces unique complaint identifiers.
type IDGenerator func() string

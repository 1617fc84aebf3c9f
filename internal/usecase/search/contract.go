package search

import (
	"context"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain"
)

// Querier provides raw nearest-neighbor matches for a query string.
type Querier interface {
	RawQuery(ctx context.Context, query string, k int) ([]domain.Match, error)
}

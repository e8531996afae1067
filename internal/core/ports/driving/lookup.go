package driving

import (
	"context"

	"github.com/custodia-labs/geosearch/internal/core/domain"
)

// LookupService resolves free text without any interactive state.
type LookupService interface {
	// Lookup returns up to limit locations for query. A limit <= 0 returns all.
	Lookup(ctx context.Context, query string, limit int) ([]domain.Location, error)
}

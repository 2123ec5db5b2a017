package driven

import (
	"context"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

// CatalogStore loads the static product catalog. A missing or
// unreadable catalog degrades to an empty slice, never an error that
// stops startup; the ranker then returns empty recommendation lists.
type CatalogStore interface {
	// Load returns the catalog items in file order.
	Load(ctx context.Context) ([]domain.CatalogItem, error)
}

// Package file loads the product catalog from a JSON file on disk.
//
// The file holds a single object with the items under a "products"
// key. A missing file or a file without that key is not an error:
// recommendations simply come up empty. This keeps the retrieval side
// of the application usable on machines that never set up a catalog.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ankushsurana/shopsage/internal/core/domain"
	"github.com/ankushsurana/shopsage/internal/logger"
)

// Store reads catalog items from a JSON file.
type Store struct {
	path string
}

// NewStore creates a catalog store backed by the JSON file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// catalogFile is the on-disk shape of the catalog document.
type catalogFile struct {
	Products []domain.CatalogItem `json:"products"`
}

// Load reads the catalog. A missing file yields an empty catalog and a
// warning; malformed JSON is the only hard failure.
func (s *Store) Load(_ context.Context) ([]domain.CatalogItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Catalog file %s not found, recommendations disabled", s.path)
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: reading %s: %w", s.path, err)
	}

	var doc catalogFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parsing %s: %w", s.path, err)
	}

	if len(doc.Products) == 0 {
		logger.Warn("Catalog file %s has no products", s.path)
	}
	return doc.Products, nil
}

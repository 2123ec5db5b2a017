package domain

// StockInStock is the stock value that counts as available for the
// ranker's stock bonus. Any other value earns no bonus.
const StockInStock = "in-stock"

// CatalogItem is a product in the static catalog. The catalog is loaded
// once and read-only for the lifetime of the process.
type CatalogItem struct {
	// Name is the display name of the product.
	Name string `json:"name"`

	// Category is the product category label (e.g. "electronics").
	Category string `json:"category"`

	// Price is the listed price.
	Price float64 `json:"price"`

	// Rating is the average customer rating, 0 to 5.
	Rating float64 `json:"rating"`

	// Stock is the availability label; StockInStock means available.
	Stock string `json:"stock"`

	// Description is the short product description.
	Description string `json:"description"`
}

// InStock reports whether the item counts as available.
func (i CatalogItem) InStock() bool {
	return i.Stock == StockInStock
}

// ScoredRecommendation pairs a catalog item with the relevance score it
// earned against a user profile. Used only for ranking, never persisted.
type ScoredRecommendation struct {
	CatalogItem

	// RelevanceScore is an unbounded non-negative float; higher ranks
	// first. Zero for fallback recommendations that were never scored.
	RelevanceScore float64 `json:"relevance_score"`
}

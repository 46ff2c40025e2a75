// ABOUTME: Catalog domain models for indexed products and search candidates
// ABOUTME: Candidates are read-only projections of records returned by the engine

package domain

// CatalogRecord is a single product as ingested into the search engine.
// Records are immutable once indexed.
type CatalogRecord struct {
	// Name is the product display name
	Name string `json:"name"`

	// Brand is the manufacturer or label
	Brand string `json:"brand"`

	// Category is the catalog category the product belongs to
	Category string `json:"category"`

	// Price is the listed price in the store currency
	Price float64 `json:"price"`

	// URL points at the product page
	URL string `json:"url"`

	// Store is the shop the product is sold in
	Store string `json:"store"`
}

// Candidate is a projection of a CatalogRecord returned for a query.
// Rank is implicit: it is the position in the returned slice.
type Candidate struct {
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	URL      string  `json:"url"`
	Store    string  `json:"store"`

	// Score is the engine relevance score, opaque to the caller
	Score float64 `json:"score"`
}

// CandidateFromRecord builds a candidate from a record and its engine score.
func CandidateFromRecord(r CatalogRecord, score float64) Candidate {
	return Candidate{
		Name:     r.Name,
		Brand:    r.Brand,
		Category: r.Category,
		Price:    r.Price,
		URL:      r.URL,
		Store:    r.Store,
		Score:    score,
	}
}

// ProjectedFields lists the record fields requested from the engine.
var ProjectedFields = []string{"name", "brand", "category", "price", "url", "store"}

// ABOUTME: Search engine contract models shared by the retrieval client and engine adapters
// ABOUTME: Describes the disjunctive multi-field query and the ordered hit list it returns

package domain

// Multi-match types understood by the engine adapters.
const (
	MatchBestFields = "best_fields"
)

// FuzzinessAuto asks the engine for length-scaled edit distance tolerance.
const FuzzinessAuto = "AUTO"

// MultiMatch is one match strategy evaluated against several fields.
type MultiMatch struct {
	// Query is the normalized query text
	Query string

	// Fields are the index fields to match against
	Fields []string

	// Type is the multi-field scoring mode (best_fields)
	Type string

	// Fuzziness is empty for exact matching or FuzzinessAuto
	Fuzziness string

	// PrefixLength is the number of leading characters that must match exactly
	// before fuzziness applies
	PrefixLength int
}

// SearchRequest is the structured query document sent to the engine.
// A document matching any Should clause is eligible.
type SearchRequest struct {
	Index  string
	Should []MultiMatch
	Size   int
	Source []string
}

// SearchHit is a single ranked hit.
type SearchHit struct {
	Score  float64
	Record CatalogRecord
}

// SearchResponse holds hits in engine score order.
type SearchResponse struct {
	Hits  []SearchHit
	Total int
}

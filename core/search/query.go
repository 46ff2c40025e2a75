package search

import (
	"catalog-suggest/core/domain"
)

// Index-time field names the query relies on. Autocomplete fields carry edge
// n-grams of the whole value; plain fields use the standard analyzer.
var (
	AutocompleteFields = []string{"name.autocomplete", "brand.autocomplete", "category.autocomplete"}
	StandardFields     = []string{"name", "brand", "category"}
)

// BuildRequest constructs the disjunctive two-strategy query for a normalized
// string. The first clause tolerates typos on prefix-indexed fields, the second
// matches the standard text representation exactly. Either clause makes a
// document eligible and the engine combines the scores of whichever matched.
func BuildRequest(index, normalized string, topK int) domain.SearchRequest {
	return domain.SearchRequest{
		Index: index,
		Should: []domain.MultiMatch{
			{
				Query:        normalized,
				Fields:       append([]string(nil), AutocompleteFields...),
				Type:         domain.MatchBestFields,
				Fuzziness:    domain.FuzzinessAuto,
				PrefixLength: 1,
			},
			{
				Query:  normalized,
				Fields: append([]string(nil), StandardFields...),
				Type:   domain.MatchBestFields,
			},
		},
		Size:   topK,
		Source: append([]string(nil), domain.ProjectedFields...),
	}
}

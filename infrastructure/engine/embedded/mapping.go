package embedded

import (
	"strings"

	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/analysis/token/edgengram"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/mapping"
)

const (
	autocompleteAnalyzer = "autocomplete"
	autocompleteSearch   = "autocomplete_search"
	edgeNgramFilter      = "autocomplete_edge_ngram"

	autocompleteSuffix = ".autocomplete"
)

var textFields = []string{"name", "brand", "category"}

// fieldName maps engine-neutral field names to indexed bleve fields. Dotted
// sub-field names collide with bleve's object paths, so autocomplete
// sub-fields are stored under an underscore name.
func fieldName(field string) string {
	if strings.HasSuffix(field, autocompleteSuffix) {
		return strings.TrimSuffix(field, autocompleteSuffix) + "_autocomplete"
	}
	return field
}

// newIndexMapping builds the catalog mapping: standard analysis for text
// fields plus an edge n-gram (1..20) copy of each whole value.
func newIndexMapping() (*mapping.IndexMappingImpl, error) {
	im := mapping.NewIndexMapping()

	err := im.AddCustomTokenFilter(edgeNgramFilter, map[string]interface{}{
		"type": edgengram.Name,
		"min":  1.0,
		"max":  20.0,
	})
	if err != nil {
		return nil, err
	}

	err = im.AddCustomAnalyzer(autocompleteAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name, edgeNgramFilter},
	})
	if err != nil {
		return nil, err
	}

	// Queries against autocomplete fields are compared whole against the
	// indexed n-grams.
	err = im.AddCustomAnalyzer(autocompleteSearch, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}

	doc := mapping.NewDocumentMapping()
	for _, field := range textFields {
		text := mapping.NewTextFieldMapping()
		text.Analyzer = standard.Name
		text.Store = true

		auto := mapping.NewTextFieldMapping()
		auto.Name = fieldName(field + autocompleteSuffix)
		auto.Analyzer = autocompleteAnalyzer
		auto.Store = false
		auto.IncludeInAll = false

		doc.AddFieldMappingsAt(field, text, auto)
	}

	price := mapping.NewNumericFieldMapping()
	price.Store = true
	doc.AddFieldMappingsAt("price", price)

	for _, field := range []string{"url", "store"} {
		kw := mapping.NewTextFieldMapping()
		kw.Analyzer = keyword.Name
		kw.Store = true
		kw.IncludeInAll = false
		doc.AddFieldMappingsAt(field, kw)
	}

	im.DefaultMapping = doc
	im.DefaultAnalyzer = standard.Name
	return im, nil
}

package opensearch

import (
	"encoding/json"
	"strconv"
	"strings"

	"catalog-suggest/core/domain"
)

type searchBody struct {
	Query  queryBody `json:"query"`
	Size   int       `json:"size"`
	Source []string  `json:"_source,omitempty"`
}

type queryBody struct {
	Bool boolQuery `json:"bool"`
}

type boolQuery struct {
	Should []shouldClause `json:"should"`
}

type shouldClause struct {
	MultiMatch multiMatch `json:"multi_match"`
}

type multiMatch struct {
	Query        string   `json:"query"`
	Fields       []string `json:"fields"`
	Type         string   `json:"type,omitempty"`
	Fuzziness    string   `json:"fuzziness,omitempty"`
	PrefixLength int      `json:"prefix_length,omitempty"`
}

func encodeSearch(req domain.SearchRequest) searchBody {
	should := make([]shouldClause, len(req.Should))
	for i, m := range req.Should {
		should[i] = shouldClause{MultiMatch: multiMatch{
			Query:        m.Query,
			Fields:       m.Fields,
			Type:         m.Type,
			Fuzziness:    m.Fuzziness,
			PrefixLength: m.PrefixLength,
		}}
	}
	return searchBody{
		Query:  queryBody{Bool: boolQuery{Should: should}},
		Size:   req.Size,
		Source: req.Source,
	}
}

// sourceRecord tolerates documents whose price was indexed as a string.
type sourceRecord struct {
	Name     string    `json:"name"`
	Brand    string    `json:"brand"`
	Category string    `json:"category"`
	Price    flexFloat `json:"price"`
	URL      string    `json:"url"`
	Store    string    `json:"store"`
}

func (s sourceRecord) toDomain() domain.CatalogRecord {
	return domain.CatalogRecord{
		Name:     s.Name,
		Brand:    s.Brand,
		Category: s.Category,
		Price:    float64(s.Price),
		URL:      s.URL,
		Store:    s.Store,
	}
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
		if err != nil {
			// Unparseable prices are not worth failing a search over
			*f = 0
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

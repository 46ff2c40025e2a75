// ABOUTME: Catalog ingestion from XML product feeds into immutable catalog records
// ABOUTME: Field text is stripped of markup and prices accept comma decimal separators

package catalog

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"catalog-suggest/core/domain"
	coreerrors "catalog-suggest/core/errors"
	"catalog-suggest/pkg/utils/html"
	"catalog-suggest/pkg/utils/parse"
)

// productElement is one <product> entry. Unknown child elements are ignored.
type productElement struct {
	Name     string `xml:"name"`
	Brand    string `xml:"brand"`
	Category string `xml:"category"`
	Price    string `xml:"price"`
	URL      string `xml:"url"`
	Store    string `xml:"store"`
}

func (p productElement) record() domain.CatalogRecord {
	return domain.CatalogRecord{
		Name:     html.StripHTML(p.Name),
		Brand:    html.StripHTML(p.Brand),
		Category: html.StripHTML(p.Category),
		Price:    parse.FloatOrZero(p.Price),
		URL:      html.CollapseSpace(p.URL),
		Store:    html.CollapseSpace(p.Store),
	}
}

// Parse reads every <product> element in document order. The root element
// name is not checked, so <catalog> and <products> roots both work.
func Parse(r io.Reader, source string) ([]domain.CatalogRecord, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var records []domain.CatalogRecord
	sawElement := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(dec, source, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawElement = true
		if start.Name.Local != "product" {
			continue
		}

		var p productElement
		if err := dec.DecodeElement(&p, &start); err != nil {
			return nil, parseError(dec, source, err)
		}
		records = append(records, p.record())
	}

	if !sawElement {
		return nil, &coreerrors.ParseError{Source: source, Err: errors.New("no XML elements found")}
	}
	return records, nil
}

// LoadFile parses the catalog at path.
func LoadFile(path string) ([]domain.CatalogRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}

func parseError(dec *xml.Decoder, source string, err error) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &coreerrors.ParseError{Source: source, Line: syntaxErr.Line, Err: errors.New(syntaxErr.Msg)}
	}
	line, _ := dec.InputPos()
	return &coreerrors.ParseError{Source: source, Line: line, Err: err}
}

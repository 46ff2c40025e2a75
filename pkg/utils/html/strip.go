// ABOUTME: HTML utilities for turning markup found in catalog fields into plain text
// ABOUTME: Parses with goquery so entities, scripts and nested tags are handled properly

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML returns the visible text of s with entities decoded and
// whitespace collapsed. Script and style contents are dropped.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return CollapseSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CollapseSpace(s)
	}
	doc.Find("script, style").Remove()

	// Block elements and line breaks separate words
	doc.Find("br, p, div, li, td, th, tr").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})

	return CollapseSpace(doc.Text())
}

// CollapseSpace trims s and replaces whitespace runs with one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

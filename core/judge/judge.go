// ABOUTME: Lexical-overlap relevance heuristic used to score evaluation runs
// ABOUTME: Produces known false positives (coincidental overlap) and false negatives (no shared text)

package judge

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"catalog-suggest/core/domain"
)

// IsRelevant reports whether a small batch of top results looks relevant to a
// query and its free-text notes. It is a proxy for human judgement, not ground
// truth: results with no lexical overlap are never relevant, and any shared
// fragment is enough.
func IsRelevant(query, notes string, topResults []string) bool {
	items := nonBlank(topResults)
	if len(items) == 0 {
		return false
	}

	terms := append(Tokenize(query), Tokenize(notes)...)
	if len(terms) == 0 {
		return false
	}

	return ContainsAnyToken(terms, items) || PartialOverlap(terms, items)
}

// ContainsAnyToken is the coarse check: some term occurs verbatim inside some
// lowercased result item.
func ContainsAnyToken(terms []string, items []string) bool {
	for _, item := range items {
		lowered := normalize(item)
		for _, term := range terms {
			if strings.Contains(lowered, term) {
				return true
			}
		}
	}
	return false
}

// PartialOverlap is the fine check: some result token and some term are
// substrings of one another, so "кар" matches "картофель" and the other way round.
func PartialOverlap(terms []string, items []string) bool {
	for _, item := range items {
		for _, word := range Tokenize(item) {
			for _, term := range terms {
				if strings.Contains(word, term) || strings.Contains(term, word) {
					return true
				}
			}
		}
	}
	return false
}

// Tokenize lowercases s and splits it into word tokens. Anything that is not a
// letter, digit, combining mark or underscore separates tokens; empty tokens are
// dropped.
func Tokenize(s string) []string {
	return strings.FieldsFunc(normalize(s), func(r rune) bool {
		return !isWordRune(r)
	})
}

// SplitTop splits a serialized top-N list written by the evaluation runner.
func SplitTop(serialized string) []string {
	if strings.TrimSpace(serialized) == "" {
		return nil
	}
	return strings.Split(serialized, domain.ResultDelimiter)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// normalize composes decomposed characters (й written as и plus a breve) so
// that the same word always compares equal.
func normalize(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

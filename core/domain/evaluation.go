// ABOUTME: Evaluation domain models for batch query runs and coverage reporting
// ABOUTME: One EvaluationRow is produced per QueryRow, in input order

package domain

// Query types used in the labelled query log.
const (
	QueryTypeOpen   = "open"
	QueryTypeHidden = "hidden"
)

// Judgement values written to the evaluation report.
const (
	JudgementRelevant    = "relevant"
	JudgementNotRelevant = "not_relevant"
)

// ResultDelimiter separates serialized top-N values in a report row.
const ResultDelimiter = "|"

// UnknownName stands in for a candidate without a name in the report.
const UnknownName = "unknown_name"

// QueryRow is one labelled query from the input log.
type QueryRow struct {
	Query string
	Site  string
	Type  string
	Notes string
}

// EvaluationRow is the outcome of running a single QueryRow.
type EvaluationRow struct {
	Query     string
	Site      string
	Type      string
	Notes     string
	Top3      string
	Top3Score string
	LatencyMS string
	Judgement string
}

// Coverage is the share of open queries whose results were judged relevant.
type Coverage struct {
	Total      int     `json:"total"`
	Relevant   int     `json:"relevant"`
	Percentage float64 `json:"percentage"`
}

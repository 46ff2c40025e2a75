// ABOUTME: CSV readers and writers for query logs and evaluation reports
// ABOUTME: Columns are located by header name so extra or reordered columns are tolerated

package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"catalog-suggest/core/domain"
	coreerrors "catalog-suggest/core/errors"
)

// Column names of the query log and the evaluation report.
const (
	ColQuery     = "query"
	ColSite      = "site"
	ColType      = "type"
	ColNotes     = "notes"
	ColTop3      = "top_3"
	ColTop3Score = "top_3_score"
	ColLatencyMS = "latency_ms"
	ColJudgement = "judgement"
)

// ResultHeader is the column order of a written evaluation report.
var ResultHeader = []string{ColQuery, ColSite, ColType, ColNotes, ColTop3, ColTop3Score, ColLatencyMS, ColJudgement}

// ReadQueries parses a query log with at least a query column.
func ReadQueries(r io.Reader, source string) ([]domain.QueryRow, error) {
	tbl, err := readTable(r, source, ColQuery)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.QueryRow, 0, len(tbl.records))
	for _, rec := range tbl.records {
		rows = append(rows, domain.QueryRow{
			Query: tbl.get(rec, ColQuery),
			Site:  tbl.get(rec, ColSite),
			Type:  tbl.get(rec, ColType),
			Notes: tbl.get(rec, ColNotes),
		})
	}
	return rows, nil
}

// ReadQueriesFile reads a query log from path.
func ReadQueriesFile(path string) ([]domain.QueryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open query log: %w", err)
	}
	defer f.Close()
	return ReadQueries(f, path)
}

// ReadResults parses an evaluation report. The query, type and top_3
// columns are required; the others default to empty.
func ReadResults(r io.Reader, source string) ([]domain.EvaluationRow, error) {
	tbl, err := readTable(r, source, ColQuery, ColType, ColTop3)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.EvaluationRow, 0, len(tbl.records))
	for _, rec := range tbl.records {
		rows = append(rows, domain.EvaluationRow{
			Query:     tbl.get(rec, ColQuery),
			Site:      tbl.get(rec, ColSite),
			Type:      tbl.get(rec, ColType),
			Notes:     tbl.get(rec, ColNotes),
			Top3:      tbl.get(rec, ColTop3),
			Top3Score: tbl.get(rec, ColTop3Score),
			LatencyMS: tbl.get(rec, ColLatencyMS),
			Judgement: tbl.get(rec, ColJudgement),
		})
	}
	return rows, nil
}

// ReadResultsFile reads an evaluation report from path.
func ReadResultsFile(path string) ([]domain.EvaluationRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()
	return ReadResults(f, path)
}

// WriteResults writes a header and one line per row, in slice order.
func WriteResults(w io.Writer, rows []domain.EvaluationRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Query, row.Site, row.Type, row.Notes,
			row.Top3, row.Top3Score, row.LatencyMS, row.Judgement,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResultsFile creates (or truncates) path and writes the report.
func WriteResultsFile(path string, rows []domain.EvaluationRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := WriteResults(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

type table struct {
	columns map[string]int
	records [][]string
}

func (t table) get(rec []string, col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func readTable(r io.Reader, source string, required ...string) (table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return table{}, &coreerrors.ParseError{Source: source, Err: errors.New("missing header")}
	}
	if err != nil {
		return table{}, parseError(source, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return table{}, &coreerrors.ParseError{Source: source, Line: 1, Err: fmt.Errorf("missing column %q", col)}
		}
	}

	var records [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table{}, parseError(source, err)
		}
		if isBlank(rec) {
			continue
		}
		records = append(records, rec)
	}
	return table{columns: columns, records: records}, nil
}

func parseError(source string, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &coreerrors.ParseError{Source: source, Line: csvErr.Line, Err: csvErr.Err}
	}
	return &coreerrors.ParseError{Source: source, Err: err}
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

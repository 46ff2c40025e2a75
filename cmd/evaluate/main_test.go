package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-suggest/core/domain"
)

const resultsCSV = "query,site,type,notes,top_3,top_3_score,latency_ms,judgement\n" +
	"молоко,s1,open,,Молоко 3.2%|Кефир,1.000|0.500,3.10,\n" +
	"чай,s1,open,,Кофе,0.700,2.00,\n" +
	"секрет,s1,hidden,,Секрет,0.900,1.00,\n"

func writeResults(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(resultsCSV), 0o644))
	return path
}

func TestCoverageCommand_Text(t *testing.T) {
	var out bytes.Buffer

	err := coverageCommand([]string{"-results", writeResults(t)}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Open queries: 2\nRelevant: 1\nCoverage: 50.00%\n", out.String())
}

func TestCoverageCommand_JSON(t *testing.T) {
	var out bytes.Buffer

	err := coverageCommand([]string{"-results", writeResults(t), "-json"}, &out)
	require.NoError(t, err)

	var c domain.Coverage
	require.NoError(t, json.Unmarshal(out.Bytes(), &c))
	assert.Equal(t, domain.Coverage{Total: 2, Relevant: 1, Percentage: 50}, c)
}

func TestCoverageCommand_MissingFile(t *testing.T) {
	err := coverageCommand([]string{"-results", filepath.Join(t.TempDir(), "nope.csv")}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestPrintCoverage_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printCoverage(&out, domain.Coverage{}, false))
	assert.Contains(t, out.String(), "Coverage: 0.00%")
}

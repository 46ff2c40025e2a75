package rewrite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-suggest/core/errors"
)

const sampleTable = `
[[correction]]
pattern = "xfq"
replacement = "чай"
kind = "typo"

[[correction]]
pattern = "ab"
replacement = "xy"

[[correction]]
pattern = "xy"
replacement = "zz"
`

func TestParseTable_KeepsFileOrder(t *testing.T) {
	tbl, err := ParseTable(sampleTable, "inline")
	require.NoError(t, err)

	entries := tbl.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "xfq", entries[0].Pattern)
	assert.Equal(t, "typo", string(entries[0].Kind))
	assert.Equal(t, "ab", entries[1].Pattern)
	assert.Equal(t, "xy", entries[2].Pattern)

	assert.Equal(t, "zz", tbl.Rewrite("AB"))
}

func TestParseTable_Malformed(t *testing.T) {
	_, err := ParseTable("[[correction]\npattern = ", "broken.toml")

	require.Error(t, err)
	assert.True(t, errors.IsParse(err))
}

func TestParseTable_Duplicate(t *testing.T) {
	_, err := ParseTable("[[correction]]\npattern = \"a\"\nreplacement = \"b\"\n[[correction]]\npattern = \"a\"\nreplacement = \"c\"\n", "dup.toml")

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestLoadTable_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrections.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o644))

	tbl, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.toml"))

	assert.Error(t, err)
}

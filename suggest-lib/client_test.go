package suggest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-suggest/core/domain"
)

const testCatalog = `<catalog>
  <product><name>Чай зелёный</name><brand>Greenfield</brand><category>Чай</category><price>199,00</price><store>s1</store></product>
  <product><name>Молоко 3.2%</name><brand>Простоквашино</brand><category>Молочные продукты</category><price>89,90</price><store>s1</store></product>
  <product><name>San Pellegrino 0.5</name><brand>San Pellegrino</brand><category>Вода</category><price>120</price><store>s2</store></product>
</catalog>`

func newLoadedClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	result, err := c.LoadXML(context.Background(), strings.NewReader(testCatalog))
	require.NoError(t, err)
	require.Equal(t, 3, result.Indexed)
	return c
}

func TestClient_Suggest(t *testing.T) {
	c := newLoadedClient(t)

	got, err := c.Suggest(context.Background(), "мол", 3)

	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "Молоко 3.2%", got[0].Name)
	assert.Equal(t, 89.9, got[0].Price)
}

func TestClient_SuggestAppliesCorrections(t *testing.T) {
	c := newLoadedClient(t)

	assert.Equal(t, "чай", c.Rewrite("XFQ"))

	got, err := c.Suggest(context.Background(), "xfq", 3)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "Чай зелёный", got[0].Name)
}

func TestClient_CustomCorrections(t *testing.T) {
	c := newLoadedClient(t, WithCorrections([]domain.CorrectionEntry{
		{Pattern: "пелегрино", Replacement: "pellegrino", Kind: domain.CorrectionTransliteration},
	}))

	assert.Equal(t, "san pellegrino", c.Rewrite("San пелегрино"))
	assert.Equal(t, "xfq", c.Rewrite("xfq"), "built-in table replaced")
}

func TestClient_CorrectionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrections.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[correction]]\npattern = \"vjkjrj\"\nreplacement = \"молоко\"\n"), 0o644))

	c := newLoadedClient(t, WithCorrectionsFile(path))

	assert.Equal(t, "молоко", c.Rewrite("vjkjrj"))
}

func TestClient_Evaluate(t *testing.T) {
	c := newLoadedClient(t, WithEvaluation(2, 0))

	rows, coverage, err := c.Evaluate(context.Background(), []domain.QueryRow{
		{Query: "мол", Site: "s1", Type: domain.QueryTypeOpen, Notes: "молоко"},
		{Query: "zzzz", Site: "s1", Type: domain.QueryTypeOpen},
		{Query: "чай", Site: "s1", Type: domain.QueryTypeHidden},
	})

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "мол", rows[0].Query)
	assert.Equal(t, domain.JudgementRelevant, rows[0].Judgement)
	assert.Equal(t, domain.JudgementNotRelevant, rows[1].Judgement)
	assert.Equal(t, domain.Coverage{Total: 2, Relevant: 1, Percentage: 50}, coverage)
}

func TestNewClient_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"nil engine", WithEngine(nil)},
		{"empty index", WithIndex("")},
		{"negative timeout", WithTimeout(-1)},
		{"zero workers", WithEvaluation(0, 0)},
		{"duplicate corrections", WithCorrections([]domain.CorrectionEntry{{Pattern: "a"}, {Pattern: "a"}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.opt)
			assert.True(t, IsType(err, ErrorTypeConfiguration), "got %v", err)
		})
	}
}

func TestClient_LoadXMLMalformed(t *testing.T) {
	c, err := NewClient()
	require.NoError(t, err)
	defer c.Close()

	_, err = c.LoadXML(context.Background(), strings.NewReader("<catalog><product>"))

	assert.True(t, IsType(err, ErrorTypeParsing), "got %v", err)
}

func TestClient_SuggestBeforeLoadIsEmpty(t *testing.T) {
	c, err := NewClient()
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Suggest(context.Background(), "мол", 3)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_Closed(t *testing.T) {
	c, err := NewClient()
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "close is idempotent")

	_, err = c.Suggest(context.Background(), "a", 1)
	assert.True(t, errors.Is(err, ErrClosed))

	_, err = c.Load(context.Background(), nil)
	assert.True(t, IsType(err, ErrorTypeClosed))
}

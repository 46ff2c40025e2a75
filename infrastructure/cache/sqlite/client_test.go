package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-suggest/core/interfaces"
)

var _ interfaces.Cache = (*Client)(nil)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClient_RoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "search:v1:i:3:чай", []byte(`[{"name":"Чай"}]`), time.Minute))

	got, err := client.Get(ctx, "search:v1:i:3:чай")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Чай"}]`, string(got))
}

func TestClient_Miss(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestClient_Expiry(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "short", []byte("v"), 20*time.Millisecond))
	require.NoError(t, client.Set(ctx, "forever", []byte("v"), 0))
	time.Sleep(40 * time.Millisecond)

	_, err := client.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = client.Get(ctx, "forever")
	assert.NoError(t, err)

	stats, err := client.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats["total_entries"])
	assert.Equal(t, 1, stats["expired_entries"])

	client.cleanup()
	stats, _ = client.Stats()
	assert.Equal(t, 1, stats["total_entries"])
}

func TestClient_Overwrite(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k", []byte("one"), time.Minute))
	require.NoError(t, client.Set(ctx, "k", []byte("two"), time.Minute))

	got, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestClient_DeleteAndClear(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, client.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, client.Delete(ctx, "a"))
	require.NoError(t, client.Delete(ctx, "never-set"))
	_, err := client.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, client.Clear(ctx))
	_, err = client.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestClient_Validation(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	assert.Error(t, client.Set(ctx, "", []byte("v"), time.Minute))
	assert.Error(t, client.Set(ctx, "k", nil, time.Minute))
	assert.Error(t, client.Set(ctx, strings.Repeat("k", maxKeyLength+1), []byte("v"), time.Minute))
	assert.Error(t, client.Set(ctx, "k", make([]byte, maxValueLength+1), time.Minute))

	_, err := client.Get(ctx, "")
	assert.Error(t, err)
	assert.Error(t, client.Delete(ctx, ""))
}

func TestClient_KeysAreParameterized(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	key := "x'; DROP TABLE search_cache; --"
	require.NoError(t, client.Set(ctx, key, []byte("v"), time.Minute))

	got, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestClient_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	first, err := NewSQLiteCache(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", []byte("v"), time.Hour))
	require.NoError(t, first.Close())

	second, err := NewSQLiteCache(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

package search

import (
	"context"
	"time"

	"catalog-suggest/core/domain"
)

// mockEngine is a mock implementation of the SearchEngine interface
type mockEngine struct {
	searchFunc func(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
	calls      []domain.SearchRequest
}

func (m *mockEngine) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.calls = append(m.calls, req)
	if m.searchFunc != nil {
		return m.searchFunc(ctx, req)
	}
	return &domain.SearchResponse{}, nil
}

// fixedEngine returns an engine that always answers with the named records, in order.
func fixedEngine(names ...string) *mockEngine {
	return &mockEngine{
		searchFunc: func(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
			hits := make([]domain.SearchHit, len(names))
			for i, n := range names {
				hits[i] = domain.SearchHit{
					Score:  float64(len(names) - i),
					Record: domain.CatalogRecord{Name: n, Brand: "brand-" + n},
				}
			}
			return &domain.SearchResponse{Hits: hits, Total: len(hits)}, nil
		},
	}
}

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	getFunc    func(ctx context.Context, key string) ([]byte, error)
	setFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	deleteFunc func(ctx context.Context, key string) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return nil
}

// mockLogger records messages by level
type mockLogger struct {
	errors []string
	debugs []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.debugs = append(m.debugs, msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.errors = append(m.errors, msg) }

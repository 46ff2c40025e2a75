package indexing

import (
	"context"
	"sync"

	"catalog-suggest/core/domain"
)

type mockAdmin struct {
	pingFunc    func(ctx context.Context) error
	createFunc  func(ctx context.Context, index string) error
	bulkFunc    func(ctx context.Context, index string, records []domain.CatalogRecord) (int, error)
	refreshFunc func(ctx context.Context, index string) error

	mu      sync.Mutex
	pings   int
	batches [][]domain.CatalogRecord
	calls   []string
}

func (m *mockAdmin) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockAdmin) Ping(ctx context.Context) error {
	m.mu.Lock()
	m.pings++
	m.mu.Unlock()
	m.record("ping")
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

func (m *mockAdmin) CreateIndex(ctx context.Context, index string) error {
	m.record("create:" + index)
	if m.createFunc != nil {
		return m.createFunc(ctx, index)
	}
	return nil
}

func (m *mockAdmin) BulkIndex(ctx context.Context, index string, records []domain.CatalogRecord) (int, error) {
	m.mu.Lock()
	m.batches = append(m.batches, records)
	m.mu.Unlock()
	m.record("bulk:" + index)
	if m.bulkFunc != nil {
		return m.bulkFunc(ctx, index, records)
	}
	return len(records), nil
}

func (m *mockAdmin) Refresh(ctx context.Context, index string) error {
	m.record("refresh:" + index)
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx, index)
	}
	return nil
}

type mockLogger struct{}

func (mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (mockLogger) Info(msg string, fields map[string]interface{})  {}
func (mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (mockLogger) Error(msg string, fields map[string]interface{}) {}

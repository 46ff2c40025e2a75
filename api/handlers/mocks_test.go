package handlers

import (
	"context"
	"strings"

	"catalog-suggest/core/domain"
)

type mockSuggestService struct {
	searchFunc func(ctx context.Context, normalized string, topK int) []domain.Candidate

	lastPrefix     string
	lastTopK       int
	normalizeCalls int
}

func (m *mockSuggestService) SearchNormalized(ctx context.Context, normalized string, topK int) []domain.Candidate {
	m.lastPrefix = normalized
	m.lastTopK = topK
	if m.searchFunc != nil {
		return m.searchFunc(ctx, normalized, topK)
	}
	return []domain.Candidate{}
}

func (m *mockSuggestService) Normalize(prefix string) string {
	m.normalizeCalls++
	return strings.ToLower(prefix)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

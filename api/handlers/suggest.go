// ABOUTME: Suggest handler serves autocomplete candidates for a typed prefix
// ABOUTME: The prefix is rewritten through the correction table before retrieval

package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"catalog-suggest/core/domain"
	"catalog-suggest/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// SuggestService is the retrieval client as seen by the API.
type SuggestService interface {
	Normalize(prefix string) string
	SearchNormalized(ctx context.Context, normalized string, topK int) []domain.Candidate
}

// SuggestHandler handles autocomplete requests
type SuggestHandler struct {
	service SuggestService
}

// NewSuggestHandler creates a new suggest handler
func NewSuggestHandler(service SuggestService) *SuggestHandler {
	return &SuggestHandler{service: service}
}

// RegisterRoutes registers suggest routes
func (h *SuggestHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "suggest",
		Method:      http.MethodGet,
		Path:        "/suggest",
		Summary:     "Autocomplete a prefix",
		Description: "Rewrites the prefix with the correction table and returns catalog candidates in engine score order",
		Tags:        []string{"Search"},
	}, h.Suggest)
}

// SuggestInput defines the query parameters for /suggest
type SuggestInput struct {
	Query string `query:"q" required:"true" maxLength:"200" doc:"Prefix typed by the user"`
	Limit int    `query:"limit" default:"3" minimum:"1" maximum:"50" doc:"Maximum number of candidates"`
}

// SuggestOutput defines the response for /suggest
type SuggestOutput struct {
	Body struct {
		Query      string             `json:"query" doc:"Prefix as received"`
		Normalized string             `json:"normalized" doc:"Prefix after lowercasing and corrections"`
		Results    []domain.Candidate `json:"results" doc:"Candidates in engine order; empty on no results or engine error"`
		Count      int                `json:"count"`
		TookMS     float64            `json:"took_ms"`
	}
}

// Suggest handles GET /suggest
func (h *SuggestHandler) Suggest(ctx context.Context, input *SuggestInput) (*SuggestOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, toHumaError(&errors.ValidationError{Field: "q", Message: "must not be blank"})
	}

	start := time.Now()
	normalized := h.service.Normalize(input.Query)
	results := h.service.SearchNormalized(ctx, normalized, input.Limit)
	took := time.Since(start)

	out := &SuggestOutput{}
	out.Body.Query = input.Query
	out.Body.Normalized = normalized
	out.Body.Results = results
	out.Body.Count = len(results)
	out.Body.TookMS = float64(took.Microseconds()) / 1000
	return out, nil
}

// ABOUTME: Rewrite handler exposes the query normalizer and its correction table
// ABOUTME: Useful for checking which corrections apply to a prefix without searching

package handlers

import (
	"context"
	"net/http"
	"strings"

	"catalog-suggest/core/domain"
	"catalog-suggest/core/rewrite"
	"github.com/danielgtaylor/huma/v2"
)

// RewriteHandler handles rewrite and correction listing requests
type RewriteHandler struct {
	rewriter *rewrite.Rewriter
}

// NewRewriteHandler creates a new rewrite handler
func NewRewriteHandler(rewriter *rewrite.Rewriter) *RewriteHandler {
	return &RewriteHandler{rewriter: rewriter}
}

// RegisterRoutes registers rewrite routes
func (h *RewriteHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "rewrite",
		Method:      http.MethodGet,
		Path:        "/rewrite",
		Summary:     "Normalize a query",
		Description: "Applies lowercasing and the ordered correction table to a query",
		Tags:        []string{"Search"},
	}, h.Rewrite)

	huma.Register(api, huma.Operation{
		OperationID: "listCorrections",
		Method:      http.MethodGet,
		Path:        "/corrections",
		Summary:     "List corrections",
		Description: "Returns the correction table in application order",
		Tags:        []string{"Search"},
	}, h.ListCorrections)
}

// RewriteInput defines the query parameters for /rewrite
type RewriteInput struct {
	Query string `query:"q" maxLength:"200" doc:"Query to normalize"`
}

// RewriteOutput defines the response for /rewrite
type RewriteOutput struct {
	Body struct {
		Query      string `json:"query"`
		Normalized string `json:"normalized"`
		Corrected  bool   `json:"corrected" doc:"True when a correction changed more than letter case"`
	}
}

// Rewrite handles GET /rewrite
func (h *RewriteHandler) Rewrite(ctx context.Context, input *RewriteInput) (*RewriteOutput, error) {
	out := &RewriteOutput{}
	out.Body.Query = input.Query
	out.Body.Normalized = h.rewriter.Rewrite(input.Query)
	out.Body.Corrected = out.Body.Normalized != strings.ToLower(input.Query)
	return out, nil
}

// CorrectionsOutput defines the response for /corrections
type CorrectionsOutput struct {
	Body struct {
		Corrections []domain.CorrectionEntry `json:"corrections"`
		Count       int                      `json:"count"`
	}
}

// ListCorrections handles GET /corrections
func (h *RewriteHandler) ListCorrections(ctx context.Context, input *struct{}) (*CorrectionsOutput, error) {
	entries := h.rewriter.Table().Entries()
	out := &CorrectionsOutput{}
	out.Body.Corrections = entries
	out.Body.Count = len(entries)
	return out, nil
}

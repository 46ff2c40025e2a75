// ABOUTME: Liveness and readiness endpoints
// ABOUTME: Readiness pings the search engine; liveness reports feature flags only

package handlers

import (
	"context"
	"net/http"

	"catalog-suggest/core/errors"
	"catalog-suggest/pkg/featureflags"
	"github.com/danielgtaylor/huma/v2"
)

// EnginePinger reports whether the search engine is reachable.
type EnginePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves health checks
type HealthHandler struct {
	engine     EnginePinger
	flags      featureflags.Manager
	engineName string
	index      string
}

// NewHealthHandler creates a new health handler. flags may be nil.
func NewHealthHandler(engine EnginePinger, flags featureflags.Manager, engineName, index string) *HealthHandler {
	if flags == nil {
		flags = featureflags.NewStaticManager(featureflags.Defaults)
	}
	return &HealthHandler{
		engine:     engine,
		flags:      flags,
		engineName: engineName,
		index:      index,
	}
}

// RegisterRoutes registers health routes
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Liveness check",
		Tags:        []string{"Health"},
	}, h.Health)

	huma.Register(api, huma.Operation{
		OperationID: "ready",
		Method:      http.MethodGet,
		Path:        "/ready",
		Summary:     "Readiness check",
		Description: "Pings the search engine",
		Tags:        []string{"Health"},
	}, h.Ready)
}

// HealthOutput defines the response for /health and /ready
type HealthOutput struct {
	Body struct {
		Status   string          `json:"status"`
		Engine   string          `json:"engine"`
		Index    string          `json:"index"`
		Features map[string]bool `json:"features,omitempty"`
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	out := h.output("ok")
	out.Body.Features = make(map[string]bool)
	for flag, enabled := range h.flags.GetAllFlags() {
		out.Body.Features[string(flag)] = enabled
	}
	return out, nil
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	if h.engine == nil {
		return nil, huma.Error503ServiceUnavailable("No search engine configured")
	}
	if err := h.engine.Ping(ctx); err != nil {
		if errors.IsExternalAPI(err) || errors.IsNotFound(err) {
			return nil, toHumaError(err)
		}
		return nil, huma.Error503ServiceUnavailable("Search engine unreachable", err)
	}
	return h.output("ready"), nil
}

func (h *HealthHandler) output(status string) *HealthOutput {
	out := &HealthOutput{}
	out.Body.Status = status
	out.Body.Engine = h.engineName
	out.Body.Index = h.index
	return out
}

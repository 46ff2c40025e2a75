// Package api provides the HTTP layer for catalog suggestions.
// It uses Huma on a chi router for OpenAPI generation and input validation.
//
// # Architecture
//
// - server.go: Huma API configuration and middleware chain
// - handlers/: suggest, rewrite, correction listing and health handlers
// - middleware/: request logging with request IDs and per-client rate limiting
//
// # Endpoints
//
//	GET /suggest?q=мол&limit=3   candidates for a prefix, engine order
//	GET /rewrite?q=санпелегрино  the normalized query
//	GET /corrections             the correction table in application order
//	GET /health                  liveness and feature flags
//	GET /ready                   engine ping
//
// The OpenAPI spec is served at /openapi.json and interactive docs at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	})
//	handlers.NewSuggestHandler(searchService).RegisterRoutes(humaAPI)
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// Errors use the RFC 7807 problem format produced by Huma. Core errors map to
// status codes in handlers.toHumaError. Retrieval failures are not errors: a
// suggest call that hits a broken engine answers 200 with no results.
package api

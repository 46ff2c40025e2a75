// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts core errors to Huma HTTP errors

package handlers

import (
	"context"
	stderrors "errors"

	"catalog-suggest/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts core errors to Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return huma.Error504GatewayTimeout("Search engine timed out")
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	var validationErr *errors.ValidationError
	if stderrors.As(err, &validationErr) {
		return huma.Error400BadRequest("Invalid request", &huma.ErrorDetail{
			Location: "query." + validationErr.Field,
			Message:  validationErr.Message,
		})
	}

	var apiErr *errors.ExternalAPIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable("Search engine error", err)
		case apiErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Search engine is throttling requests")
		case apiErr.StatusCode >= 400:
			return huma.Error502BadGateway("Search engine rejected the request", err)
		default:
			return huma.Error500InternalServerError("Unexpected search engine response", err)
		}
	}

	return huma.Error500InternalServerError("Internal server error", err)
}

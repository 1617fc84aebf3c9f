package openai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain"
)

// classifyAPIError translates a provider failure into a typed domain error.
// This is the only place that inspects provider status codes and message
// text; everything above works with the domain sentinels.
func classifyAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, string(reqErr.Body), err)
	}

	return fmt.Errorf("provider request failed: %w", err)
}

func classifyStatus(status int, message string, err error) error {
	lower := strings.ToLower(message)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden,
		strings.Contains(lower, "api key"):
		return fmt.Errorf("%w: %s", domain.ErrAPIKey, message)
	case status == http.StatusTooManyRequests,
		strings.Contains(lower, "quota"):
		return fmt.Errorf("%w: %s", domain.ErrQuotaExceeded, message)
	case status == http.StatusNotFound && strings.Contains(lower, "model"):
		return fmt.Errorf("%w: %s", domain.ErrModelNotFound, message)
	default:
		return fmt.Errorf("provider error %d: %s: %w", status, message, err)
	}
}

// isRetryable reports whether a classified error is worth retrying:
// rate limits and provider-side 5xx only. Validation-shaped failures
// (bad key, missing model) are permanent.
func isRetryable(err error) bool {
	if errors.Is(err, domain.ErrQuotaExceeded) {
		return true
	}
	if errors.Is(err, domain.ErrAPIKey) || errors.Is(err, domain.ErrModelNotFound) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= http.StatusInternalServerError
	}

	// Transport-level failures (connection reset, timeout) have no status.
	return true
}

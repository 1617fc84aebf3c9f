package domain

import "errors"

var (
	// ErrValidation signals bad or missing caller input. Always maps to 400.
	ErrValidation = errors.New("validation failed")
	// ErrGeneration signals a text-generation provider failure.
	ErrGeneration = errors.New("generation failed")
	// ErrStore signals a vector store failure.
	ErrStore = errors.New("store operation failed")
	// ErrRetrieval signals a failure in the search aggregation pipeline.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrAPIKey signals an invalid or unauthorized provider API key.
	ErrAPIKey = errors.New("invalid API key or unauthorized access")
	// ErrQuotaExceeded signals an exhausted provider quota or rate limit.
	ErrQuotaExceeded = errors.New("provider quota exceeded")
	// ErrModelNotFound signals that the requested model is unavailable.
	ErrModelNotFound = errors.New("model not found")
)

package newsapi

import (
	"errors"
	"fmt"
)

// Credential problems are configuration guidance for the operator, not
// conditions the service retries.
var (
	ErrMissingAPIKey = errors.New("NEWS_API_KEY is not configured; get a free key at https://newsapi.org")
	ErrInvalidAPIKey = errors.New("invalid NewsAPI key; check the key or get a new one at https://newsapi.org")
)

// UpstreamError is a non-2xx answer from the news API other than 401.
type UpstreamError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("news api returned %d: %s", e.StatusCode, e.Message)
}

// TransportError wraps connectivity failures (dial, timeout, body
// read). Retrying is left to explicit user action.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("news api unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

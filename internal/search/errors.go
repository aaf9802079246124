package search

import (
	"errors"
	"fmt"
)

// Validation failures of a search reply.
var (
	ErrRateLimitExceeded = errors.New("github rate limit exceeded")
	ErrEmptyResult       = errors.New("query returned 0 results")
)

// ProviderError is returned when the reply carries no result set,
// either because GitHub reported an error or because the reply is malformed.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return "github error: malformed response"
	}
	return fmt.Sprintf("github error: %s", e.Message)
}

// TransportError wraps a network or decode failure from the transport.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("github transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

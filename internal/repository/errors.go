package repository

import (
	"errors"
	"fmt"
)

var (
	ErrFetchTimeout        = errors.New("upstream fetch timed out")
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status code %d", e.Code)
}

// Retryable reports whether a retry could plausibly get a different answer.
func (e *StatusError) Retryable() bool {
	return e.Code == 429 || e.Code >= 500
}

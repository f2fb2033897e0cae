package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUpstreamFetch   = errors.New("upstream fetch failed")
)

// InvalidArgument wraps ErrInvalidArgument with a formatted detail message.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// UpstreamFetch wraps ErrUpstreamFetch, keeping cause reachable via errors.Is/As.
func UpstreamFetch(source string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstreamFetch, source, cause)
}

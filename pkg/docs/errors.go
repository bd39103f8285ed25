package docs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/pkgdex/pkgdex/pkg/errors"
)

// SourceError records the failure of one fetch strategy. Source errors are
// accumulated by the chain, never surfaced on their own.
type SourceError struct {
	Source string     // fetcher name, e.g. "godoc-tool" or "npm-registry"
	Kind   SourceKind // the strategy's source kind
	Err    error      // what went wrong
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error { return e.Err }

// Timeout reports whether this strategy failed by exceeding its per-source
// timeout.
func (e *SourceError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// ExhaustedError is returned when every configured fetch strategy for an
// ecosystem failed. It retains each per-source failure so callers can see
// which sources were tried and why each failed.
type ExhaustedError struct {
	Key      Key
	Attempts []*SourceError
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("%s: no fetch strategies configured", e.Key)
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.Error()
	}
	return fmt.Sprintf("%s: all sources exhausted: %s", e.Key, strings.Join(parts, "; "))
}

// DeadlineError is returned when a resolution call exceeded its overall
// deadline while sources were still being tried. The underlying fetch keeps
// running for the benefit of other or future waiters.
type DeadlineError struct {
	Key Key
}

// Error implements the error interface.
func (e *DeadlineError) Error() string {
	return fmt.Sprintf("%s: resolution deadline exceeded", e.Key)
}

// AsAppError normalizes any engine failure into the application error
// taxonomy for the CLI, MCP, and HTTP surfaces. Structured errors pass
// through unchanged; everything else becomes INTERNAL_ERROR.
func AsAppError(err error) *apperrors.Error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var exhausted *ExhaustedError
	if errors.As(err, &exhausted) {
		return apperrors.Wrap(apperrors.ErrCodeSourcesExhausted, err,
			"no documentation found for %s (%d sources tried)",
			exhausted.Key, len(exhausted.Attempts))
	}

	var deadline *DeadlineError
	if errors.As(err, &deadline) {
		return apperrors.Wrap(apperrors.ErrCodeDeadlineExceeded, err,
			"documentation lookup for %s timed out", deadline.Key)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrCodeDeadlineExceeded, err, "documentation lookup timed out")
	}

	return apperrors.Wrap(apperrors.ErrCodeInternal, err, "documentation lookup failed")
}

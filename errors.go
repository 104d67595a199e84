package ctxzip

import (
	"errors"
	"fmt"
)

// Sentinel errors for compaction operations.
var (
	// ErrInvalidOptions indicates invalid compaction options.
	ErrInvalidOptions = errors.New("invalid compaction options")

	// ErrStorageWrite indicates persisting a tool output failed. A write
	// failure is fatal for the whole compaction call.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrHookFailed indicates a registered compaction hook returned an error.
	ErrHookFailed = errors.New("compaction hook failed")
)

// CompactError provides structured error context for compaction operations.
type CompactError struct {
	// Op is the operation that failed (e.g., "Compact", "Write").
	Op string

	// Err is the underlying error.
	Err error

	// Context holds additional key-value pairs for debugging.
	Context map[string]any
}

// Error returns a formatted error message.
func (e *CompactError) Error() string {
	msg := fmt.Sprintf("compaction %s failed", e.Op)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *CompactError) Unwrap() error {
	return e.Err
}

// WithContext adds a key-value pair to the error context and returns the
// error for chaining.
func (e *CompactError) WithContext(key string, value any) *CompactError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// NewCompactError creates a new CompactError with the given operation and
// underlying error.
func NewCompactError(op string, err error) *CompactError {
	return &CompactError{Op: op, Err: err}
}

// WrapError wraps an error with operation context. If err is nil, returns nil.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewCompactError(op, err)
}

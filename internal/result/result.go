// Package result provides the uniform return value for business-rule
// operations. A Result either succeeds with a payload or fails with one or
// more human-readable messages; it never carries both. Infrastructure
// failures (storage, network) use plain error values instead.
package result

import "fmt"

// Result is the outcome of a single business-rule operation. A Result is
// created fresh per call and must not be mutated after return.
type Result[T any] struct {
	Payload  T        `json:"payload"`
	Messages []string `json:"messages,omitempty"`
}

// Ok returns a successful result carrying payload.
func Ok[T any](payload T) Result[T] {
	return Result[T]{Payload: payload}
}

// Failf returns a failed result with a formatted message.
func Failf[T any](format string, args ...any) Result[T] {
	return Result[T]{Messages: []string{fmt.Sprintf(format, args...)}}
}

// FailMessages returns a failed result carrying messages from another
// operation, e.g. when forwarding an inner failure under a different payload
// type. The slice is copied.
func FailMessages[T any](messages []string) Result[T] {
	copied := make([]string, len(messages))
	copy(copied, messages)
	return Result[T]{Messages: copied}
}

// Successful reports whether the operation succeeded. A result with no
// messages is successful.
func (r Result[T]) Successful() bool {
	return len(r.Messages) == 0
}

// Message returns the first failure message, or "" for a successful result.
func (r Result[T]) Message() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0]
}

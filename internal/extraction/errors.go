// Package extraction turns a company's captured posting text and OCR
// text into structured job descriptions via a one-shot LLM call.
package extraction

import (
	"fmt"
	"strings"
)

// UnparsableError indicates the model's output was not valid JSON. Raw
// carries the original string so callers can log or surface it.
type UnparsableError struct {
	Raw   string
	Cause error
}

func (e *UnparsableError) Error() string {
	return fmt.Sprintf("extraction output is not valid JSON: %v", e.Cause)
}

func (e *UnparsableError) Unwrap() error {
	return e.Cause
}

// SchemaError indicates the model returned valid JSON that does not match
// the expected job-description shape.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("extraction output violates schema: %s", strings.Join(e.Violations, "; "))
}

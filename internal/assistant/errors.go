// Package assistant implements the session-scoped coaching conversation:
// the assistant identity lifecycle, the session-to-thread registry, prompt
// assembly, and the turn execution engine.
package assistant

import (
	"fmt"
	"time"

	"github.com/minjae/job-coach/internal/llm"
)

// RunNotCompletedError indicates a run reached a terminal state other
// than completed.
type RunNotCompletedError struct {
	RunID string
	State llm.RunState
}

func (e *RunNotCompletedError) Error() string {
	return fmt.Sprintf("run %s ended in state %q", e.RunID, e.State)
}

// MissingReplyError indicates a completed run produced no usable text.
type MissingReplyError struct {
	RunID string
}

func (e *MissingReplyError) Error() string {
	return fmt.Sprintf("run %s completed without a text reply", e.RunID)
}

// PollTimeoutError indicates a run did not reach a terminal state within
// the poll budget.
type PollTimeoutError struct {
	RunID  string
	Budget time.Duration
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("run %s did not finish within %s", e.RunID, e.Budget)
}

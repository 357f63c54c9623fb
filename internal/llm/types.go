package llm

// RunState is the externally observed lifecycle state of an assistant run.
type RunState string

// Run states as reported by the provider.
const (
	RunStateQueued     RunState = "queued"
	RunStateInProgress RunState = "in_progress"
	RunStateCompleted  RunState = "completed"
	RunStateFailed     RunState = "failed"
	RunStateCancelled  RunState = "cancelled"
	RunStateExpired    RunState = "expired"
)

// Terminal reports whether the run has finished, successfully or not.
func (s RunState) Terminal() bool {
	switch s {
	case RunStateCompleted, RunStateFailed, RunStateCancelled, RunStateExpired:
		return true
	}
	return false
}

// Annotation is one citation span inside a reply. Text is the literal
// marker the model embedded in the reply body; FileID is set when the
// annotation references a supporting file.
type Annotation struct {
	Text   string
	FileID string
}

// Reply is one assistant message produced by a run, reduced to its first
// text content block and the annotations attached to it.
type Reply struct {
	Text        string
	Annotations []Annotation
}

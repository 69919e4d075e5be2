package entity

type StepKind string

const (
	// StepThought carries model text streamed while the agent reasons.
	StepThought StepKind = "thought"
	// StepAction is emitted right before a tool is invoked.
	StepAction StepKind = "action"
	// StepObservation carries a tool's result.
	StepObservation StepKind = "observation"
	// StepError carries a tool failure; the agent may still recover.
	StepError StepKind = "error"
)

// Step is one entry of the trace an agent emits while it runs.
type Step struct {
	Kind  StepKind `json:"kind"`
	Tool  string   `json:"tool,omitempty"`
	Input string   `json:"input,omitempty"`
	Text  string   `json:"text,omitempty"`
}

// StepSink receives trace steps. It may be called from several goroutines at once.
type StepSink func(Step)

// Emit forwards step to the sink. A nil sink discards it.
func (f StepSink) Emit(step Step) {
	if f != nil {
		f(step)
	}
}

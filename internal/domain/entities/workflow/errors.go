package workflow

import "fmt"

// ValidationError reports action configuration input that blocks submission.
// It is recoverable in place; the workflow stays in its current phase.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// TransitionError reports an operation applied in a phase that does not
// accept it, including a second action pick while a prior pick is in flight.
type TransitionError struct {
	Phase Phase
	Op    string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("operation %s not allowed in phase %s", e.Op, e.Phase)
}

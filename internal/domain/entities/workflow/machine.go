// Package workflow provides the bulk-action state machine that sequences an
// operator interaction from action pick through configuration, confirmation
// gates, and submission. The machine itself is pure; all I/O (snapshot reads,
// batch dispatch, broadcasting) lives in the application layer.
package workflow

import (
	"fmt"
	"strings"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/action"
)

// Phase enumerates the workflow states for one dialog interaction.
type Phase string

const (
	PhaseSelecting   Phase = "selecting"
	PhaseConfiguring Phase = "configuring"
	PhaseConfirming  Phase = "confirming"
	PhaseSubmitting  Phase = "submitting"
	PhaseSucceeded   Phase = "succeeded"
	PhaseFailed      Phase = "failed"
)

// Gate identifies an extra confirmation step required before submission.
type Gate string

const (
	// GateLargeSelection triggers when the selection exceeds the configured
	// large-batch threshold.
	GateLargeSelection Gate = "large_selection"
	// GatePageScope triggers when the page-visible target ids are a strict
	// subset of the full selection, so the action applies to fewer items
	// than the operator selected.
	GatePageScope Gate = "page_scope"
)

// ItemError is a per-item failure reported by the batch executor.
type ItemError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Outcome is the terminal result of a dispatched batch command.
type Outcome struct {
	Processed int         `json:"processed"`
	Skipped   int         `json:"skipped"`
	Errors    []ItemError `json:"errors,omitempty"`
}

// Message renders the operator-facing outcome summary, e.g.
// "8 updated, 2 skipped" or "5 updated, 1 failed".
func (o *Outcome) Message() string {
	parts := []string{fmt.Sprintf("%d updated", o.Processed)}
	if o.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", o.Skipped))
	}
	if len(o.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", len(o.Errors)))
	}
	return strings.Join(parts, ", ")
}

// Machine holds the state of one bulk-action interaction. It is owned by a
// single operator session and is not safe for concurrent use; each session
// drives one workflow request at a time.
type Machine struct {
	InstanceID string `json:"instanceId"`
	Phase      Phase  `json:"phase"`

	Action action.ID `json:"action,omitempty"`
	Reason string    `json:"reason,omitempty"`

	// SelectionSize is the full selection cardinality at advance time;
	// TargetIDs is the page-scoped subset that would actually be submitted.
	SelectionSize int      `json:"selectionSize,omitempty"`
	TargetIDs     []string `json:"targetIds,omitempty"`

	PendingGates []Gate   `json:"pendingGates,omitempty"`
	Outcome      *Outcome `json:"outcome,omitempty"`
	Failure      string   `json:"failure,omitempty"`
}

// NewMachine creates a machine in the initial Selecting phase.
func NewMachine(instanceID string) *Machine {
	return &Machine{InstanceID: instanceID, Phase: PhaseSelecting}
}

// Pick records the operator's action choice and moves to Configuring. A new
// pick is not accepted while a prior pick is still in flight, and metadata
// actions never enter the machine; the caller delegates those to the
// metadata editor before calling Pick.
func (m *Machine) Pick(id action.ID) error {
	if m.Phase != PhaseSelecting {
		return &TransitionError{Phase: m.Phase, Op: "pick"}
	}
	if !id.Valid() {
		return fmt.Errorf("unknown action %q", id)
	}
	if id.IsMetadata() {
		return fmt.Errorf("metadata action %s bypasses the bulk workflow", id)
	}
	m.Action = id
	m.Phase = PhaseConfiguring
	return nil
}

// SetReason records the rejection reason collected during configuration.
func (m *Machine) SetReason(reason string) error {
	if m.Phase != PhaseConfiguring {
		return &TransitionError{Phase: m.Phase, Op: "set_reason"}
	}
	m.Reason = reason
	return nil
}

// Back returns from Configuring to Selecting and discards configuration
// input.
func (m *Machine) Back() error {
	if m.Phase != PhaseConfiguring {
		return &TransitionError{Phase: m.Phase, Op: "back"}
	}
	m.reset()
	return nil
}

// Advance validates configuration, fixes the page-scoped target set, and
// computes which confirmation gates apply. With gates pending the machine
// moves to Confirming; otherwise directly to Submitting. Advance is also the
// retry entry point from Failed, recomputing targets and gates fresh.
func (m *Machine) Advance(selectionSize int, targetIDs []string, largeThreshold int) error {
	if m.Phase != PhaseConfiguring && m.Phase != PhaseFailed {
		return &TransitionError{Phase: m.Phase, Op: "advance"}
	}
	if m.Action == action.Reject && strings.TrimSpace(m.Reason) == "" {
		return &ValidationError{Field: "reason", Message: "a rejection reason is required"}
	}
	if len(targetIDs) == 0 {
		return &ValidationError{Field: "targetIds", Message: "no selected items are visible on this page"}
	}

	m.SelectionSize = selectionSize
	m.TargetIDs = targetIDs
	m.Failure = ""

	// Gate order is fixed: large-selection first, page-scope second.
	m.PendingGates = nil
	if selectionSize > largeThreshold {
		m.PendingGates = append(m.PendingGates, GateLargeSelection)
	}
	if len(targetIDs) < selectionSize {
		m.PendingGates = append(m.PendingGates, GatePageScope)
	}

	if len(m.PendingGates) > 0 {
		m.Phase = PhaseConfirming
	} else {
		m.Phase = PhaseSubmitting
	}
	return nil
}

// CurrentGate returns the gate awaiting resolution, if any.
func (m *Machine) CurrentGate() (Gate, bool) {
	if m.Phase != PhaseConfirming || len(m.PendingGates) == 0 {
		return "", false
	}
	return m.PendingGates[0], true
}

// ResolveGate accepts or declines the current confirmation gate. Declining
// any gate returns to Selecting and discards the pending target list.
// Accepting the final gate moves to Submitting.
func (m *Machine) ResolveGate(accept bool) error {
	if m.Phase != PhaseConfirming {
		return &TransitionError{Phase: m.Phase, Op: "resolve_gate"}
	}
	if !accept {
		m.reset()
		return nil
	}
	m.PendingGates = m.PendingGates[1:]
	if len(m.PendingGates) == 0 {
		m.Phase = PhaseSubmitting
	}
	return nil
}

// Complete records the batch outcome and terminates in Succeeded.
func (m *Machine) Complete(outcome *Outcome) error {
	if m.Phase != PhaseSubmitting {
		return &TransitionError{Phase: m.Phase, Op: "complete"}
	}
	m.Outcome = outcome
	m.Phase = PhaseSucceeded
	return nil
}

// Fail records a transport failure and moves to Failed. The selection is
// preserved by the caller so the operator can retry.
func (m *Machine) Fail(message string) error {
	if m.Phase != PhaseSubmitting {
		return &TransitionError{Phase: m.Phase, Op: "fail"}
	}
	m.Failure = message
	m.Phase = PhaseFailed
	return nil
}

// Cancel discards all pending state and returns to Selecting. Cancellation
// is refused while a submission is in flight; the dispatched request must
// resolve first.
func (m *Machine) Cancel() error {
	if m.Phase == PhaseSubmitting {
		return &TransitionError{Phase: m.Phase, Op: "cancel"}
	}
	m.reset()
	return nil
}

func (m *Machine) reset() {
	m.Phase = PhaseSelecting
	m.Action = ""
	m.Reason = ""
	m.SelectionSize = 0
	m.TargetIDs = nil
	m.PendingGates = nil
	m.Outcome = nil
	m.Failure = ""
}

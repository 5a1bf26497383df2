package workflow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/action"
)

const largeThreshold = 100

func configuredMachine(t *testing.T, id action.ID) *Machine {
	t.Helper()
	m := NewMachine("wf-test")
	if err := m.Pick(id); err != nil {
		t.Fatalf("pick failed: %v", err)
	}
	return m
}

func idRange(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%03d", i)
	}
	return ids
}

func TestPickMovesToConfiguring(t *testing.T) {
	m := NewMachine("wf-1")
	if err := m.Pick(action.Publish); err != nil {
		t.Fatalf("pick failed: %v", err)
	}
	if m.Phase != PhaseConfiguring {
		t.Errorf("phase = %s, want %s", m.Phase, PhaseConfiguring)
	}

	// A second pick while one is in flight is refused.
	err := m.Pick(action.Archive)
	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Errorf("expected TransitionError for double pick, got %v", err)
	}
}

func TestPickRejectsMetadataAndUnknownActions(t *testing.T) {
	m := NewMachine("wf-1")
	if err := m.Pick(action.MetadataAdd); err == nil {
		t.Error("expected metadata pick to be refused")
	}
	if err := m.Pick(action.ID("explode")); err == nil {
		t.Error("expected unknown action pick to be refused")
	}
	if m.Phase != PhaseSelecting {
		t.Errorf("refused picks must not change phase, got %s", m.Phase)
	}
}

func TestAdvanceWithoutGatesGoesStraightToSubmitting(t *testing.T) {
	m := configuredMachine(t, action.Publish)

	// Full selection visible on page and under the threshold: no gates.
	if err := m.Advance(3, []string{"a", "b", "c"}, largeThreshold); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if m.Phase != PhaseSubmitting {
		t.Errorf("phase = %s, want %s", m.Phase, PhaseSubmitting)
	}
	if len(m.PendingGates) != 0 {
		t.Errorf("pending gates = %v, want none", m.PendingGates)
	}
}

func TestAdvanceChainsGatesInFixedOrder(t *testing.T) {
	m := configuredMachine(t, action.Archive)

	// 150 selected, 40 visible on page: large-selection first, then
	// page-scope.
	if err := m.Advance(150, idRange(40), largeThreshold); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if m.Phase != PhaseConfirming {
		t.Fatalf("phase = %s, want %s", m.Phase, PhaseConfirming)
	}

	gate, ok := m.CurrentGate()
	if !ok || gate != GateLargeSelection {
		t.Fatalf("first gate = %s, want %s", gate, GateLargeSelection)
	}
	if err := m.ResolveGate(true); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	gate, ok = m.CurrentGate()
	if !ok || gate != GatePageScope {
		t.Fatalf("second gate = %s, want %s", gate, GatePageScope)
	}
	if err := m.ResolveGate(true); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if m.Phase != PhaseSubmitting {
		t.Errorf("phase after final gate = %s, want %s", m.Phase, PhaseSubmitting)
	}
}

func TestDecliningAnyGateResetsToSelecting(t *testing.T) {
	m := configuredMachine(t, action.SoftDelete)
	if err := m.Advance(150, idRange(40), largeThreshold); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	if err := m.ResolveGate(false); err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if m.Phase != PhaseSelecting {
		t.Errorf("phase after decline = %s, want %s", m.Phase, PhaseSelecting)
	}
	if m.Action != "" || len(m.TargetIDs) != 0 || len(m.PendingGates) != 0 {
		t.Error("decline must discard the pending action and targets")
	}
}

func TestAdvanceGateThresholdBoundary(t *testing.T) {
	// Exactly at the threshold no large-selection gate fires.
	m := configuredMachine(t, action.Publish)
	if err := m.Advance(largeThreshold, idRange(largeThreshold), largeThreshold); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if m.Phase != PhaseSubmitting {
		t.Errorf("selection at threshold should not gate, phase = %s", m.Phase)
	}

	// One over the threshold it fires.
	m = configuredMachine(t, action.Publish)
	if err := m.Advance(largeThreshold+1, idRange(largeThreshold+1), largeThreshold); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	gate, ok := m.CurrentGate()
	if !ok || gate != GateLargeSelection {
		t.Errorf("gate = %s ok=%v, want %s", gate, ok, GateLargeSelection)
	}
}

func TestAdvanceRejectRequiresReason(t *testing.T) {
	m := configuredMachine(t, action.Reject)

	err := m.Advance(2, []string{"a", "b"}, largeThreshold)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "reason" {
		t.Errorf("validation field = %s, want reason", validationErr.Field)
	}
	if m.Phase != PhaseConfiguring {
		t.Errorf("validation failure must not change phase, got %s", m.Phase)
	}

	if err := m.SetReason("  "); err != nil {
		t.Fatalf("set reason failed: %v", err)
	}
	if err := m.Advance(2, []string{"a", "b"}, largeThreshold); !errors.As(err, &validationErr) {
		t.Errorf("whitespace-only reason should fail validation, got %v", err)
	}

	if err := m.SetReason("copyright violation"); err != nil {
		t.Fatalf("set reason failed: %v", err)
	}
	if err := m.Advance(2, []string{"a", "b"}, largeThreshold); err != nil {
		t.Errorf("advance with reason failed: %v", err)
	}
}

func TestAdvanceRequiresVisibleTargets(t *testing.T) {
	m := configuredMachine(t, action.Publish)

	err := m.Advance(5, nil, largeThreshold)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for empty targets, got %v", err)
	}
	if validationErr.Field != "targetIds" {
		t.Errorf("validation field = %s, want targetIds", validationErr.Field)
	}
}

func TestCompleteRecordsOutcome(t *testing.T) {
	m := configuredMachine(t, action.Publish)
	if err := m.Advance(10, idRange(10), largeThreshold); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	outcome := &Outcome{Processed: 8, Skipped: 2}
	if err := m.Complete(outcome); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if m.Phase != PhaseSucceeded {
		t.Errorf("phase = %s, want %s", m.Phase, PhaseSucceeded)
	}
	if got := m.Outcome.Message(); got != "8 updated, 2 skipped" {
		t.Errorf("outcome message = %q, want %q", got, "8 updated, 2 skipped")
	}
}

func TestOutcomeMessageVariants(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Outcome{Processed: 5}, "5 updated"},
		{Outcome{Processed: 8, Skipped: 2}, "8 updated, 2 skipped"},
		{Outcome{Processed: 5, Errors: []ItemError{{ID: "a", Message: "gone"}}}, "5 updated, 1 failed"},
		{Outcome{Processed: 0, Skipped: 3, Errors: []ItemError{{ID: "a"}, {ID: "b"}}}, "0 updated, 3 skipped, 2 failed"},
	}
	for _, tt := range tests {
		if got := tt.outcome.Message(); got != tt.want {
			t.Errorf("Message() = %q, want %q", got, tt.want)
		}
	}
}

func TestFailPreservesStateForRetry(t *testing.T) {
	m := configuredMachine(t, action.Unpublish)
	if err := m.Advance(3, []string{"a", "b", "c"}, largeThreshold); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if err := m.Fail("database unavailable"); err != nil {
		t.Fatalf("fail failed: %v", err)
	}
	if m.Phase != PhaseFailed {
		t.Fatalf("phase = %s, want %s", m.Phase, PhaseFailed)
	}
	if m.Failure != "database unavailable" {
		t.Errorf("failure = %q", m.Failure)
	}

	// Retry re-enters through Advance with fresh targets and clears the
	// failure message.
	if err := m.Advance(3, []string{"a", "b", "c"}, largeThreshold); err != nil {
		t.Fatalf("retry advance failed: %v", err)
	}
	if m.Phase != PhaseSubmitting {
		t.Errorf("retry phase = %s, want %s", m.Phase, PhaseSubmitting)
	}
	if m.Failure != "" {
		t.Errorf("failure not cleared on retry: %q", m.Failure)
	}
}

func TestCancelRefusedWhileSubmitting(t *testing.T) {
	m := configuredMachine(t, action.Publish)
	if err := m.Advance(2, []string{"a", "b"}, largeThreshold); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	err := m.Cancel()
	var transitionErr *TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected TransitionError for cancel while submitting, got %v", err)
	}
	if m.Phase != PhaseSubmitting {
		t.Errorf("refused cancel must not change phase, got %s", m.Phase)
	}
}

func TestCancelResetsFromAnyOtherPhase(t *testing.T) {
	m := configuredMachine(t, action.Archive)
	if err := m.Advance(150, idRange(40), largeThreshold); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if err := m.Cancel(); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if m.Phase != PhaseSelecting || m.Action != "" {
		t.Errorf("cancel must reset the machine, phase=%s action=%s", m.Phase, m.Action)
	}
}

func TestBackDiscardsConfiguration(t *testing.T) {
	m := configuredMachine(t, action.Reject)
	if err := m.SetReason("duplicate upload"); err != nil {
		t.Fatalf("set reason failed: %v", err)
	}
	if err := m.Back(); err != nil {
		t.Fatalf("back failed: %v", err)
	}
	if m.Phase != PhaseSelecting || m.Action != "" || m.Reason != "" {
		t.Errorf("back must discard configuration, phase=%s action=%s reason=%q", m.Phase, m.Action, m.Reason)
	}

	if err := m.Back(); err == nil {
		t.Error("back from selecting should be refused")
	}
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/action"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/entities/workflow"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/repositories"
	"github.com/AssetGridHQ/assetgrid-go/internal/domain/user"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/email"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/messaging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/performance"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/security"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/tenant"
	"github.com/AssetGridHQ/assetgrid-go/pkg/config"
)

// WorkflowService orchestrates the bulk-action state machine for each
// operator session: eligibility re-validation, confirmation gates, page-scoped
// dispatch, outcome broadcasting, and selection clearing. The machine itself
// is pure; all I/O happens here.
type WorkflowService struct {
	summaryService     *SummaryService
	eligibilityService *EligibilityService
	selectionService   *SelectionService
	snapshotService    *SnapshotService
	broadcaster        messaging.OutcomeBroadcaster
	emailService       email.Service
	logger             *logging.ChanneledLogger
	perfTracker        *performance.Tracker
}

// NewWorkflowService creates a new workflow service. emailService may be nil
// when batch failure alerts are disabled.
func NewWorkflowService(
	summaryService *SummaryService,
	eligibilityService *EligibilityService,
	selectionService *SelectionService,
	snapshotService *SnapshotService,
	broadcaster messaging.OutcomeBroadcaster,
	emailService email.Service,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *WorkflowService {
	return &WorkflowService{
		summaryService:     summaryService,
		eligibilityService: eligibilityService,
		selectionService:   selectionService,
		snapshotService:    snapshotService,
		broadcaster:        broadcaster,
		emailService:       emailService,
		logger:             logger,
		perfTracker:        perfTracker,
	}
}

// Get returns the session's live machine, creating one in Selecting if none
// exists.
func (s *WorkflowService) Get(tenantCtx *tenant.Context, sessionID string) *workflow.Machine {
	cache := tenantCtx.GetCacheManager()
	if m, found := cache.GetMachine(tenantCtx.TenantID, sessionID); found {
		return m
	}
	m := workflow.NewMachine(security.GenerateULID())
	cache.SetMachine(tenantCtx.TenantID, sessionID, m)
	return m
}

// Pick records the operator's action choice. Metadata actions are rejected
// here; they go through ApplyMetadata instead.
func (s *WorkflowService) Pick(tenantCtx *tenant.Context, sessionID string, id action.ID) (*workflow.Machine, error) {
	m := s.Get(tenantCtx, sessionID)
	if err := m.Pick(id); err != nil {
		return nil, err
	}
	tenantCtx.GetCacheManager().SetMachine(tenantCtx.TenantID, sessionID, m)

	s.logger.WithTenantAndSession(logging.ChannelWorkflow, tenantCtx.TenantID, sessionID).
		Info("Action picked", "workflowId", m.InstanceID, "action", string(id))
	return m, nil
}

// SetReason stores the rejection reason collected in the configure step.
func (s *WorkflowService) SetReason(tenantCtx *tenant.Context, sessionID, reason string) (*workflow.Machine, error) {
	m := s.Get(tenantCtx, sessionID)
	if err := m.SetReason(reason); err != nil {
		return nil, err
	}
	tenantCtx.GetCacheManager().SetMachine(tenantCtx.TenantID, sessionID, m)
	return m, nil
}

// Back returns from Configuring to Selecting, discarding configuration input.
func (s *WorkflowService) Back(tenantCtx *tenant.Context, sessionID string) (*workflow.Machine, error) {
	m := s.Get(tenantCtx, sessionID)
	if err := m.Back(); err != nil {
		return nil, err
	}
	tenantCtx.GetCacheManager().SetMachine(tenantCtx.TenantID, sessionID, m)
	return m, nil
}

// Cancel discards the interaction unless a submission is in flight.
func (s *WorkflowService) Cancel(tenantCtx *tenant.Context, sessionID string) (*workflow.Machine, error) {
	m := s.Get(tenantCtx, sessionID)
	if err := m.Cancel(); err != nil {
		return nil, err
	}
	tenantCtx.GetCacheManager().SetMachine(tenantCtx.TenantID, sessionID, m)
	return m, nil
}

// Advance validates configuration against the current lifecycle state and
// moves toward submission. The target set is always the intersection of the
// selection and the ids visible on the current page; stale off-page ids are
// never submitted. Browsing fails open on missing snapshots, but dispatch
// fails closed: without a concrete summary the advance is refused.
func (s *WorkflowService) Advance(ctx context.Context, tenantCtx *tenant.Context, sessionID string, pageIDs []string, mode Mode) (*workflow.Machine, error) {
	m := s.Get(tenantCtx, sessionID)

	onPage := s.selectionService.OnPage(tenantCtx, sessionID, pageIDs)
	targetIDs := make([]string, 0, len(onPage))
	for _, item := range onPage {
		targetIDs = append(targetIDs, item.ID)
	}

	if m.Action != "" && len(targetIDs) > 0 {
		snapshots, err := s.snapshotService.GetByIDs(ctx, tenantCtx, targetIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to re-validate lifecycle state: %w", err)
		}
		summary := s.summaryService.Summarize(s.selectionService.IDs(tenantCtx, sessionID), snapshots)
		if summary == nil {
			return nil, &workflow.ValidationError{Field: "targetIds", Message: "lifecycle state of the selected items is unknown"}
		}
		eligible := s.eligibilityService.Eligible(summary, mode)
		if !eligible[m.Action] {
			return nil, &workflow.ValidationError{Field: "action", Message: fmt.Sprintf("action %s is no longer eligible for this selection", m.Action)}
		}
	}

	selectionSize := s.selectionService.Count(tenantCtx, sessionID)
	if err := m.Advance(selectionSize, targetIDs, config.LargeSelectionThreshold); err != nil {
		return nil, err
	}
	tenantCtx.GetCacheManager().SetMachine(tenantCtx.TenantID, sessionID, m)

	if m.Phase == workflow.PhaseSubmitting {
		return s.submit(ctx, tenantCtx, sessionID, m)
	}
	return m, nil
}

// ResolveGate accepts or declines the pending confirmation gate. Accepting
// the final gate dispatches the batch immediately.
func (s *WorkflowService) ResolveGate(ctx context.Context, tenantCtx *tenant.Context, sessionID string, accept bool) (*workflow.Machine, error) {
	m := s.Get(tenantCtx, sessionID)
	if err := m.ResolveGate(accept); err != nil {
		return nil, err
	}
	tenantCtx.GetCacheManager().SetMachine(tenantCtx.TenantID, sessionID, m)

	if m.Phase == workflow.PhaseSubmitting {
		return s.submit(ctx, tenantCtx, sessionID, m)
	}
	return m, nil
}

// submit dispatches the batch command and settles the machine in a terminal
// phase. On success the selection is cleared and a fresh machine replaces the
// finished one; on transport failure the selection is preserved for retry.
func (s *WorkflowService) submit(ctx context.Context, tenantCtx *tenant.Context, sessionID string, m *workflow.Machine) (*workflow.Machine, error) {
	marker := s.perfTracker.StartOperation("batch_submit", tenantCtx.TenantID)
	defer marker.Complete()
	marker.AddMetadata("action", string(m.Action))
	marker.AddMetadata("targets", len(m.TargetIDs))

	payload := map[string]string{}
	if m.Action == action.Reject {
		payload["reason"] = m.Reason
	}

	start := time.Now()
	outcome, err := tenantCtx.BatchExec().Submit(ctx, m.Action, m.TargetIDs, payload)
	cache := tenantCtx.GetCacheManager()

	if err != nil {
		marker.SetError(err)
		if ferr := m.Fail(err.Error()); ferr != nil {
			return nil, ferr
		}
		cache.SetMachine(tenantCtx.TenantID, sessionID, m)

		s.logger.LogError(logging.ChannelBatch, "batch_submit", err, tenantCtx.TenantID)
		s.broadcaster.BroadcastOutcome(tenantCtx.TenantID, sessionID, messaging.OutcomeEvent{
			WorkflowID: m.InstanceID,
			Action:     string(m.Action),
			Phase:      string(workflow.PhaseFailed),
			Message:    m.Failure,
		})
		s.sendFailureAlert(tenantCtx, m, err)

		return m, nil
	}

	marker.SetSuccess(true)
	if cerr := m.Complete(outcome); cerr != nil {
		return nil, cerr
	}

	// The attempt completed, partial failure included: clear the selection
	// and drop stale snapshots.
	s.selectionService.Clear(tenantCtx, sessionID)
	s.snapshotService.Invalidate(tenantCtx)

	s.logger.LogBatchOutcome(tenantCtx.TenantID, string(m.Action),
		outcome.Processed, outcome.Skipped, len(outcome.Errors), time.Since(start))
	s.broadcaster.BroadcastOutcome(tenantCtx.TenantID, sessionID, messaging.OutcomeEvent{
		WorkflowID: m.InstanceID,
		Action:     string(m.Action),
		Phase:      string(workflow.PhaseSucceeded),
		Message:    outcome.Message(),
		Processed:  outcome.Processed,
		Skipped:    outcome.Skipped,
		Errors:     outcome.Errors,
	})

	// Next interaction starts fresh.
	cache.SetMachine(tenantCtx.TenantID, sessionID, workflow.NewMachine(security.GenerateULID()))

	return m, nil
}

// ApplyMetadata dispatches a metadata rewrite directly to the metadata
// editor, outside the workflow machine. Scoped to page-visible selected ids
// like every other dispatch.
func (s *WorkflowService) ApplyMetadata(ctx context.Context, tenantCtx *tenant.Context, sessionID string, op repositories.MetadataOperation, fields map[string]string, pageIDs []string, caps user.Capabilities) (*workflow.Outcome, error) {
	if !caps.CanEditMetadata {
		return nil, fmt.Errorf("operator may not edit metadata")
	}

	onPage := s.selectionService.OnPage(tenantCtx, sessionID, pageIDs)
	if len(onPage) == 0 {
		return nil, &workflow.ValidationError{Field: "targetIds", Message: "no selected items are visible on this page"}
	}
	targetIDs := make([]string, 0, len(onPage))
	for _, item := range onPage {
		targetIDs = append(targetIDs, item.ID)
	}

	outcome, err := tenantCtx.MetadataRepo().Apply(ctx, targetIDs, op, fields)
	if err != nil {
		s.logger.LogError(logging.ChannelBatch, "metadata_apply", err, tenantCtx.TenantID)
		return nil, err
	}

	s.snapshotService.Invalidate(tenantCtx)
	return outcome, nil
}

func (s *WorkflowService) sendFailureAlert(tenantCtx *tenant.Context, m *workflow.Machine, err error) {
	if s.emailService == nil || !config.AlertEmailEnabled {
		return
	}
	toEmail := tenantCtx.Config.AlertEmail
	if toEmail == "" {
		return
	}

	go func() {
		if sendErr := s.emailService.SendBatchFailureAlert(toEmail, tenantCtx.TenantID, string(m.Action), len(m.TargetIDs), err.Error()); sendErr != nil {
			s.logger.Email().Error("Failed to send batch failure alert", "tenantId", tenantCtx.TenantID, "error", sendErr)
		}
	}()
}
